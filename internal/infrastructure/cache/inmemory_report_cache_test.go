package cache

import (
	"context"
	"testing"
	"time"

	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryReportCache(t *testing.T) {
	t.Run("miss returns nil without error", func(t *testing.T) {
		c := NewInMemoryReportCache()

		report, err := c.GetAgingReport(context.Background(), "reports:aging:60:120:180")
		require.NoError(t, err)
		assert.Nil(t, report)
	})

	t.Run("round trips a report", func(t *testing.T) {
		c := NewInMemoryReportCache()
		stored := &ledgerapp.AgingReport{
			GeneratedAt: time.Now(),
			Band1:       60,
			Band2:       120,
			Band3:       180,
		}

		err := c.SetAgingReport(context.Background(), "reports:aging:60:120:180", stored, time.Minute)
		require.NoError(t, err)

		got, err := c.GetAgingReport(context.Background(), "reports:aging:60:120:180")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 60, got.Band1)
	})

	t.Run("expired entries read as a miss", func(t *testing.T) {
		c := NewInMemoryReportCache()

		err := c.SetAgingReport(context.Background(), "k", &ledgerapp.AgingReport{}, -time.Second)
		require.NoError(t, err)

		got, err := c.GetAgingReport(context.Background(), "k")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		c := NewInMemoryReportCache()

		err := c.SetAgingReport(context.Background(), "a", &ledgerapp.AgingReport{Band1: 1}, time.Minute)
		require.NoError(t, err)

		got, err := c.GetAgingReport(context.Background(), "b")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
