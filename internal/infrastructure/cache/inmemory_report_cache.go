package cache

import (
	"context"
	"sync"
	"time"

	ledgerapp "github.com/cobranza/backend/internal/application/ledger"
)

var _ ledgerapp.ReportCache = (*InMemoryReportCache)(nil)

type cachedReport struct {
	report    *ledgerapp.AgingReport
	expiresAt time.Time
}

// InMemoryReportCache implements ReportCache with a process-local map.
// Suitable for single-instance deployments and tests; entries are evicted
// lazily on read.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]cachedReport
}

// NewInMemoryReportCache creates a new in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]cachedReport),
	}
}

// GetAgingReport returns the cached report for the key, or (nil, nil) when
// missing or expired
func (c *InMemoryReportCache) GetAgingReport(ctx context.Context, key string) (*ledgerapp.AgingReport, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.report, nil
}

// SetAgingReport stores the report under the key with a TTL
func (c *InMemoryReportCache) SetAgingReport(ctx context.Context, key string, report *ledgerapp.AgingReport, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = cachedReport{
		report:    report,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
