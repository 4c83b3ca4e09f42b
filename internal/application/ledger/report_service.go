package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cobranza/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default aging band boundaries, in minutes since invoice creation
const (
	DefaultAgingBand1 = 60
	DefaultAgingBand2 = 120
	DefaultAgingBand3 = 180
)

// ReportCache caches computed reports for a short TTL. A miss returns
// (nil, nil); cache failures must never fail the report.
type ReportCache interface {
	GetAgingReport(ctx context.Context, key string) (*AgingReport, error)
	SetAgingReport(ctx context.Context, key string, report *AgingReport, ttl time.Duration) error
}

// ReportService builds read-only reports over the ledger. The aging report
// buckets currently OPEN invoices by elapsed time since creation into three
// bands and counts them per client. Band boundaries arrive per request; they
// are presentation configuration, not ledger state.
type ReportService struct {
	invoiceRepo ledger.InvoiceRepository
	cache       ReportCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewReportService creates a new ReportService. cache may be nil, in which
// case every report is computed from the store.
func NewReportService(invoiceRepo ledger.InvoiceRepository, cache ReportCache, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}
	return &ReportService{
		invoiceRepo: invoiceRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Aging computes the aging buckets report. Invoices aged up to band1 count
// as on time, up to band2 as pending, and up to band3 as at risk; invoices
// older than band3 fall outside every bucket and are not counted. Zero
// boundaries fall back to the defaults.
func (s *ReportService) Aging(ctx context.Context, filter AgingReportFilter) (*AgingReport, error) {
	b1, b2, b3 := filter.Band1, filter.Band2, filter.Band3
	if b1 <= 0 {
		b1 = DefaultAgingBand1
	}
	if b2 <= b1 {
		b2 = b1 + (DefaultAgingBand2 - DefaultAgingBand1)
	}
	if b3 <= b2 {
		b3 = b2 + (DefaultAgingBand3 - DefaultAgingBand2)
	}

	key := agingCacheKey(b1, b2, b3)
	if s.cache != nil {
		cached, err := s.cache.GetAgingReport(ctx, key)
		if err != nil {
			s.logger.Warn("aging report cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	refs, err := s.invoiceRepo.FindOpenWithClient(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	byClient := make(map[uuid.UUID]*AgingBucketCounts)
	for _, ref := range refs {
		counts, ok := byClient[ref.ClientID]
		if !ok {
			counts = &AgingBucketCounts{ClientID: ref.ClientID, ClientName: ref.ClientName}
			byClient[ref.ClientID] = counts
		}

		age := now.Sub(ref.CreatedAt).Minutes()
		switch {
		case age <= float64(b1):
			counts.OnTime++
		case age <= float64(b2):
			counts.Pending++
		case age <= float64(b3):
			counts.AtRisk++
		}
		// Older than the last band: outside every bucket, not counted.
	}

	report := &AgingReport{
		GeneratedAt: now,
		Band1:       b1,
		Band2:       b2,
		Band3:       b3,
		Clients:     make([]AgingBucketCounts, 0, len(byClient)),
	}
	for _, counts := range byClient {
		report.Clients = append(report.Clients, *counts)
	}
	sort.Slice(report.Clients, func(i, j int) bool {
		return report.Clients[i].ClientName < report.Clients[j].ClientName
	})

	if s.cache != nil {
		if err := s.cache.SetAgingReport(ctx, key, report, s.cacheTTL); err != nil {
			s.logger.Warn("aging report cache write failed", zap.Error(err))
		}
	}

	return report, nil
}

func agingCacheKey(b1, b2, b3 int) string {
	return fmt.Sprintf("reports:aging:%d:%d:%d", b1, b2, b3)
}
