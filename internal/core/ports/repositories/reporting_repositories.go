package repositories

import (
	"context"
	"time"

	"github.com/flowcounts/backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetReportSnapshot retrieves, in one consistent read, every active
	// account's metadata plus its approved debit/credit movement as of asOf,
	// within [from, to], and strictly before from. All report shapes derive
	// from this single snapshot so they agree with each other.
	GetReportSnapshot(ctx context.Context, asOf, from, to time.Time) (*domain.ReportSnapshot, error)
}
