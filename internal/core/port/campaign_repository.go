package port

import (
	"context"

	"wabridge/internal/core/domain"
)

// CampaignRepository persists campaign records. Records are write-once.
type CampaignRepository interface {
	Save(ctx context.Context, c domain.Campaign) error
	ListBySender(ctx context.Context, userPhoneID string) ([]domain.Campaign, error)
}

// QuotaRepository is the per-sender, per-day message ledger. Reserve and
// Release implement a conditional increment-then-rollback scheme: Reserve
// atomically adds n to the counter unless that would push it past limit
// (in which case it returns *domain.QuotaExceededError), and Release
// returns the unsent remainder once dispatch has settled. Days are keyed
// as YYYY-MM-DD; a missing record counts as zero.
type QuotaRepository interface {
	Used(ctx context.Context, userPhoneID, day string) (int, error)
	Reserve(ctx context.Context, userPhoneID, day string, n, limit int) error
	Release(ctx context.Context, userPhoneID, day string, n int) error
}
