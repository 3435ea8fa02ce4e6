package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wabridge/internal/core/domain"
)

// CampaignRepository implements port.CampaignRepository using pgxpool.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

// Save writes the campaign record once. The creation time is stored as
// epoch milliseconds.
func (r *CampaignRepository) Save(ctx context.Context, c domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO campaigns
    (user_phone_id, campaign_id, campaign_name, template_used, numbers_sent, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`,
		c.UserPhoneID, c.CampaignID, c.CampaignName, c.TemplateUsed, c.NumbersSent, c.CreatedAt.UnixMilli())
	return err
}

// ListBySender returns the sender's campaigns, newest first.
func (r *CampaignRepository) ListBySender(ctx context.Context, userPhoneID string) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_phone_id, campaign_id, campaign_name, template_used, numbers_sent, created_at
FROM campaigns WHERE user_phone_id = $1 ORDER BY created_at DESC`, userPhoneID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		var (
			c  domain.Campaign
			ms int64
		)
		err := row.Scan(&c.UserPhoneID, &c.CampaignID, &c.CampaignName, &c.TemplateUsed, &c.NumbersSent, &ms)
		c.CreatedAt = time.UnixMilli(ms)
		return c, err
	})
}
