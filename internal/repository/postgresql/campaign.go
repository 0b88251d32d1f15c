package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/campaign"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type campaignRepository struct {
	db *database.DB
}

func NewCampaignRepository(db *database.DB) campaign.CampaignRepository {
	return &campaignRepository{db: db}
}

// List implements campaign.CampaignRepository.
func (r *campaignRepository) List(ctx context.Context) ([]campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT id, name, created_at FROM campaigns ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []campaign.Campaign
	for rows.Next() {
		var c campaign.Campaign
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, nil
}

// Create implements campaign.CampaignRepository.
func (r *campaignRepository) Create(ctx context.Context, c campaign.Campaign) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := "INSERT INTO campaigns (name) VALUES ($1) RETURNING id, created_at"
	if err := q.QueryRow(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return campaign.Campaign{}, campaign.ErrCampaignExists
		}
		return campaign.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}

	return c, nil
}

// Update implements campaign.CampaignRepository.
func (r *campaignRepository) Update(ctx context.Context, id string, name string) (campaign.Campaign, error) {
	q := GetQuerier(ctx, r.db)

	query := "UPDATE campaigns SET name = $2 WHERE id = $1 RETURNING id, name, created_at"
	var c campaign.Campaign
	if err := q.QueryRow(ctx, query, id, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return campaign.Campaign{}, campaign.ErrCampaignNotFound
		}
		if isUniqueViolation(err, "") {
			return campaign.Campaign{}, campaign.ErrCampaignExists
		}
		return campaign.Campaign{}, fmt.Errorf("failed to update campaign: %w", err)
	}

	return c, nil
}

// Delete implements campaign.CampaignRepository.
func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, "DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return campaign.ErrCampaignNotFound
	}

	return nil
}
