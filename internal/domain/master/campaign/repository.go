package campaign

import "context"

type CampaignRepository interface {
	List(ctx context.Context) ([]Campaign, error)
	Create(ctx context.Context, c Campaign) (Campaign, error)
	Update(ctx context.Context, id string, name string) (Campaign, error)
	Delete(ctx context.Context, id string) error
}
