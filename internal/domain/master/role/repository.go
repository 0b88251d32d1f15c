package role

import "context"

type RoleRepository interface {
	List(ctx context.Context) ([]Role, error)
	Create(ctx context.Context, r Role) (Role, error)
	Update(ctx context.Context, id string, name string) (Role, error)
	Delete(ctx context.Context, id string) error
}
