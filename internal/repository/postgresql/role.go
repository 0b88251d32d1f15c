package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/digitalis-hr/pointage-backend-go/internal/domain/master/role"
	"github.com/digitalis-hr/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type roleRepository struct {
	db *database.DB
}

func NewRoleRepository(db *database.DB) role.RoleRepository {
	return &roleRepository{db: db}
}

// List implements role.RoleRepository.
func (r *roleRepository) List(ctx context.Context) ([]role.Role, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, "SELECT id, name, created_at FROM roles ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []role.Role
	for rows.Next() {
		var item role.Role
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, item)
	}

	return roles, nil
}

// Create implements role.RoleRepository.
func (r *roleRepository) Create(ctx context.Context, item role.Role) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := "INSERT INTO roles (name) VALUES ($1) RETURNING id, created_at"
	if err := q.QueryRow(ctx, query, item.Name).Scan(&item.ID, &item.CreatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return role.Role{}, role.ErrRoleExists
		}
		return role.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return item, nil
}

// Update implements role.RoleRepository.
func (r *roleRepository) Update(ctx context.Context, id string, name string) (role.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := "UPDATE roles SET name = $2 WHERE id = $1 RETURNING id, name, created_at"
	var item role.Role
	if err := q.QueryRow(ctx, query, id, name).Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return role.Role{}, role.ErrRoleNotFound
		}
		if isUniqueViolation(err, "") {
			return role.Role{}, role.ErrRoleExists
		}
		return role.Role{}, fmt.Errorf("failed to update role: %w", err)
	}

	return item, nil
}

// Delete implements role.RoleRepository.
func (r *roleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, "DELETE FROM roles WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return role.ErrRoleNotFound
	}

	return nil
}
