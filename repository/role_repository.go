package repository

import (
	"database/sql"
	"grafik-auth-api/model"
)

// IRoleRepository defines the contract for role lookups.
type IRoleRepository interface {
	GetRoleByID(id string) (*model.Role, error)
}

type RoleRepository struct {
	DB *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{DB: db}
}

func (r *RoleRepository) GetRoleByID(id string) (*model.Role, error) {
	role := &model.Role{}
	query := `SELECT id, name, permissions, created_at FROM roles WHERE id = $1`
	err := r.DB.QueryRow(query, id).Scan(&role.ID, &role.Name, &role.Permissions, &role.CreatedAt)
	if err != nil {
		return nil, err
	}
	return role, nil
}
