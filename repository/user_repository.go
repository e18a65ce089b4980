package repository

import (
	"database/sql"
	"grafik-auth-api/model"

	"github.com/google/uuid"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	UpdatePassword(id string, hashedPassword string) (bool, error)
	SetVerified(id string) (bool, error)
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `INSERT INTO users (id, name, last_name, email, password, phone, role_id) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`
	return r.DB.QueryRow(query, user.ID, user.Name, user.LastName, user.Email, user.Password, user.Phone, user.RoleID).Scan(&user.CreatedAt)
}

func (r *UserRepository) GetUserByEmail(email string) (*model.User, error) {
	return r.getUserBy(`email`, email)
}

func (r *UserRepository) GetUserByID(id string) (*model.User, error) {
	return r.getUserBy(`id`, id)
}

func (r *UserRepository) getUserBy(column, value string) (*model.User, error) {
	user := &model.User{}
	query := `SELECT id, name, last_name, email, password, phone, role_id, is_verified, created_at FROM users WHERE ` + column + `=$1`
	err := r.DB.QueryRow(query, value).Scan(&user.ID, &user.Name, &user.LastName, &user.Email, &user.Password, &user.Phone, &user.RoleID, &user.IsVerified, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword replaces the stored hash and reports whether a row matched.
func (r *UserRepository) UpdatePassword(id string, hashedPassword string) (bool, error) {
	result, err := r.DB.Exec(`UPDATE users SET password = $1 WHERE id = $2`, hashedPassword, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetVerified flips the verification flag and reports whether a row matched.
func (r *UserRepository) SetVerified(id string) (bool, error) {
	result, err := r.DB.Exec(`UPDATE users SET is_verified = TRUE WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
