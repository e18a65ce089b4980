package repository

import (
	"database/sql"
	"grafik-auth-api/model"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func userRows(user *model.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "last_name", "email", "password", "phone", "role_id", "is_verified", "created_at"}).
		AddRow(user.ID, user.Name, user.LastName, user.Email, user.Password, user.Phone, user.RoleID, user.IsVerified, user.CreatedAt)
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	user := &model.User{
		Name:     "Ada",
		LastName: "Lovelace",
		Email:    "ada@test.com",
		Password: "hashed-pw",
		Phone:    "+34600000000",
		RoleID:   "r1",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (id, name, last_name, email, password, phone, role_id) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING created_at`)).
		WithArgs(sqlmock.AnyArg(), "Ada", "Lovelace", "ada@test.com", "hashed-pw", "+34600000000", "r1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	err = repo.CreateUser(user)

	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	stored := &model.User{
		ID:        "u1",
		Name:      "Ada",
		LastName:  "Lovelace",
		Email:     "ada@test.com",
		Password:  "hashed-pw",
		Phone:     "+34600000000",
		RoleID:    "r1",
		CreatedAt: time.Now(),
	}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, last_name, email, password, phone, role_id, is_verified, created_at FROM users WHERE email=$1`)).
			WithArgs("ada@test.com").
			WillReturnRows(userRows(stored))

		user, err := repo.GetUserByEmail("ada@test.com")

		assert.NoError(t, err)
		assert.Equal(t, "u1", user.ID)
		assert.Equal(t, "hashed-pw", user.Password)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, last_name, email, password, phone, role_id, is_verified, created_at FROM users WHERE email=$1`)).
			WithArgs("ghost@test.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByEmail("ghost@test.com")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	query := regexp.QuoteMeta(`UPDATE users SET password = $1 WHERE id = $2`)

	t.Run("row matched", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs("new-hash", "u1").WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdatePassword("u1", "new-hash")

		assert.NoError(t, err)
		assert.True(t, updated)
	})

	t.Run("no row matched", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs("new-hash", "gone").WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdatePassword("gone", "new-hash")

		assert.NoError(t, err)
		assert.False(t, updated)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET is_verified = TRUE WHERE id = $1`)).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.SetVerified("u1")

	assert.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
