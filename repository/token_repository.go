// file: repository/token_repository.go

package repository

import (
	"database/sql"
	"grafik-auth-api/logger"
	"grafik-auth-api/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for token database operations.
type ITokenRepository interface {
	Create(record *model.TokenRecord) error
	GetByToken(token string) (*model.TokenRecord, error)
	DeleteByToken(token string) (bool, error)
	DeleteByUserID(userID string) error
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Create inserts a new token record. Records are immutable after creation;
// revocation deletes the row.
func (r *TokenRepository) Create(record *model.TokenRecord) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    record.UserID,
		"kind":       record.Kind,
		"expires_at": record.ExpiresAt,
	})
	log.Info("Executing query to create a new token record")

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	query := `INSERT INTO tokens (id, user_id, token, kind, expires_at) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err := r.DB.QueryRow(query, record.ID, record.UserID, record.Token, record.Kind, record.ExpiresAt).Scan(&record.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create token query")
		return err
	}
	return nil
}

// GetByToken retrieves a token record by exact token string match.
// Returns sql.ErrNoRows when the token was never issued or already revoked.
func (r *TokenRepository) GetByToken(token string) (*model.TokenRecord, error) {
	record := &model.TokenRecord{}
	query := `SELECT id, user_id, token, kind, expires_at, created_at FROM tokens WHERE token = $1`
	err := r.DB.QueryRow(query, token).Scan(&record.ID, &record.UserID, &record.Token, &record.Kind, &record.ExpiresAt, &record.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).Error("Failed to execute get token query")
		}
		return nil, err
	}
	return record, nil
}

// DeleteByToken deletes a token record by exact string match and reports
// whether a row was actually removed.
func (r *TokenRepository) DeleteByToken(token string) (bool, error) {
	query := `DELETE FROM tokens WHERE token = $1`
	result, err := r.DB.Exec(query, token)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute delete token query")
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DeleteByUserID deletes all token records for a user. Used to drop every
// session at once.
func (r *TokenRepository) DeleteByUserID(userID string) error {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to delete all tokens for a user")

	query := `DELETE FROM tokens WHERE user_id = $1`
	_, err := r.DB.Exec(query, userID)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete tokens query")
		return err
	}
	return nil
}
