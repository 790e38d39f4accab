// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"
	"time"

	"doorman/internal/domain/entity"
	domainerrors "doorman/internal/domain/errors"
	"doorman/internal/domain/repository"
	"doorman/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sessionRepository implements the domain.SessionRepository interface on a
// relational sessions table. Rows past expires_at count as absent; Find
// deletes them on sight and the periodic sweeper removes the rest, so the
// table stays bounded even for sessions that are never touched again.
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository is the constructor for sessionRepository.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

// Create persists a new session row.
func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	sessionM, err := fromSessionDomain(session)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(sessionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create session")
	}

	session.CreatedAt = sessionM.CreatedAt

	return nil
}

// Find retrieves a live session. Expired rows are purged lazily and
// reported exactly like missing ones.
func (repo *sessionRepository) Find(ctx context.Context, id string) (*entity.Session, error) {
	var sessionM model.SessionModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&sessionM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if !time.Now().Before(sessionM.ExpiresAt) {
		// Lazy purge; a failed delete is not worth failing the lookup over.
		repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "id = ?", id)

		return nil, repository.ErrSessionNotFound
	}

	return toSessionDomain(&sessionM)
}

// Delete removes a session row, reporting ErrSessionNotFound when nothing
// was there to remove.
func (repo *sessionRepository) Delete(ctx context.Context, id string) error {
	result := repo.db.WithContext(ctx).Delete(&model.SessionModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete session")
	}
	if result.RowsAffected == 0 {
		return repository.ErrSessionNotFound
	}

	return nil
}

// DeleteExpired removes every row past its expiry. Called by the sweeper.
func (repo *sessionRepository) DeleteExpired(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.SessionModel{}, "expires_at <= ?", time.Now()).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete expired sessions")
	}

	return nil
}

// --- Mapper Functions ---

func toSessionDomain(data *model.SessionModel) (*entity.Session, error) {
	payload := map[string]any{}
	if len(data.Payload) > 0 {
		if err := json.Unmarshal(data.Payload, &payload); err != nil {
			return nil, errors.Wrap(err, "failed to decode session payload")
		}
	}

	return &entity.Session{
		ID:        data.ID,
		UserID:    data.UserID,
		Payload:   payload,
		CreatedAt: data.CreatedAt,
		ExpiresAt: data.ExpiresAt,
	}, nil
}

func fromSessionDomain(data *entity.Session) (*model.SessionModel, error) {
	payload, err := json.Marshal(data.Payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session payload")
	}

	return &model.SessionModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Payload:   payload,
		ExpiresAt: data.ExpiresAt,
	}, nil
}
