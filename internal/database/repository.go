package database

import (
	"github.com/sentinelbot/sentinel/internal/database/models"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// Repository provides access to all database models.
type Repository struct {
	user   *models.UserModel
	action *models.ActionModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user:   models.NewUser(db, logger),
		action: models.NewAction(db, logger),
	}
}

// User returns the user model repository.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Action returns the moderation action model repository.
func (r *Repository) Action() *models.ActionModel {
	return r.action
}
