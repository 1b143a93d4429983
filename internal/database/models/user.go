package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sentinelbot/sentinel/internal/database/dbretry"
	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserModel handles database operations for the user directory.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new user model instance.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// GetOrCreate looks up a user by Discord ID and creates the record on first
// contact. The username is snapshotted at creation time; repeat calls never
// overwrite it.
func (m *UserModel) GetOrCreate(ctx context.Context, discordID uint64, username string) (*types.User, error) {
	var user types.User

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		err := m.db.NewSelect().
			Model(&user).
			Where("discord_id = ?", discordID).
			Scan(ctx)
		if err == nil {
			return nil
		}

		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to get user: %w", err)
		}

		user = types.User{
			DiscordID: discordID,
			Username:  username,
		}

		// No conflict handling: writes come from a single dispatch thread
		_, err = m.db.NewInsert().
			Model(&user).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		m.logger.Debug("Created user record",
			zap.Int64("id", user.ID),
			zap.Uint64("discordID", discordID))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByDiscordID looks up a user by Discord ID without creating one.
// Returns types.ErrUserNotFound when no record exists.
func (m *UserModel) GetByDiscordID(ctx context.Context, discordID uint64) (*types.User, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.User, error) {
		var user types.User

		err := m.db.NewSelect().
			Model(&user).
			Where("discord_id = ?", discordID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrUserNotFound
			}

			return nil, fmt.Errorf("failed to get user: %w", err)
		}

		return &user, nil
	})
}
