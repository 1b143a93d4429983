package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sentinelbot/sentinel/internal/database/dbretry"
	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ActionModel handles database operations for the moderation action log.
type ActionModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAction creates a new action model instance.
func NewAction(db *bun.DB, logger *zap.Logger) *ActionModel {
	return &ActionModel{
		db:     db,
		logger: logger.Named("db_action"),
	}
}

// RecordParams describes one moderation action to persist. Until and
// LinkedActionID are optional extensions; each produces exactly one paired
// row when set.
type RecordParams struct {
	UserID      int64
	ModeratorID int64
	Action      enum.ActionType
	Reason      string
	Until       *time.Time
	LinkedID    *int64
}

// Record persists a moderation action together with its optional temporary
// and linked extension rows as one transaction. A crash mid-write never
// leaves an action without its required extension.
func (m *ActionModel) Record(ctx context.Context, params RecordParams) (*types.ModerationAction, error) {
	action := &types.ModerationAction{
		Timestamp:   time.Now().UTC(),
		UserID:      params.UserID,
		ModeratorID: params.ModeratorID,
		Action:      params.Action,
		Reason:      params.Reason,
	}

	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		// Insert first so the generated primary key is available to extensions
		if _, err := tx.NewInsert().Model(action).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert moderation action: %w", err)
		}

		if params.Until != nil {
			tempAction := &types.ModerationTemporaryAction{
				ID:    action.ID,
				Until: params.Until.UTC(),
			}

			if _, err := tx.NewInsert().Model(tempAction).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert temporary action: %w", err)
			}
		}

		if params.LinkedID != nil {
			linkedAction := &types.ModerationLinkedAction{
				ID:       action.ID,
				LinkedID: *params.LinkedID,
			}

			if _, err := tx.NewInsert().Model(linkedAction).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert linked action: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Recorded moderation action",
		zap.Int64("id", action.ID),
		zap.String("action", params.Action.String()),
		zap.Int64("userID", params.UserID),
		zap.Int64("moderatorID", params.ModeratorID))

	return action, nil
}

// removedIDs builds a subquery selecting the ids of actions that have been
// nullified for the user by a removal of one of the given kinds.
func (m *ActionModel) removedIDs(userID int64, removalKinds []enum.ActionType) *bun.SelectQuery {
	return m.db.NewSelect().
		Model((*types.ModerationLinkedAction)(nil)).
		Column("moderation_linked_action.linked_id").
		Join("JOIN moderation_actions AS removal ON removal.id = moderation_linked_action.id").
		Where("removal.user_id = ?", userID).
		Where("removal.action IN (?)", bun.In(removalKinds))
}

// CountActive counts the user's actions of the counted kinds that have not
// been cancelled by a removal of the removal kinds.
func (m *ActionModel) CountActive(
	ctx context.Context, userID int64, countedKinds, removalKinds []enum.ActionType,
) (int, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int, error) {
		count, err := m.db.NewSelect().
			Model((*types.ModerationAction)(nil)).
			Where("user_id = ?", userID).
			Where("action IN (?)", bun.In(countedKinds)).
			Where("id NOT IN (?)", m.removedIDs(userID, removalKinds)).
			Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count active actions: %w", err)
		}

		return count, nil
	})
}

// ListActive returns the user's non-removed actions of the counted kinds with
// the issuing moderator loaded, oldest first.
func (m *ActionModel) ListActive(
	ctx context.Context, userID int64, countedKinds, removalKinds []enum.ActionType,
) ([]*types.ModerationAction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ModerationAction, error) {
		var actions []*types.ModerationAction

		err := m.db.NewSelect().
			Model(&actions).
			Relation("Moderator").
			Where("user_id = ?", userID).
			Where("moderation_action.action IN (?)", bun.In(countedKinds)).
			Where("moderation_action.id NOT IN (?)", m.removedIDs(userID, removalKinds)).
			Order("moderation_action.id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active actions: %w", err)
		}

		return actions, nil
	})
}

// GetUserAction fetches an action by id, constrained to the given subject and
// kinds. Returns types.ErrActionNotFound when no row matches all constraints,
// including when the action exists but belongs to a different user.
func (m *ActionModel) GetUserAction(
	ctx context.Context, actionID, userID int64, kinds []enum.ActionType,
) (*types.ModerationAction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.ModerationAction, error) {
		var action types.ModerationAction

		err := m.db.NewSelect().
			Model(&action).
			Where("id = ?", actionID).
			Where("user_id = ?", userID).
			Where("action IN (?)", bun.In(kinds)).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, types.ErrActionNotFound
			}

			return nil, fmt.Errorf("failed to get action: %w", err)
		}

		return &action, nil
	})
}

// ListDueTemporary returns uncompleted temporary actions whose lift time has
// passed, with the underlying action and its subject loaded.
func (m *ActionModel) ListDueTemporary(ctx context.Context, now time.Time) ([]*types.ModerationTemporaryAction, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.ModerationTemporaryAction, error) {
		var tempActions []*types.ModerationTemporaryAction

		err := m.db.NewSelect().
			Model(&tempActions).
			Relation("Action").
			Relation("Action.User").
			Where("completed = false").
			Where("until <= ?", now.UTC()).
			Order("until ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list due temporary actions: %w", err)
		}

		return tempActions, nil
	})
}

// MarkTemporaryCompleted flips the completed flag on a temporary action once
// its restriction has been lifted.
func (m *ActionModel) MarkTemporaryCompleted(ctx context.Context, actionID int64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		result, err := m.db.NewUpdate().
			Model((*types.ModerationTemporaryAction)(nil)).
			Set("completed = true").
			Where("id = ?", actionID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to mark temporary action completed: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows: %w", err)
		}

		if affected == 0 {
			return types.ErrActionNotFound
		}

		return nil
	})
}

// GetWithExtensions fetches an action and reconstructs its temporary and
// linked extension rows, if any.
func (m *ActionModel) GetWithExtensions(
	ctx context.Context, actionID int64,
) (*types.ModerationAction, *types.ModerationTemporaryAction, *types.ModerationLinkedAction, error) {
	type result struct {
		action *types.ModerationAction
		temp   *types.ModerationTemporaryAction
		linked *types.ModerationLinkedAction
	}

	res, err := dbretry.Operation(ctx, func(ctx context.Context) (result, error) {
		var action types.ModerationAction

		err := m.db.NewSelect().
			Model(&action).
			Where("id = ?", actionID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return result{}, types.ErrActionNotFound
			}

			return result{}, fmt.Errorf("failed to get action: %w", err)
		}

		res := result{action: &action}

		var tempAction types.ModerationTemporaryAction

		err = m.db.NewSelect().
			Model(&tempAction).
			Where("id = ?", actionID).
			Scan(ctx)
		if err == nil {
			res.temp = &tempAction
		} else if !errors.Is(err, sql.ErrNoRows) {
			return result{}, fmt.Errorf("failed to get temporary action: %w", err)
		}

		var linkedAction types.ModerationLinkedAction

		err = m.db.NewSelect().
			Model(&linkedAction).
			Where("id = ?", actionID).
			Scan(ctx)
		if err == nil {
			res.linked = &linkedAction
		} else if !errors.Is(err, sql.ErrNoRows) {
			return result{}, fmt.Errorf("failed to get linked action: %w", err)
		}

		return res, nil
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return res.action, res.temp, res.linked, nil
}
