// Package expiry lifts temporary moderation actions once their until time
// passes.
package expiry

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/database"
	"github.com/sentinelbot/sentinel/internal/database/models"
	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"github.com/sentinelbot/sentinel/internal/setup/config"
	"go.uber.org/zap"
)

const defaultInterval = 30 * time.Second

// Worker periodically sweeps due temporary actions, reverses their side
// effects, and records the lifting action linked to the original.
type Worker struct {
	db          database.Client
	client      bot.Client
	guildID     snowflake.ID
	mutedRoleID snowflake.ID
	interval    time.Duration
	logger      *zap.Logger
}

// New creates an expiry worker from the guild and sweeper configuration.
func New(db database.Client, client bot.Client, cfg *config.Config, logger *zap.Logger) *Worker {
	interval := defaultInterval
	if cfg.Expiry.Interval > 0 {
		interval = time.Duration(cfg.Expiry.Interval) * time.Second
	}

	return &Worker{
		db:          db,
		client:      client,
		guildID:     snowflake.ID(cfg.Guild.ID),
		mutedRoleID: snowflake.ID(cfg.Guild.MutedRoleID),
		interval:    interval,
		logger:      logger,
	}
}

// Start runs the sweep loop until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Expiry worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// sweep lifts every due temporary action. A failed lift is left uncompleted
// so the next sweep retries it.
func (w *Worker) sweep(ctx context.Context) {
	due, err := w.db.Model().Action().ListDueTemporary(ctx, time.Now())
	if err != nil {
		w.logger.Error("Failed to list due temporary actions", zap.Error(err))
		return
	}

	for _, tempAction := range due {
		if err := w.lift(ctx, tempAction); err != nil {
			w.logger.Warn("Failed to lift temporary action, will retry next sweep",
				zap.Int64("actionID", tempAction.ID),
				zap.Error(err))

			continue
		}

		if err := w.db.Model().Action().MarkTemporaryCompleted(ctx, tempAction.ID); err != nil {
			w.logger.Error("Failed to mark temporary action completed",
				zap.Int64("actionID", tempAction.ID),
				zap.Error(err))
		}
	}
}

// lift reverses one expired action and records the lifting counterpart
// linked back to the original row.
func (w *Worker) lift(ctx context.Context, tempAction *types.ModerationTemporaryAction) error {
	action := tempAction.Action
	if action == nil || action.User == nil {
		w.logger.Error("Temporary action row missing its action or subject",
			zap.Int64("actionID", tempAction.ID))

		// Unliftable rows would retry forever; complete them instead
		return nil
	}

	subjectID := snowflake.ID(action.User.DiscordID)

	var liftKind enum.ActionType

	switch action.Action {
	case enum.ActionTypeTempmute:
		liftKind = enum.ActionTypeUnmute

		if err := w.client.Rest().RemoveMemberRole(w.guildID, subjectID, w.mutedRoleID,
			rest.WithReason("Temporary mute expired")); err != nil {
			return err
		}
	case enum.ActionTypeTempban:
		liftKind = enum.ActionTypeUnban

		if err := w.client.Rest().DeleteBan(w.guildID, subjectID,
			rest.WithReason("Temporary ban expired")); err != nil {
			return err
		}
	default:
		w.logger.Error("Temporary action of unexpected kind",
			zap.Int64("actionID", tempAction.ID),
			zap.String("action", action.Action.String()))

		return nil
	}

	w.logger.Info("Lifted temporary action",
		zap.Int64("actionID", tempAction.ID),
		zap.String("action", action.Action.String()),
		zap.Uint64("subjectID", uint64(subjectID)))

	return w.record(ctx, action.UserID, liftKind, tempAction.ID)
}

// record persists the lifting action attributed to the bot itself.
func (w *Worker) record(ctx context.Context, subjectID int64, kind enum.ActionType, linkedID int64) error {
	botID := w.client.ApplicationID()

	botName := "expiry"
	if self, err := w.client.Rest().GetUser(botID); err == nil {
		botName = self.Username
	}

	moderator, err := w.db.Model().User().GetOrCreate(ctx, uint64(botID), botName)
	if err != nil {
		return err
	}

	_, err = w.db.Model().Action().Record(ctx, models.RecordParams{
		UserID:      subjectID,
		ModeratorID: moderator.ID,
		Action:      kind,
		Reason:      "Temporary action expired",
		LinkedID:    &linkedID,
	})

	return err
}
