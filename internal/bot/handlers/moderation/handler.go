// Package moderation implements the moderator-invoked command surface.
package moderation

import (
	"context"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/bot/command"
	"github.com/sentinelbot/sentinel/internal/bot/format"
	"github.com/sentinelbot/sentinel/internal/database"
	"github.com/sentinelbot/sentinel/internal/database/models"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"github.com/sentinelbot/sentinel/internal/setup/config"
	"go.uber.org/zap"
)

// Handler processes moderator commands against the record store and the
// platform gateway.
type Handler struct {
	db          database.Client
	guildID     snowflake.ID
	mutedRoleID snowflake.ID
	logger      *zap.Logger
}

// New creates a moderation command handler.
func New(db database.Client, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		db:          db,
		guildID:     snowflake.ID(cfg.Guild.ID),
		mutedRoleID: snowflake.ID(cfg.Guild.MutedRoleID),
		logger:      logger.Named("moderation"),
	}
}

// Handle dispatches one parsed invocation. Returns false when the name is not
// a moderation command.
func (h *Handler) Handle(ctx context.Context, event *events.GuildMessageCreate, inv *command.Invocation) bool {
	switch inv.Name {
	case "mute":
		h.handleMute(ctx, event, inv.Args)
	case "tempmute":
		h.handleTempmute(ctx, event, inv.Args)
	case "unmute":
		h.handleUnmute(ctx, event, inv.Args)
	case "warn":
		h.handleWarn(ctx, event, inv.Args)
	case "kick":
		h.handleKick(ctx, event, inv.Args)
	case "ban":
		h.handleBan(ctx, event, inv.Args)
	case "tempban":
		h.handleTempban(ctx, event, inv.Args)
	case "unban":
		h.handleUnban(ctx, event, inv.Args)
	case "purge":
		h.handlePurge(ctx, event, inv.Args)
	case "ping":
		h.reply(event, ":ping_pong:")
	default:
		return false
	}

	return true
}

// effectFunc applies the side-effecting platform call for one target.
type effectFunc func(ctx context.Context, target snowflake.ID) error

// run executes the batch state machine shared by all moderation commands:
// the side effect per target with per-target failure isolation, history rows
// for the targets that succeeded, and one aggregate notice at the end.
func (h *Handler) run(
	ctx context.Context,
	event *events.GuildMessageCreate,
	kind enum.ActionType,
	targets []snowflake.ID,
	reason string,
	until *time.Time,
	effect effectFunc,
) {
	moderator := event.Message.Author

	h.logger.Info("Moderation command invoked",
		zap.String("action", kind.String()),
		zap.Uint64("moderatorID", uint64(moderator.ID)),
		zap.Int("targets", len(targets)),
		zap.String("reason", reason))

	var succeeded, failed []snowflake.ID

	for _, target := range targets {
		if err := effect(ctx, target); err != nil {
			h.logger.Warn("Moderation side effect failed",
				zap.String("action", kind.String()),
				zap.Uint64("targetID", uint64(target)),
				zap.Error(err))

			failed = append(failed, target)

			continue
		}

		if err := h.record(ctx, event.Client().Rest(), target, moderator, kind, reason, until, nil); err != nil {
			h.logger.Error("Failed to record moderation action",
				zap.String("action", kind.String()),
				zap.Uint64("targetID", uint64(target)),
				zap.Error(err))
		}

		succeeded = append(succeeded, target)
	}

	if notice := format.Notice(kind, succeeded, failed, reason, until); notice != "" {
		h.reply(event, notice)
	}
}

// record persists one action, lazily creating user directory rows for both
// the subject and the moderator.
func (h *Handler) record(
	ctx context.Context,
	restClient rest.Rest,
	subjectID snowflake.ID,
	moderator discord.User,
	kind enum.ActionType,
	reason string,
	until *time.Time,
	linkedID *int64,
) error {
	// Username snapshots are best-effort; the ID is the durable identity
	subjectName := subjectID.String()
	if user, err := restClient.GetUser(subjectID); err == nil {
		subjectName = user.Username
	}

	subject, err := h.db.Model().User().GetOrCreate(ctx, uint64(subjectID), subjectName)
	if err != nil {
		return err
	}

	moderatorUser, err := h.db.Model().User().GetOrCreate(ctx, uint64(moderator.ID), moderator.Username)
	if err != nil {
		return err
	}

	_, err = h.db.Model().Action().Record(ctx, models.RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderatorUser.ID,
		Action:      kind,
		Reason:      reason,
		Until:       until,
		LinkedID:    linkedID,
	})

	return err
}

// reply sends a plain message to the channel the command came from.
func (h *Handler) reply(event *events.GuildMessageCreate, content string) {
	_, err := event.Client().Rest().CreateMessage(event.ChannelID, discord.NewMessageCreateBuilder().
		SetContent(content).
		Build())
	if err != nil {
		h.logger.Error("Failed to send reply",
			zap.Uint64("channelID", uint64(event.ChannelID)),
			zap.Error(err))
	}
}

// react acknowledges a command with a reaction instead of a text reply.
func (h *Handler) react(event *events.GuildMessageCreate, emoji string) {
	err := event.Client().Rest().AddReaction(event.ChannelID, event.MessageID, emoji)
	if err != nil {
		h.logger.Error("Failed to add reaction",
			zap.Uint64("messageID", uint64(event.MessageID)),
			zap.Error(err))
	}
}

// sendDM delivers a direct message, creating the DM channel on demand.
func (h *Handler) sendDM(restClient rest.Rest, userID snowflake.ID, content string) error {
	channel, err := restClient.CreateDMChannel(userID)
	if err != nil {
		return err
	}

	_, err = restClient.CreateMessage(channel.ID(), discord.NewMessageCreateBuilder().
		SetContent(content).
		Build())

	return err
}

// guildName resolves the guild's display name for notice text.
func (h *Handler) guildName(restClient rest.Rest) string {
	guild, err := restClient.GetGuild(h.guildID, false)
	if err != nil {
		return "this server"
	}

	return guild.Name
}
