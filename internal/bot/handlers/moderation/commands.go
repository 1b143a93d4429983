package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/bot/command"
	"github.com/sentinelbot/sentinel/internal/bot/format"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"go.uber.org/zap"
)

func (h *Handler) handleMute(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 {
		h.reply(event, "usage: mute @user... [reason]")
		return
	}

	reason := command.Rest(remaining)

	h.run(ctx, event, enum.ActionTypeMute, targets, reason, nil, func(ctx context.Context, target snowflake.ID) error {
		return h.addMutedRole(ctx, event, target, reason)
	})
}

func (h *Handler) handleTempmute(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 || len(remaining) == 0 {
		h.reply(event, "usage: tempmute @user... <duration> [reason]")
		return
	}

	duration, err := command.ParseDuration(remaining[0])
	if err != nil {
		h.reply(event, "usage: tempmute @user... <duration> [reason] (duration like 30m, 2h, 7d)")
		return
	}

	reason := command.Rest(remaining[1:])
	until := time.Now().Add(duration)

	h.run(ctx, event, enum.ActionTypeTempmute, targets, reason, &until, func(ctx context.Context, target snowflake.ID) error {
		return h.addMutedRole(ctx, event, target, reason)
	})
}

func (h *Handler) handleUnmute(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 {
		h.reply(event, "usage: unmute @user... [reason]")
		return
	}

	reason := command.Rest(remaining)

	h.run(ctx, event, enum.ActionTypeUnmute, targets, reason, nil, func(ctx context.Context, target snowflake.ID) error {
		return event.Client().Rest().RemoveMemberRole(h.guildID, target, h.mutedRoleID, restReason(reason))
	})
}

func (h *Handler) handleWarn(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	// Subcommands manage existing warnings; everything else issues new ones
	if len(args) > 0 {
		switch args[0] {
		case "show":
			h.handleWarnShow(ctx, event, args[1:])
			return
		case "remove":
			h.handleWarnRemove(ctx, event, args[1:])
			return
		}
	}

	targets, remaining := command.Mentions(args)
	if len(targets) == 0 {
		h.reply(event, "usage: warn @user... [reason] | warn show @user | warn remove @user <id> [reason]")
		return
	}

	reason := command.Rest(remaining)
	guildName := h.guildName(event.Client().Rest())

	h.run(ctx, event, enum.ActionTypeWarn, targets, reason, nil, func(_ context.Context, target snowflake.ID) error {
		return h.sendDM(event.Client().Rest(), target, format.DirectWarning(guildName, reason))
	})
}

func (h *Handler) handleKick(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 {
		h.reply(event, "usage: kick @user... [reason]")
		return
	}

	reason := command.Rest(remaining)

	h.run(ctx, event, enum.ActionTypeKick, targets, reason, nil, func(_ context.Context, target snowflake.ID) error {
		return event.Client().Rest().RemoveMember(h.guildID, target, restReason(reason))
	})
}

func (h *Handler) handleBan(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 {
		h.reply(event, "usage: ban @user... [delete_message_days] [reason]")
		return
	}

	deleteDuration, remaining := parseDeleteDays(remaining)
	reason := command.Rest(remaining)

	h.run(ctx, event, enum.ActionTypeBan, targets, reason, nil, func(_ context.Context, target snowflake.ID) error {
		return event.Client().Rest().AddBan(h.guildID, target, deleteDuration, restReason(reason))
	})
}

func (h *Handler) handleTempban(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 || len(remaining) == 0 {
		h.reply(event, "usage: tempban @user... <duration> [delete_message_days] [reason]")
		return
	}

	duration, err := command.ParseDuration(remaining[0])
	if err != nil {
		h.reply(event, "usage: tempban @user... <duration> [delete_message_days] [reason] (duration like 30m, 2h, 7d)")
		return
	}

	deleteDuration, remaining := parseDeleteDays(remaining[1:])
	reason := command.Rest(remaining)
	until := time.Now().Add(duration)

	h.run(ctx, event, enum.ActionTypeTempban, targets, reason, &until, func(_ context.Context, target snowflake.ID) error {
		return event.Client().Rest().AddBan(h.guildID, target, deleteDuration, restReason(reason))
	})
}

func (h *Handler) handleUnban(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) == 0 {
		h.reply(event, "usage: unban @user... [reason]")
		return
	}

	reason := command.Rest(remaining)

	h.run(ctx, event, enum.ActionTypeUnban, targets, reason, nil, func(_ context.Context, target snowflake.ID) error {
		return event.Client().Rest().DeleteBan(h.guildID, target, restReason(reason))
	})
}

func (h *Handler) handlePurge(_ context.Context, event *events.GuildMessageCreate, args []string) {
	if len(args) == 0 {
		h.reply(event, "usage: purge <count>")
		return
	}

	count, err := parsePurgeCount(args[0])
	if err != nil {
		h.reply(event, fmt.Sprintf("usage: purge <count> (count must be between 1 and %d)", maxPurgeCount))
		return
	}

	restClient := event.Client().Rest()

	// One extra to include the command message itself
	messages, err := restClient.GetMessages(event.ChannelID, 0, 0, 0, count+1)
	if err != nil {
		h.logger.Error("Failed to fetch messages for purge",
			zap.Uint64("channelID", uint64(event.ChannelID)),
			zap.Error(err))
		h.reply(event, "Failed to fetch messages to purge")

		return
	}

	messageIDs := make([]snowflake.ID, len(messages))
	for i, message := range messages {
		messageIDs[i] = message.ID
	}

	if err := restClient.BulkDeleteMessages(event.ChannelID, messageIDs); err != nil {
		h.logger.Error("Failed to purge messages",
			zap.Uint64("channelID", uint64(event.ChannelID)),
			zap.Int("count", len(messageIDs)),
			zap.Error(err))
		h.reply(event, "Failed to purge messages")

		return
	}

	h.logger.Info("Purged messages",
		zap.Uint64("moderatorID", uint64(event.Message.Author.ID)),
		zap.Uint64("channelID", uint64(event.ChannelID)),
		zap.Int("count", len(messageIDs)))
}

// addMutedRole applies the configured muted role to a member.
func (h *Handler) addMutedRole(_ context.Context, event *events.GuildMessageCreate, target snowflake.ID, reason string) error {
	return event.Client().Rest().AddMemberRole(h.guildID, target, h.mutedRoleID, restReason(reason))
}

// maxPurgeCount is the most messages one purge may remove. Bulk deletion
// tops out at 100 messages per request, and one slot is reserved for the
// command message itself.
const maxPurgeCount = 99

// parsePurgeCount parses a purge count and enforces the bulk deletion cap.
func parsePurgeCount(arg string) (int, error) {
	count, err := command.ParseCount(arg)
	if err != nil {
		return 0, err
	}

	if count > maxPurgeCount {
		return 0, fmt.Errorf("%w: count above %d", command.ErrInvalidArgument, maxPurgeCount)
	}

	return count, nil
}

// parseDeleteDays consumes an optional leading message-deletion day count
// from ban arguments.
func parseDeleteDays(args []string) (time.Duration, []string) {
	if len(args) == 0 {
		return 0, args
	}

	days, err := command.ParseCount(args[0])
	if err != nil {
		return 0, args
	}

	return time.Duration(days) * 24 * time.Hour, args[1:]
}

// restReason attaches an audit log reason when one was given.
func restReason(reason string) rest.RequestOpt {
	if reason == "" {
		return rest.WithReason("No reason given")
	}

	return rest.WithReason(reason)
}
