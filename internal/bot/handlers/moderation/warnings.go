package moderation

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/disgoorg/disgo/events"
	"github.com/sentinelbot/sentinel/internal/bot/command"
	"github.com/sentinelbot/sentinel/internal/bot/format"
	"github.com/sentinelbot/sentinel/internal/database/types"
	policy "github.com/sentinelbot/sentinel/internal/moderation"
	"go.uber.org/zap"
)

func (h *Handler) handleWarnShow(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, _ := command.Mentions(args)
	if len(targets) != 1 {
		h.reply(event, "usage: warn show @user")
		return
	}

	target := targets[0]

	user, err := h.db.Model().User().GetByDiscordID(ctx, uint64(target))
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			h.reply(event, format.Mention(target)+" has no warnings")
			return
		}

		h.logger.Error("Failed to look up user for warning listing",
			zap.Uint64("targetID", uint64(target)),
			zap.Error(err))
		h.reply(event, "Failed to fetch warnings")

		return
	}

	warnings, err := h.db.Model().Action().ListActive(ctx, user.ID,
		policy.WarnListing.CountedKinds, policy.WarnListing.RemovalKinds)
	if err != nil {
		h.logger.Error("Failed to list warnings",
			zap.Uint64("targetID", uint64(target)),
			zap.Error(err))
		h.reply(event, "Failed to fetch warnings")

		return
	}

	if len(warnings) == 0 {
		h.reply(event, "No warnings have been issued for "+format.Mention(target))
		return
	}

	var builder strings.Builder

	builder.WriteString("Warnings issued for " + format.Mention(target) + ":")

	for _, warning := range warnings {
		builder.WriteString("\n" + format.WarningLine(warning))
	}

	h.reply(event, builder.String())
}

func (h *Handler) handleWarnRemove(ctx context.Context, event *events.GuildMessageCreate, args []string) {
	targets, remaining := command.Mentions(args)
	if len(targets) != 1 || len(remaining) == 0 {
		h.reply(event, "usage: warn remove @user <id> [reason]")
		return
	}

	target := targets[0]

	warnID, err := strconv.ParseInt(remaining[0], 10, 64)
	if err != nil {
		h.reply(event, "usage: warn remove @user <id> [reason] (id from warn show)")
		return
	}

	reason := command.Rest(remaining[1:])

	user, err := h.db.Model().User().GetByDiscordID(ctx, uint64(target))
	if err != nil {
		if !errors.Is(err, types.ErrUserNotFound) {
			h.logger.Error("Failed to look up user for warning removal",
				zap.Uint64("targetID", uint64(target)),
				zap.Error(err))
		}

		h.react(event, "❌")

		return
	}

	// Constraining the lookup to the mentioned member means a valid id paired
	// with the wrong member is rejected rather than removing someone else's
	// warning.
	warning, err := h.db.Model().Action().GetUserAction(ctx, warnID, user.ID,
		policy.WarnListing.CountedKinds)
	if err != nil {
		if !errors.Is(err, types.ErrActionNotFound) {
			h.logger.Error("Failed to fetch warning for removal",
				zap.Int64("warnID", warnID),
				zap.Error(err))
		}

		h.react(event, "❌")

		return
	}

	removalKind, ok := policy.RemovalFor(warning.Action)
	if !ok {
		h.react(event, "❌")
		return
	}

	moderator := event.Message.Author
	if err := h.record(ctx, event.Client().Rest(), target, moderator, removalKind, reason, nil, &warning.ID); err != nil {
		h.logger.Error("Failed to record warning removal",
			zap.Int64("warnID", warnID),
			zap.Error(err))
		h.react(event, "❌")

		return
	}

	h.logger.Info("Warning removed",
		zap.Int64("warnID", warnID),
		zap.Uint64("targetID", uint64(target)),
		zap.Uint64("moderatorID", uint64(moderator.ID)))
	h.react(event, "✅")
}
