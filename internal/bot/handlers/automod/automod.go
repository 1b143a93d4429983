// Package automod implements forbidden-word enforcement with escalating
// consequences for repeat offenders.
package automod

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/bot/format"
	"github.com/sentinelbot/sentinel/internal/database"
	"github.com/sentinelbot/sentinel/internal/database/models"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"github.com/sentinelbot/sentinel/internal/moderation"
	"github.com/sentinelbot/sentinel/internal/setup/config"
	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Gateway is the subset of the REST surface the handler touches.
// rest.Rest satisfies it.
type Gateway interface {
	DeleteMessage(channelID snowflake.ID, messageID snowflake.ID, opts ...rest.RequestOpt) error
	AddMemberRole(guildID snowflake.ID, userID snowflake.ID, roleID snowflake.ID, opts ...rest.RequestOpt) error
	AddBan(guildID snowflake.ID, userID snowflake.ID, deleteMessageDuration time.Duration, opts ...rest.RequestOpt) error
	CreateDMChannel(userID snowflake.ID, opts ...rest.RequestOpt) (*discord.DMChannel, error)
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
	GetUser(userID snowflake.ID, opts ...rest.RequestOpt) (*discord.User, error)
	GetGuild(guildID snowflake.ID, withCounts bool, opts ...rest.RequestOpt) (*discord.RestGuild, error)
}

// Handler scans guild messages for forbidden words and applies the
// escalation policy when one is found.
type Handler struct {
	db              database.Client
	guildID         snowflake.ID
	mutedRoleID     snowflake.ID
	noticeChannelID snowflake.ID
	words           []word
	logger          *zap.Logger
}

// word pairs a configured forbidden word with its normalized matching form.
type word struct {
	display    string
	normalized string
}

// New builds a Handler, pre-normalizing the configured word list so matching
// only normalizes the incoming message.
func New(db database.Client, cfg *config.Config, logger *zap.Logger) *Handler {
	words := make([]word, 0, len(cfg.Automod.ForbiddenWords))
	for _, w := range cfg.Automod.ForbiddenWords {
		words = append(words, word{display: w, normalized: Normalize(w)})
	}

	return &Handler{
		db:              db,
		guildID:         snowflake.ID(cfg.Guild.ID),
		mutedRoleID:     snowflake.ID(cfg.Guild.MutedRoleID),
		noticeChannelID: snowflake.ID(cfg.Automod.NoticeChannelID),
		words:           words,
		logger:          logger,
	}
}

// stripMarks removes combining marks after canonical decomposition, so
// accented spellings match their base forms.
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize lowercases the input and strips diacritics. Both message content
// and the configured word list pass through it, so matching is insensitive
// to case and accents on either side.
func Normalize(s string) string {
	stripped, _, err := transform.String(stripMarks, strings.ToLower(s))
	if err != nil {
		// Transform only fails on malformed input; fall back to the
		// lowercased original rather than dropping the check.
		return strings.ToLower(s)
	}

	return stripped
}

// Match returns the first configured word contained in the message, in
// configuration order.
func (h *Handler) Match(content string) (string, bool) {
	normalized := Normalize(content)
	for _, w := range h.words {
		if strings.Contains(normalized, w.normalized) {
			return w.display, true
		}
	}

	return "", false
}

// Handle checks one guild message. It returns true when the message tripped
// the filter, in which case command dispatch must not see it.
func (h *Handler) Handle(ctx context.Context, event *events.GuildMessageCreate) bool {
	author := event.Message.Author
	if author.Bot || author.System {
		return false
	}

	matched, ok := h.Match(event.Message.Content)
	if !ok {
		return false
	}

	return h.enforce(ctx, event.Client().Rest(), event.Client().ApplicationID(),
		event.ChannelID, event.MessageID, author, event.Message.Content, matched)
}

// enforce deletes the flagged message, escalates against the author's strike
// count and records the outcome. A recorded action always reflects a
// restriction that actually landed: when the tier's effect fails, nothing is
// written and the notice channel reports the failure instead.
func (h *Handler) enforce(
	ctx context.Context, gw Gateway, botID snowflake.ID,
	channelID snowflake.ID, messageID snowflake.ID,
	author discord.User, content string, matched string,
) bool {
	h.logger.Info("Forbidden word matched",
		zap.Uint64("authorID", uint64(author.ID)),
		zap.String("word", matched))

	if err := gw.DeleteMessage(channelID, messageID,
		rest.WithReason("Automod: forbidden word")); err != nil {
		h.logger.Warn("Failed to delete flagged message",
			zap.Uint64("messageID", uint64(messageID)),
			zap.Error(err))
	}

	user, err := h.db.Model().User().GetOrCreate(ctx, uint64(author.ID), author.Username)
	if err != nil {
		h.logger.Error("Failed to resolve flagged user",
			zap.Uint64("authorID", uint64(author.ID)),
			zap.Error(err))

		return true
	}

	strikes, err := h.db.Model().Action().CountActive(ctx, user.ID,
		moderation.Strikes.CountedKinds, moderation.Strikes.RemovalKinds)
	if err != nil {
		h.logger.Error("Failed to count strikes",
			zap.Uint64("authorID", uint64(author.ID)),
			zap.Error(err))

		return true
	}

	tier := moderation.Escalate(strikes)

	h.logger.Info("Escalating automod action",
		zap.Uint64("authorID", uint64(author.ID)),
		zap.Int("strikes", strikes),
		zap.String("tier", tier.String()))

	if err := h.apply(gw, tier, author.ID, matched); err != nil {
		h.logger.Error("Failed to apply automod action",
			zap.Uint64("authorID", uint64(author.ID)),
			zap.String("tier", tier.String()),
			zap.Error(err))
		h.notify(gw, tier, author.ID, matched, false)

		return true
	}

	if err := h.record(ctx, gw, botID, user.ID, tier, content); err != nil {
		h.logger.Error("Failed to record automod action",
			zap.Uint64("authorID", uint64(author.ID)),
			zap.Error(err))
	}

	h.notify(gw, tier, author.ID, matched, true)

	return true
}

// apply carries out the tier's effect against the author. The returned error
// is the effect that failed to land; notices that merely could not be
// delivered are logged and do not fail the tier. A warning has no restriction
// beyond the notice itself, so there the delivery is the effect.
func (h *Handler) apply(gw Gateway, tier enum.ActionType, authorID snowflake.ID, matched string) error {
	notice := format.AutomodNotice(tier, h.guildName(gw), matched)

	switch tier {
	case enum.ActionTypeAutowarn:
		return h.sendDM(gw, authorID, notice)
	case enum.ActionTypeAutomute:
		if err := gw.AddMemberRole(h.guildID, authorID, h.mutedRoleID,
			rest.WithReason("Automod: "+matched)); err != nil {
			return err
		}

		if err := h.sendDM(gw, authorID, notice); err != nil {
			h.logger.Warn("Failed to deliver mute notice",
				zap.Uint64("userID", uint64(authorID)),
				zap.Error(err))
		}

		return nil
	default:
		// DM before the ban lands, while the shared server still allows it
		if err := h.sendDM(gw, authorID, notice); err != nil {
			h.logger.Warn("Failed to deliver ban notice",
				zap.Uint64("userID", uint64(authorID)),
				zap.Error(err))
		}

		return gw.AddBan(h.guildID, authorID, 0, rest.WithReason("Automod: "+matched))
	}
}

// record persists the escalation outcome attributed to the bot itself.
func (h *Handler) record(ctx context.Context, gw Gateway, botID snowflake.ID, userID int64, tier enum.ActionType, content string) error {
	botName := "automod"
	if bot, err := gw.GetUser(botID); err == nil {
		botName = bot.Username
	}

	moderator, err := h.db.Model().User().GetOrCreate(ctx, uint64(botID), botName)
	if err != nil {
		return err
	}

	_, err = h.db.Model().Action().Record(ctx, models.RecordParams{
		UserID:      userID,
		ModeratorID: moderator.ID,
		Action:      tier,
		Reason:      "Automod: " + content,
	})

	return err
}

// notify posts a short summary to the configured notice channel.
func (h *Handler) notify(gw Gateway, tier enum.ActionType, authorID snowflake.ID, matched string, applied bool) {
	if h.noticeChannelID == 0 {
		return
	}

	p := format.For(tier)

	var content string
	if applied {
		content = fmt.Sprintf("%s %s was %s for saying a forbidden word: %s",
			p.Emoji, format.Mention(authorID), p.PastTense, matched)
	} else {
		content = fmt.Sprintf(":x: Failed to %s %s for saying a forbidden word: %s",
			p.Verb, format.Mention(authorID), matched)
	}

	_, err := gw.CreateMessage(h.noticeChannelID, discord.NewMessageCreateBuilder().
		SetContent(content).
		Build())
	if err != nil {
		h.logger.Warn("Failed to post automod notice", zap.Error(err))
	}
}

func (h *Handler) sendDM(gw Gateway, userID snowflake.ID, content string) error {
	channel, err := gw.CreateDMChannel(userID)
	if err != nil {
		return err
	}

	_, err = gw.CreateMessage(channel.ID(), discord.NewMessageCreateBuilder().
		SetContent(content).
		Build())

	return err
}

func (h *Handler) guildName(gw Gateway) string {
	guild, err := gw.GetGuild(h.guildID, false)
	if err != nil {
		return "this server"
	}

	return guild.Name
}
