// Package bot wires the gateway connection to the automod, command, and
// event log handlers.
package bot

import (
	"context"
	"strings"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/bot/command"
	"github.com/sentinelbot/sentinel/internal/bot/handlers/automod"
	"github.com/sentinelbot/sentinel/internal/bot/handlers/eventlog"
	"github.com/sentinelbot/sentinel/internal/bot/handlers/moderation"
	"github.com/sentinelbot/sentinel/internal/database"
	"github.com/sentinelbot/sentinel/internal/setup/config"
	"go.uber.org/zap"
)

// Bot owns the gateway client and routes events to the handlers.
type Bot struct {
	client     bot.Client
	guildID    snowflake.ID
	prefix     string
	automod    *automod.Handler
	moderation *moderation.Handler
	eventLog   *eventlog.Handler
	logger     *zap.Logger
}

// New builds the handlers and the Discord client with the gateway intents
// and caches the handlers need.
func New(db database.Client, cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	b := &Bot{
		guildID:    snowflake.ID(cfg.Guild.ID),
		prefix:     cfg.Discord.Prefix,
		automod:    automod.New(db, cfg, logger.Named("automod")),
		moderation: moderation.New(db, cfg, logger.Named("moderation")),
		eventLog:   eventlog.New(cfg, logger.Named("eventlog")),
		logger:     logger,
	}

	client, err := disgo.New(cfg.Discord.Token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMembers,
				gateway.IntentGuildModeration,
				gateway.IntentGuildMessages,
				gateway.IntentGuildVoiceStates,
				gateway.IntentDirectMessages,
				gateway.IntentMessageContent,
			),
		),
		// Members, messages, and voice states are cached so update and
		// delete events can report the previous state
		bot.WithCacheConfigOpts(
			cache.WithCaches(
				cache.FlagGuilds,
				cache.FlagChannels,
				cache.FlagRoles,
				cache.FlagMembers,
				cache.FlagMessages,
				cache.FlagVoiceStates,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnGuildMessageCreate: b.onMessageCreate,
			OnGuildMemberJoin:    b.eventLog.OnMemberJoin,
			OnGuildMemberLeave:   b.eventLog.OnMemberLeave,
			OnGuildMemberUpdate:  b.eventLog.OnMemberUpdate,
			OnGuildBan:           b.eventLog.OnBan,
			OnGuildUnban:         b.eventLog.OnUnban,
			OnUserUpdate:         b.eventLog.OnUserUpdate,
			OnGuildMessageUpdate: b.eventLog.OnMessageUpdate,
			OnGuildMessageDelete: b.eventLog.OnMessageDelete,
			OnGuildVoiceJoin:     b.eventLog.OnVoiceJoin,
			OnGuildVoiceMove:     b.eventLog.OnVoiceMove,
			OnGuildVoiceLeave:    b.eventLog.OnVoiceLeave,
			OnGuildChannelCreate: b.eventLog.OnChannelCreate,
			OnGuildChannelUpdate: b.eventLog.OnChannelUpdate,
			OnGuildChannelDelete: b.eventLog.OnChannelDelete,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client

	return b, nil
}

// Client exposes the underlying gateway client for components that make
// their own REST calls.
func (b *Bot) Client() bot.Client {
	return b.client
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Opening gateway connection")
	return b.client.OpenGateway(ctx)
}

// Close shuts down the gateway connection.
func (b *Bot) Close(ctx context.Context) {
	b.client.Close(ctx)
}

// onMessageCreate gives automod first refusal on every message; messages it
// acts on never reach command dispatch.
func (b *Bot) onMessageCreate(event *events.GuildMessageCreate) {
	if event.GuildID != b.guildID {
		return
	}

	ctx := context.Background()

	if b.automod.Handle(ctx, event) {
		return
	}

	if event.Message.Author.Bot || !strings.HasPrefix(event.Message.Content, b.prefix) {
		return
	}

	inv, ok := command.Parse(b.prefix, event.Message.Content)
	if !ok {
		return
	}

	if !b.moderation.Handle(ctx, event, inv) {
		b.logger.Debug("Unknown command", zap.String("name", inv.Name))
	}
}
