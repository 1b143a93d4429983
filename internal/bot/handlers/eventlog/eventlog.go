// Package eventlog posts guild lifecycle events to configured log channels as
// embeds. Each event is driven by a config binding naming the target channel
// and the title and description templates.
package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/bot/format"
	"github.com/sentinelbot/sentinel/internal/setup/config"
	"go.uber.org/zap"
)

// newAccountAge is the account age below which a join is flagged.
const newAccountAge = 7 * 24 * time.Hour

// Handler renders lifecycle events into log channel embeds.
type Handler struct {
	guildID  snowflake.ID
	footer   string
	channels map[string]snowflake.ID
	events   map[string]config.EventBinding
	logger   *zap.Logger
}

// New builds a Handler from the event log configuration.
func New(cfg *config.Config, logger *zap.Logger) *Handler {
	channels := make(map[string]snowflake.ID, len(cfg.EventLog.Channels))
	for name, id := range cfg.EventLog.Channels {
		channels[name] = snowflake.ID(id)
	}

	return &Handler{
		guildID:  snowflake.ID(cfg.Guild.ID),
		footer:   cfg.EventLog.Footer,
		channels: channels,
		events:   cfg.EventLog.Events,
		logger:   logger,
	}
}

// expand substitutes {name} placeholders in a template. Unknown placeholders
// are left in place so a template typo is visible in the log channel instead
// of silently vanishing.
func expand(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

// emit renders and posts one event. Events without a binding, and bindings
// naming an unknown channel, are skipped.
func (h *Handler) emit(client bot.Client, name string, user *discord.User, vars map[string]string) {
	binding, ok := h.events[name]
	if !ok {
		return
	}

	channelID, ok := h.channels[binding.Channel]
	if !ok || channelID == 0 {
		h.logger.Warn("Event binding names an unconfigured channel",
			zap.String("event", name),
			zap.String("channel", binding.Channel))

		return
	}

	builder := discord.NewEmbedBuilder().
		SetTitle(expand(binding.Title, vars)).
		SetDescription(expand(binding.Description, vars)).
		SetColor(binding.Colour).
		SetTimestamp(time.Now())

	if user != nil {
		builder.SetAuthor(user.Username, "", user.EffectiveAvatarURL())
		builder.SetFooterText(expand(h.footer, map[string]string{"id": user.ID.String()}))
	}

	_, err := client.Rest().CreateMessage(channelID, discord.NewMessageCreateBuilder().
		SetEmbeds(builder.Build()).
		Build())
	if err != nil {
		h.logger.Warn("Failed to post event log embed",
			zap.String("event", name),
			zap.Error(err))
	}
}

func (h *Handler) OnMemberJoin(event *events.GuildMemberJoin) {
	user := event.Member.User

	age := time.Since(user.ID.Time())

	warning := ""
	if age < newAccountAge {
		warning = "**:warning: NEW ACCOUNT! :warning:**"
	}

	h.emit(event.Client(), "member_join", &user, map[string]string{
		"ping":    format.Mention(user.ID),
		"age":     format.Duration(age),
		"warning": warning,
	})
}

// OnMemberLeave distinguishes voluntary leaves from kicks by checking the
// audit log for a recent kick entry targeting the member.
func (h *Handler) OnMemberLeave(event *events.GuildMemberLeave) {
	user := event.User

	entry, found := h.findAuditEntry(event.Client(), discord.AuditLogEventMemberKick, user.ID, auditScanLimit)
	if found {
		h.emit(event.Client(), "member_kick", &user, map[string]string{
			"user":   user.Username,
			"source": format.Mention(entry.UserID),
			"reason": auditReason(entry),
		})

		return
	}

	vars := map[string]string{"ping": format.Mention(user.ID), "age": "unknown"}
	if !event.Member.JoinedAt.IsZero() {
		vars["age"] = format.Duration(time.Since(event.Member.JoinedAt))
	}

	h.emit(event.Client(), "member_leave", &user, vars)
}

func (h *Handler) OnBan(event *events.GuildBan) {
	user := event.User

	vars := map[string]string{"user": user.Username, "source": "Unknown", "reason": ""}

	if entry, found := h.findAuditEntry(event.Client(), discord.AuditLogEventMemberBanAdd, user.ID, 1); found {
		vars["source"] = format.Mention(entry.UserID)
		vars["reason"] = auditReason(entry)
	}

	h.emit(event.Client(), "member_ban", &user, vars)
}

func (h *Handler) OnUnban(event *events.GuildUnban) {
	user := event.User

	vars := map[string]string{"user": user.Username, "source": "Unknown"}

	if entry, found := h.findAuditEntry(event.Client(), discord.AuditLogEventMemberBanRemove, user.ID, 1); found {
		vars["source"] = format.Mention(entry.UserID)
	}

	h.emit(event.Client(), "user_unban", &user, vars)
}

// OnMemberUpdate fans one gateway event out to the nickname and role change
// logs, emitting each aspect that actually changed.
func (h *Handler) OnMemberUpdate(event *events.GuildMemberUpdate) {
	user := event.Member.User

	if nick(event.OldMember) != nick(event.Member) {
		h.emit(event.Client(), "nickname", &user, map[string]string{
			"before": nick(event.OldMember),
			"after":  nick(event.Member),
		})
	}

	if added := roleDiff(event.Member.RoleIDs, event.OldMember.RoleIDs); len(added) > 0 {
		h.emit(event.Client(), "role_add", &user, map[string]string{
			"roles": roleMentions(added),
		})
	}

	if removed := roleDiff(event.OldMember.RoleIDs, event.Member.RoleIDs); len(removed) > 0 {
		h.emit(event.Client(), "role_remove", &user, map[string]string{
			"roles": roleMentions(removed),
		})
	}
}

func (h *Handler) OnUserUpdate(event *events.UserUpdate) {
	user := event.User

	if event.OldUser.Username != user.Username {
		h.emit(event.Client(), "member_username", &user, map[string]string{
			"before": event.OldUser.Username,
			"after":  user.Username,
		})
	}

	if event.OldUser.Avatar != user.Avatar {
		h.emit(event.Client(), "member_avatar", &user, map[string]string{
			"ping": format.Mention(user.ID),
		})
	}
}

func (h *Handler) OnMessageUpdate(event *events.GuildMessageUpdate) {
	if event.Message.Author.Bot || event.OldMessage.Content == event.Message.Content {
		return
	}

	author := event.Message.Author

	h.emit(event.Client(), "message_edit", &author, map[string]string{
		"channel": channelMention(event.ChannelID),
		"before":  event.OldMessage.Content,
		"after":   event.Message.Content,
		"link":    messageLink(h.guildID, event.ChannelID, event.MessageID),
	})
}

func (h *Handler) OnMessageDelete(event *events.GuildMessageDelete) {
	if event.Message.Author.Bot {
		return
	}

	author := event.Message.Author

	h.emit(event.Client(), "message_delete", &author, map[string]string{
		"channel": channelMention(event.ChannelID),
		"ping":    format.Mention(author.ID),
		"message": event.Message.Content,
	})
}

func (h *Handler) OnVoiceJoin(event *events.GuildVoiceJoin) {
	user := event.Member.User

	h.emit(event.Client(), "voice_join", &user, map[string]string{
		"ping":    format.Mention(user.ID),
		"channel": voiceChannelMention(event.VoiceState.ChannelID),
	})
}

func (h *Handler) OnVoiceMove(event *events.GuildVoiceMove) {
	user := event.Member.User

	h.emit(event.Client(), "voice_move", &user, map[string]string{
		"before": voiceChannelMention(event.OldVoiceState.ChannelID),
		"after":  voiceChannelMention(event.VoiceState.ChannelID),
	})
}

func (h *Handler) OnVoiceLeave(event *events.GuildVoiceLeave) {
	user := event.Member.User

	h.emit(event.Client(), "voice_leave", &user, map[string]string{
		"ping":    format.Mention(user.ID),
		"channel": voiceChannelMention(event.OldVoiceState.ChannelID),
	})
}

func (h *Handler) OnChannelCreate(event *events.GuildChannelCreate) {
	h.channelEvent(event.Client(), "channel_create", discord.AuditLogEventChannelCreate, event.Channel, nil)
}

func (h *Handler) OnChannelDelete(event *events.GuildChannelDelete) {
	h.channelEvent(event.Client(), "channel_delete", discord.AuditLogEventChannelDelete, event.Channel, nil)
}

func (h *Handler) OnChannelUpdate(event *events.GuildChannelUpdate) {
	changes := channelChanges(event.OldChannel, event.Channel)
	if changes == "" {
		return
	}

	h.channelEvent(event.Client(), "channel_update", discord.AuditLogEventChannelUpdate, event.Channel,
		map[string]string{"changes": changes})
}

// channelEvent emits one channel lifecycle event, attributing it to the actor
// from the audit log when one can be found.
func (h *Handler) channelEvent(
	client bot.Client,
	name string,
	auditType discord.AuditLogEvent,
	channel discord.GuildChannel,
	extra map[string]string,
) {
	vars := map[string]string{
		"ping": "Unknown",
		"type": channelTypeName(channel.Type()),
		"name": channelDisplayName(channel),
	}
	for key, value := range extra {
		vars[key] = value
	}

	var user *discord.User

	if entry, found := h.findAuditEntry(client, auditType, channel.ID(), auditScanLimit); found {
		vars["ping"] = format.Mention(entry.UserID)

		if actor, err := client.Rest().GetUser(entry.UserID); err == nil {
			user = actor
		}
	}

	h.emit(client, name, user, vars)
}

func nick(member discord.Member) string {
	if member.Nick == nil {
		return ""
	}

	return *member.Nick
}

// roleDiff returns the IDs present in a but not in b.
func roleDiff(a, b []snowflake.ID) []snowflake.ID {
	old := make(map[snowflake.ID]struct{}, len(b))
	for _, id := range b {
		old[id] = struct{}{}
	}

	var diff []snowflake.ID

	for _, id := range a {
		if _, ok := old[id]; !ok {
			diff = append(diff, id)
		}
	}

	return diff
}

func roleMentions(ids []snowflake.ID) string {
	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = fmt.Sprintf("<@&%d>", id)
	}

	return strings.Join(mentions, ", ")
}

func channelMention(id snowflake.ID) string {
	return fmt.Sprintf("<#%d>", id)
}

func voiceChannelMention(id *snowflake.ID) string {
	if id == nil {
		return "unknown channel"
	}

	return channelMention(*id)
}

func messageLink(guildID, channelID, messageID snowflake.ID) string {
	return fmt.Sprintf("https://discord.com/channels/%d/%d/%d", guildID, channelID, messageID)
}

func channelTypeName(channelType discord.ChannelType) string {
	switch channelType {
	case discord.ChannelTypeGuildText:
		return "text"
	case discord.ChannelTypeGuildVoice:
		return "voice"
	case discord.ChannelTypeGuildCategory:
		return "category"
	case discord.ChannelTypeGuildStageVoice:
		return "stage"
	default:
		return "channel"
	}
}

// channelDisplayName renders a channel by name rather than mention, so the
// log stays readable after the channel is deleted.
func channelDisplayName(channel discord.GuildChannel) string {
	if channel.Type() == discord.ChannelTypeGuildText {
		return "#" + channel.Name()
	}

	return channel.Name()
}

// channelChanges renders the changed attributes of a channel update as
// strikethrough before/after lines.
func channelChanges(before, after discord.GuildChannel) string {
	var builder strings.Builder

	if before.Name() != after.Name() {
		fmt.Fprintf(&builder, "Name ~~%s~~ %s\n",
			channelDisplayName(before), channelDisplayName(after))
	}

	if beforeParent, afterParent := parentID(before), parentID(after); beforeParent != afterParent {
		fmt.Fprintf(&builder, "Category ~~%s~~ %s\n", beforeParent, afterParent)
	}

	return builder.String()
}

func parentID(channel discord.GuildChannel) string {
	if id := channel.ParentID(); id != nil {
		return channelMention(*id)
	}

	return "none"
}
