// Package format renders moderation outcomes and notices for humans.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/dustin/go-humanize"
	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
)

// Presentation binds an action kind to its notice fragments.
type Presentation struct {
	// Emoji tags the headline on both sides.
	Emoji string
	// PastTense completes "X was ..." phrasing.
	PastTense string
	// Verb is the imperative form used in failure listings.
	Verb string
}

var presentations = map[enum.ActionType]Presentation{
	enum.ActionTypeTempmute:       {Emoji: "🔇", PastTense: "temporarily muted", Verb: "mute"},
	enum.ActionTypeMute:           {Emoji: "🔇", PastTense: "muted", Verb: "mute"},
	enum.ActionTypeUnmute:         {Emoji: "🔊", PastTense: "unmuted", Verb: "unmute"},
	enum.ActionTypeWarn:           {Emoji: "⚠️", PastTense: "warned", Verb: "warn"},
	enum.ActionTypeRemoveWarn:     {Emoji: "⚠️", PastTense: "unwarned", Verb: "unwarn"},
	enum.ActionTypeAutowarn:       {Emoji: "⚠️", PastTense: "automatically warned", Verb: "warn"},
	enum.ActionTypeRemoveAutowarn: {Emoji: "⚠️", PastTense: "unwarned", Verb: "unwarn"},
	enum.ActionTypeAutomute:       {Emoji: "🔇", PastTense: "automatically muted", Verb: "mute"},
	enum.ActionTypeRemoveAutomute: {Emoji: "🔊", PastTense: "unmuted", Verb: "unmute"},
	enum.ActionTypeKick:           {Emoji: "👢", PastTense: "kicked", Verb: "kick"},
	enum.ActionTypeTempban:        {Emoji: "🔨", PastTense: "temporarily banned", Verb: "ban"},
	enum.ActionTypeBan:            {Emoji: "🔨", PastTense: "banned", Verb: "ban"},
	enum.ActionTypeUnban:          {Emoji: "🕊️", PastTense: "unbanned", Verb: "unban"},
}

// For returns the presentation fragments for an action kind.
func For(kind enum.ActionType) Presentation {
	return presentations[kind]
}

// Mention renders a user mention for the given Discord ID.
func Mention(id snowflake.ID) string {
	return fmt.Sprintf("<@%d>", id)
}

// Members renders a list of user mentions as readable prose.
func Members(ids []snowflake.ID) string {
	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = Mention(id)
	}

	return commaSeparate(mentions)
}

// commaSeparate joins items with commas and a serial "and".
func commaSeparate(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// reasonClause renders the trailing reason block of a notice.
func reasonClause(reason string) string {
	if reason == "" {
		return "with no reason given"
	}

	return "with the reason\n> " + reason
}

// untilSuffix renders the expiry suffix of a temporary action notice.
func untilSuffix(until *time.Time) string {
	if until == nil {
		return ""
	}

	return fmt.Sprintf(" until %s (a duration of %s)",
		humanize.Time(*until), Duration(time.Until(*until)))
}

// Duration renders a duration in whole days, hours, and minutes. Durations
// under a minute render as "moments".
func Duration(d time.Duration) string {
	if d < time.Minute {
		return "moments"
	}

	var parts []string

	if days := int(d.Hours()) / 24; days > 0 {
		parts = append(parts, plural(days, "day"))
	}

	if hours := int(d.Hours()) % 24; hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}

	if minutes := int(d.Minutes()) % 60; minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}

	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

// Notice renders the aggregate outcome of one moderation command: a headline
// covering the subjects the action succeeded for, and a failure listing when
// any subject failed. Returns an empty string when there is nothing to say.
func Notice(kind enum.ActionType, succeeded, failed []snowflake.ID, reason string, until *time.Time) string {
	p := For(kind)

	var parts []string

	if len(succeeded) > 0 {
		were := "were"
		if len(succeeded) == 1 {
			were = "was"
		}

		parts = append(parts, fmt.Sprintf("%s **%s** %s\n%s %s %s%s %s",
			p.Emoji, strings.ToUpper(p.PastTense), p.Emoji,
			Members(succeeded), were, p.PastTense, untilSuffix(until), reasonClause(reason)))
	}

	if len(failed) > 0 {
		parts = append(parts, fmt.Sprintf("Failed to %s %s", p.Verb, Members(failed)))
	}

	return strings.Join(parts, "\n")
}

// WarningLine renders one entry of the warning listing in moderator-facing
// form.
func WarningLine(action *types.ModerationAction) string {
	moderator := "unknown"
	if action.Moderator != nil {
		moderator = action.Moderator.Username
	}

	withReason := "with no reason given"
	if action.Reason != "" {
		withReason = "with the reason: " + action.Reason
	}

	return fmt.Sprintf(" • Warning %d, issued by %s %s %s",
		action.ID, moderator, humanize.Time(action.Timestamp), withReason)
}

// DirectWarning renders the DM sent to the subject of a warn command.
func DirectWarning(guildName, reason string) string {
	p := For(enum.ActionTypeWarn)

	withReason := "with no reason given."
	if reason != "" {
		withReason = "with the following reason:\n> " + reason
	}

	return fmt.Sprintf("%s **WARNING** %s\nYou have been warned in %s %s",
		p.Emoji, p.Emoji, guildName, withReason)
}

// AutomodNotice renders the DM sent to a user the escalation engine acted on.
func AutomodNotice(tier enum.ActionType, guildName, word string) string {
	p := For(tier)

	switch tier {
	case enum.ActionTypeAutowarn:
		return fmt.Sprintf("%s **AUTOMATIC WARNING** %s\nYou have been automatically warned in %s for saying %s.",
			p.Emoji, p.Emoji, guildName, word)
	case enum.ActionTypeAutomute:
		return fmt.Sprintf("%s **AUTOMATIC MUTE** %s\nYou have been automatically muted in %s for saying %s.",
			p.Emoji, p.Emoji, guildName, word)
	default:
		return fmt.Sprintf("%s **AUTOMATIC BAN** %s\nYou have been repeatedly muted in %s; this account is now banned.",
			p.Emoji, p.Emoji, guildName)
	}
}
