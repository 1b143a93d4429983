package format

import (
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
)

func TestMembers(t *testing.T) {
	tests := []struct {
		name string
		ids  []snowflake.ID
		want string
	}{
		{"single", []snowflake.ID{1}, "<@1>"},
		{"pair", []snowflake.ID{1, 2}, "<@1> and <@2>"},
		{"serial comma", []snowflake.ID{1, 2, 3}, "<@1>, <@2>, and <@3>"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Members(tt.ids))
		})
	}
}

func TestNotice_SingleSubject(t *testing.T) {
	notice := Notice(enum.ActionTypeMute, []snowflake.ID{42}, nil, "spamming", nil)

	assert.Contains(t, notice, "**MUTED**")
	assert.Contains(t, notice, "<@42> was muted")
	assert.Contains(t, notice, "with the reason\n> spamming")
	assert.NotContains(t, notice, "Failed")
}

func TestNotice_PluralizesSubjects(t *testing.T) {
	notice := Notice(enum.ActionTypeKick, []snowflake.ID{1, 2}, nil, "", nil)

	assert.Contains(t, notice, "<@1> and <@2> were kicked")
	assert.Contains(t, notice, "with no reason given")
}

func TestNotice_ListsFailures(t *testing.T) {
	notice := Notice(enum.ActionTypeMute, []snowflake.ID{1, 3}, []snowflake.ID{2}, "", nil)

	assert.Contains(t, notice, "<@1> and <@3> were muted")
	assert.Contains(t, notice, "Failed to mute <@2>")
}

func TestNotice_OnlyFailures(t *testing.T) {
	notice := Notice(enum.ActionTypeBan, nil, []snowflake.ID{7}, "", nil)

	assert.Equal(t, "Failed to ban <@7>", notice)
}

func TestNotice_TemporarySuffix(t *testing.T) {
	until := time.Now().Add(2 * time.Hour)
	notice := Notice(enum.ActionTypeTempmute, []snowflake.ID{1}, nil, "", &until)

	assert.Contains(t, notice, "until")
	assert.Contains(t, notice, "a duration of")
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "moments"},
		{time.Minute, "1 minute"},
		{90 * time.Minute, "1 hour 30 minutes"},
		{25 * time.Hour, "1 day 1 hour"},
		{49*time.Hour + 5*time.Minute, "2 days 1 hour 5 minutes"},
	}

	for _, tt := range tests {
		if got := Duration(tt.d); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWarningLine(t *testing.T) {
	action := &types.ModerationAction{
		ID:        5,
		Timestamp: time.Now().Add(-24 * time.Hour),
		Action:    enum.ActionTypeWarn,
		Reason:    "rude",
		Moderator: &types.User{Username: "mod#0001"},
	}

	line := WarningLine(action)

	assert.True(t, strings.HasPrefix(line, " • Warning 5, issued by mod#0001"))
	assert.Contains(t, line, "with the reason: rude")
}

func TestAutomodNotice_Tiers(t *testing.T) {
	warn := AutomodNotice(enum.ActionTypeAutowarn, "Test Guild", "badword")
	assert.Contains(t, warn, "AUTOMATIC WARNING")
	assert.Contains(t, warn, "badword")

	mute := AutomodNotice(enum.ActionTypeAutomute, "Test Guild", "badword")
	assert.Contains(t, mute, "AUTOMATIC MUTE")

	ban := AutomodNotice(enum.ActionTypeBan, "Test Guild", "badword")
	assert.Contains(t, ban, "AUTOMATIC BAN")
}
