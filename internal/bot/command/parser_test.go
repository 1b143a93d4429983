package command

import (
	"errors"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		content  string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"simple command", "!", "!ping", "ping", []string{}, true},
		{"command with args", "!", "!mute <@1> spamming", "mute", []string{"<@1>", "spamming"}, true},
		{"uppercase name lowered", "!", "!MUTE <@1>", "mute", []string{"<@1>"}, true},
		{"no prefix", "!", "hello there", "", nil, false},
		{"prefix only", "!", "!", "", nil, false},
		{"prefix with spaces", "!", "!   ", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := Parse(tt.prefix, tt.content)
			require.Equal(t, tt.wantOK, ok)

			if !ok {
				return
			}

			assert.Equal(t, tt.wantName, inv.Name)
			assert.Equal(t, tt.wantArgs, inv.Args)
		})
	}
}

func TestMentions(t *testing.T) {
	ids, rest := Mentions([]string{"<@1>", "<@!2>", "3", "being", "rude"})

	assert.Equal(t, []snowflake.ID{1, 2, 3}, ids)
	assert.Equal(t, []string{"being", "rude"}, rest)
}

func TestMentions_StopsAtFirstNonMention(t *testing.T) {
	ids, rest := Mentions([]string{"<@1>", "rude", "<@2>"})

	assert.Equal(t, []snowflake.ID{1}, ids)
	assert.Equal(t, []string{"rude", "<@2>"}, rest)
}

func TestMentions_NoTargets(t *testing.T) {
	ids, rest := Mentions([]string{"no", "targets"})

	assert.Empty(t, ids)
	assert.Equal(t, []string{"no", "targets"}, rest)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"30m", 30 * time.Minute, false},
		{"2h", 2 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"1w", 7 * 24 * time.Hour, false},
		{"45s", 45 * time.Second, false},
		{"0m", 0, true},
		{"-5m", 0, true},
		{"5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q) expected error, got %v", tt.in, got)
			} else if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseDuration(%q) error = %v, want ErrInvalidArgument", tt.in, err)
			}

			continue
		}

		if err != nil {
			t.Errorf("ParseDuration(%q) unexpected error: %v", tt.in, err)
			continue
		}

		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	count, err := ParseCount("10")
	require.NoError(t, err)
	assert.Equal(t, 10, count)

	for _, bad := range []string{"0", "-1", "ten", ""} {
		_, err := ParseCount(bad)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", bad)
	}
}
