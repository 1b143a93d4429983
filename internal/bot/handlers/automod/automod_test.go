package automod

import (
	"testing"

	"github.com/sentinelbot/sentinel/internal/setup/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase passthrough", input: "hello", want: "hello"},
		{name: "uppercase folded", input: "HELLO", want: "hello"},
		{name: "accents stripped", input: "café", want: "cafe"},
		{name: "accents and case together", input: "CAFÉ", want: "cafe"},
		{name: "combining marks stripped", input: "café", want: "cafe"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func newTestHandler(t *testing.T, words ...string) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Automod.ForbiddenWords = words

	return New(nil, cfg, zap.NewNop())
}

func TestMatch(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "badword", "café")

	tests := []struct {
		name    string
		content string
		want    string
		matched bool
	}{
		{name: "exact word", content: "badword", want: "badword", matched: true},
		{name: "substring of message", content: "this has a badword in it", want: "badword", matched: true},
		{name: "case insensitive", content: "BADWORD", want: "badword", matched: true},
		{name: "accented spelling trips plain word", content: "bädwörd", want: "badword", matched: true},
		{name: "plain spelling trips accented word", content: "cafe", want: "café", matched: true},
		{name: "accented message trips accented word", content: "CAFÉ", want: "café", matched: true},
		{name: "clean message", content: "nothing to see here", want: "", matched: false},
		{name: "empty message", content: "", want: "", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := h.Match(tt.content)
			require.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchFirstConfiguredWins(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, "alpha", "beta")

	got, ok := h.Match("beta then alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", got, "configuration order decides ties, not message order")
}
