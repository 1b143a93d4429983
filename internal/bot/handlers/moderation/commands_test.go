package moderation

import (
	"testing"

	"github.com/sentinelbot/sentinel/internal/bot/command"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePurgeCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{name: "small count", input: "5", want: 5, ok: true},
		{name: "cap itself", input: "99", want: 99, ok: true},
		{name: "one above the cap", input: "100", ok: false},
		{name: "far above the cap", input: "5000", ok: false},
		{name: "zero", input: "0", ok: false},
		{name: "negative", input: "-3", ok: false},
		{name: "not a number", input: "lots", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parsePurgeCount(tt.input)
			if !tt.ok {
				require.ErrorIs(t, err, command.ErrInvalidArgument)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
