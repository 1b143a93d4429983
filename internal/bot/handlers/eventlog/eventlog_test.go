package eventlog

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		vars     map[string]string
		want     string
	}{
		{
			name:     "single placeholder",
			template: "{ping} joined",
			vars:     map[string]string{"ping": "<@1>"},
			want:     "<@1> joined",
		},
		{
			name:     "repeated placeholder",
			template: "{user} is {user}",
			vars:     map[string]string{"user": "alice"},
			want:     "alice is alice",
		},
		{
			name:     "multiple placeholders",
			template: "{before} became {after}",
			vars:     map[string]string{"before": "a", "after": "b"},
			want:     "a became b",
		},
		{
			name:     "unknown placeholder kept",
			template: "{ping} did {unknown}",
			vars:     map[string]string{"ping": "<@1>"},
			want:     "<@1> did {unknown}",
		},
		{
			name:     "no placeholders",
			template: "plain text",
			vars:     map[string]string{"ping": "<@1>"},
			want:     "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, expand(tt.template, tt.vars))
		})
	}
}

func TestRoleDiff(t *testing.T) {
	t.Parallel()

	a := []snowflake.ID{1, 2, 3}
	b := []snowflake.ID{2, 3, 4}

	assert.Equal(t, []snowflake.ID{1}, roleDiff(a, b))
	assert.Equal(t, []snowflake.ID{4}, roleDiff(b, a))
	assert.Empty(t, roleDiff(a, a))
	assert.Equal(t, a, roleDiff(a, nil))
}

func TestRoleMentions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<@&1>, <@&2>", roleMentions([]snowflake.ID{1, 2}))
}

func TestMessageLink(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"https://discord.com/channels/10/20/30",
		messageLink(snowflake.ID(10), snowflake.ID(20), snowflake.ID(30)))
}
