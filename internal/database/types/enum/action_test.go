package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionTypeNames(t *testing.T) {
	t.Parallel()

	want := map[ActionType]string{
		ActionTypeTempmute:       "TEMPMUTE",
		ActionTypeMute:           "MUTE",
		ActionTypeUnmute:         "UNMUTE",
		ActionTypeWarn:           "WARN",
		ActionTypeRemoveWarn:     "REMOVE_WARN",
		ActionTypeAutowarn:       "AUTOWARN",
		ActionTypeRemoveAutowarn: "REMOVE_AUTOWARN",
		ActionTypeAutomute:       "AUTOMUTE",
		ActionTypeRemoveAutomute: "REMOVE_AUTOMUTE",
		ActionTypeKick:           "KICK",
		ActionTypeTempban:        "TEMPBAN",
		ActionTypeBan:            "BAN",
		ActionTypeUnban:          "UNBAN",
	}

	for kind, name := range want {
		assert.Equal(t, name, kind.String())

		parsed, err := ActionTypeString(name)
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
}

func TestActionTypeSQLRoundTrip(t *testing.T) {
	t.Parallel()

	for _, kind := range ActionTypeValues() {
		value, err := kind.Value()
		require.NoError(t, err)

		var scanned ActionType

		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, kind, scanned)
	}

	var kind ActionType

	assert.Error(t, kind.Scan("NOT_AN_ACTION"))
}

func TestActionTypeHelpers(t *testing.T) {
	t.Parallel()

	for _, kind := range ActionTypeValues() {
		wantTemporary := kind == ActionTypeTempmute || kind == ActionTypeTempban
		assert.Equal(t, wantTemporary, kind.Temporary(), kind.String())

		wantRemoval := kind == ActionTypeRemoveWarn ||
			kind == ActionTypeRemoveAutowarn ||
			kind == ActionTypeRemoveAutomute
		assert.Equal(t, wantRemoval, kind.Removal(), kind.String())
	}
}
