// Package enum defines enumerated types persisted by the database layer.
package enum

// ActionType represents the kind of a moderation action. Values are stored
// by name, so the constant order may change but names must not.
//
//go:generate go tool enumer -type=ActionType -trimprefix=ActionType -transform=snake-upper -sql
type ActionType int

const (
	// ActionTypeTempmute is a mute with a scheduled lift time.
	ActionTypeTempmute ActionType = iota
	// ActionTypeMute is an indefinite mute.
	ActionTypeMute
	// ActionTypeUnmute lifts a mute.
	ActionTypeUnmute
	// ActionTypeWarn is a moderator-issued warning.
	ActionTypeWarn
	// ActionTypeRemoveWarn cancels a moderator-issued warning.
	ActionTypeRemoveWarn
	// ActionTypeAutowarn is a warning issued by the escalation engine.
	ActionTypeAutowarn
	// ActionTypeRemoveAutowarn cancels an automatic warning.
	ActionTypeRemoveAutowarn
	// ActionTypeAutomute is a mute issued by the escalation engine.
	ActionTypeAutomute
	// ActionTypeRemoveAutomute cancels an automatic mute.
	ActionTypeRemoveAutomute
	// ActionTypeKick is a removal from the guild.
	ActionTypeKick
	// ActionTypeTempban is a ban with a scheduled lift time.
	ActionTypeTempban
	// ActionTypeBan is an indefinite ban.
	ActionTypeBan
	// ActionTypeUnban lifts a ban.
	ActionTypeUnban
)

// Temporary reports whether actions of this kind carry a lift time.
func (i ActionType) Temporary() bool {
	return i == ActionTypeTempmute || i == ActionTypeTempban
}

// Removal reports whether actions of this kind cancel a linked action.
func (i ActionType) Removal() bool {
	return i == ActionTypeRemoveWarn || i == ActionTypeRemoveAutowarn || i == ActionTypeRemoveAutomute
}
