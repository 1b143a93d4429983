// Package moderation holds the escalation policy: pure decision logic mapping
// a user's active strike count to an automated action tier.
package moderation

import "github.com/sentinelbot/sentinel/internal/database/types/enum"

// Escalation thresholds. A strike is an active AUTOWARN or AUTOMUTE; counts
// below automuteThreshold warn, counts below banThreshold mute, anything at
// or above banThreshold bans.
const (
	automuteThreshold = 2
	banThreshold      = 4
)

// StrikePolicy declares which action kinds add to a user's count and which
// removal kinds cancel them. The two sets are an explicit policy table; the
// counting queries never hard-code kinds.
type StrikePolicy struct {
	CountedKinds []enum.ActionType
	RemovalKinds []enum.ActionType
}

// Strikes is the policy driving automod escalation.
var Strikes = StrikePolicy{
	CountedKinds: []enum.ActionType{
		enum.ActionTypeAutowarn,
		enum.ActionTypeAutomute,
	},
	RemovalKinds: []enum.ActionType{
		enum.ActionTypeRemoveAutowarn,
		enum.ActionTypeRemoveAutomute,
	},
}

// WarnListing is the policy driving the warning listing and removal commands.
// It covers moderator warnings alongside automod ones.
var WarnListing = StrikePolicy{
	CountedKinds: []enum.ActionType{
		enum.ActionTypeWarn,
		enum.ActionTypeAutowarn,
	},
	RemovalKinds: []enum.ActionType{
		enum.ActionTypeRemoveWarn,
		enum.ActionTypeRemoveAutowarn,
	},
}

// Escalate maps an active strike count to the next automated tier.
func Escalate(strikes int) enum.ActionType {
	switch {
	case strikes < automuteThreshold:
		return enum.ActionTypeAutowarn
	case strikes < banThreshold:
		return enum.ActionTypeAutomute
	default:
		return enum.ActionTypeBan
	}
}

// RemovalFor returns the removal kind that cancels the given warning kind.
// Only moderator and automod warnings are removable through the warn remove
// command.
func RemovalFor(kind enum.ActionType) (enum.ActionType, bool) {
	switch kind {
	case enum.ActionTypeWarn:
		return enum.ActionTypeRemoveWarn, true
	case enum.ActionTypeAutowarn:
		return enum.ActionTypeRemoveAutowarn, true
	default:
		return 0, false
	}
}
