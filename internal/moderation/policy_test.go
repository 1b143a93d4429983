package moderation

import (
	"testing"

	"github.com/sentinelbot/sentinel/internal/database/types/enum"
)

func TestEscalate_Boundaries(t *testing.T) {
	tests := []struct {
		strikes int
		want    enum.ActionType
	}{
		{0, enum.ActionTypeAutowarn},
		{1, enum.ActionTypeAutowarn},
		{2, enum.ActionTypeAutomute},
		{3, enum.ActionTypeAutomute},
		{4, enum.ActionTypeBan},
		{5, enum.ActionTypeBan},
		{100, enum.ActionTypeBan},
	}

	for _, tt := range tests {
		if got := Escalate(tt.strikes); got != tt.want {
			t.Errorf("Escalate(%d) = %s, want %s", tt.strikes, got, tt.want)
		}
	}
}

func TestRemovalFor(t *testing.T) {
	tests := []struct {
		kind   enum.ActionType
		want   enum.ActionType
		wantOK bool
	}{
		{enum.ActionTypeWarn, enum.ActionTypeRemoveWarn, true},
		{enum.ActionTypeAutowarn, enum.ActionTypeRemoveAutowarn, true},
		{enum.ActionTypeAutomute, 0, false},
		{enum.ActionTypeMute, 0, false},
		{enum.ActionTypeBan, 0, false},
	}

	for _, tt := range tests {
		got, ok := RemovalFor(tt.kind)
		if ok != tt.wantOK {
			t.Errorf("RemovalFor(%s) ok = %v, want %v", tt.kind, ok, tt.wantOK)
			continue
		}

		if ok && got != tt.want {
			t.Errorf("RemovalFor(%s) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestStrikePolicy_Kinds(t *testing.T) {
	// The strike policy must count exactly the automod kinds and remove
	// exactly their removals; moderator warnings never escalate automod.
	for _, kind := range Strikes.CountedKinds {
		if kind != enum.ActionTypeAutowarn && kind != enum.ActionTypeAutomute {
			t.Errorf("unexpected counted kind %s in strike policy", kind)
		}
	}

	for _, kind := range Strikes.RemovalKinds {
		if !kind.Removal() {
			t.Errorf("strike policy removal kind %s is not a removal", kind)
		}
	}

	for _, kind := range WarnListing.RemovalKinds {
		if !kind.Removal() {
			t.Errorf("warn listing removal kind %s is not a removal", kind)
		}
	}
}
