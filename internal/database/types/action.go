package types

import (
	"errors"
	"time"

	"github.com/sentinelbot/sentinel/internal/database/types/enum"
)

// ErrActionNotFound is returned when a lookup references a moderation action
// that does not exist or does not match the requested constraints.
var ErrActionNotFound = errors.New("moderation action not found")

// ModerationAction is one entry in the append-only moderation audit log.
// Rows are immutable once created.
type ModerationAction struct {
	ID          int64           `bun:",pk,autoincrement"`
	Timestamp   time.Time       `bun:",notnull,default:current_timestamp"`
	UserID      int64           `bun:",notnull"`
	ModeratorID int64           `bun:",notnull"`
	Action      enum.ActionType `bun:",notnull,type:varchar(32)"`
	Reason      string          `bun:",nullzero,type:text"`

	User      *User `bun:"rel:belongs-to,join:user_id=id"`
	Moderator *User `bun:"rel:belongs-to,join:moderator_id=id"`
}

// ModerationTemporaryAction extends a TEMPMUTE or TEMPBAN action with its
// scheduled lift time. Completed flips once, when the restriction is lifted.
type ModerationTemporaryAction struct {
	ID        int64     `bun:",pk"`
	Until     time.Time `bun:",notnull"`
	Completed bool      `bun:",notnull,default:false"`

	Action *ModerationAction `bun:"rel:belongs-to,join:id=id"`
}

// ModerationLinkedAction marks its action as superseding or reversing the
// linked one. A removal action without this link has no effect on strike
// counting.
type ModerationLinkedAction struct {
	ID       int64 `bun:",pk"`
	LinkedID int64 `bun:",notnull"`

	Action *ModerationAction `bun:"rel:belongs-to,join:id=id"`
	Linked *ModerationAction `bun:"rel:belongs-to,join:linked_id=id"`
}
