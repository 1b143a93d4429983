package types

import "errors"

// ErrUserNotFound is returned when a lookup references a user that has never
// interacted with the moderation record.
var ErrUserNotFound = errors.New("user not found")

// User is a platform member known to the moderation record. Records are
// created lazily on first moderation interaction and never deleted. The
// username is a snapshot taken at creation time.
type User struct {
	ID        int64  `bun:",pk,autoincrement"`
	DiscordID uint64 `bun:",notnull"`
	Username  string `bun:",notnull"`
}
