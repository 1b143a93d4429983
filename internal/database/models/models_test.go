package models

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/sentinelbot/sentinel/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// newTestDB opens an in-memory SQLite database with the moderation schema.
// The single-connection cap keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for _, model := range []any{
		(*types.User)(nil),
		(*types.ModerationAction)(nil),
		(*types.ModerationTemporaryAction)(nil),
		(*types.ModerationLinkedAction)(nil),
	} {
		_, err := db.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}

	return db
}

func newTestModels(t *testing.T) (*UserModel, *ActionModel) {
	t.Helper()

	db := newTestDB(t)
	logger := zap.NewNop()

	return NewUser(db, logger), NewAction(db, logger)
}

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, _ := newTestModels(t)

	created, err := users.GetOrCreate(ctx, 100, "alyssa")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, uint64(100), created.DiscordID)
	assert.Equal(t, "alyssa", created.Username)

	// Repeat calls return the same row; the username stays the snapshot
	// taken at creation even when the caller passes a newer one.
	again, err := users.GetOrCreate(ctx, 100, "renamed")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "alyssa", again.Username)

	found, err := users.GetByDiscordID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = users.GetByDiscordID(ctx, 999)
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}

func TestRecordExtensions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, actions := newTestModels(t)

	subject, err := users.GetOrCreate(ctx, 100, "subject")
	require.NoError(t, err)
	moderator, err := users.GetOrCreate(ctx, 200, "moderator")
	require.NoError(t, err)

	t.Run("plain action has no extensions", func(t *testing.T) {
		recorded, err := actions.Record(ctx, RecordParams{
			UserID:      subject.ID,
			ModeratorID: moderator.ID,
			Action:      enum.ActionTypeWarn,
			Reason:      "spam",
		})
		require.NoError(t, err)
		require.NotZero(t, recorded.ID)

		action, temp, linked, err := actions.GetWithExtensions(ctx, recorded.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.ActionTypeWarn, action.Action)
		assert.Equal(t, "spam", action.Reason)
		assert.Nil(t, temp)
		assert.Nil(t, linked)
	})

	t.Run("until produces exactly one temporary row", func(t *testing.T) {
		until := time.Now().Add(time.Hour).UTC()

		recorded, err := actions.Record(ctx, RecordParams{
			UserID:      subject.ID,
			ModeratorID: moderator.ID,
			Action:      enum.ActionTypeTempmute,
			Until:       &until,
		})
		require.NoError(t, err)

		_, temp, linked, err := actions.GetWithExtensions(ctx, recorded.ID)
		require.NoError(t, err)
		require.NotNil(t, temp)
		assert.Equal(t, recorded.ID, temp.ID)
		assert.WithinDuration(t, until, temp.Until, time.Second)
		assert.False(t, temp.Completed)
		assert.Nil(t, linked)
	})

	t.Run("linked id produces exactly one linked row", func(t *testing.T) {
		warning, err := actions.Record(ctx, RecordParams{
			UserID:      subject.ID,
			ModeratorID: moderator.ID,
			Action:      enum.ActionTypeWarn,
		})
		require.NoError(t, err)

		removal, err := actions.Record(ctx, RecordParams{
			UserID:      subject.ID,
			ModeratorID: moderator.ID,
			Action:      enum.ActionTypeRemoveWarn,
			LinkedID:    &warning.ID,
		})
		require.NoError(t, err)

		_, temp, linked, err := actions.GetWithExtensions(ctx, removal.ID)
		require.NoError(t, err)
		assert.Nil(t, temp)
		require.NotNil(t, linked)
		assert.Equal(t, removal.ID, linked.ID)
		assert.Equal(t, warning.ID, linked.LinkedID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, _, _, err := actions.GetWithExtensions(ctx, 9999)
		assert.ErrorIs(t, err, types.ErrActionNotFound)
	})
}

func TestCountActiveRemovalLinkage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, actions := newTestModels(t)

	counted := []enum.ActionType{enum.ActionTypeAutowarn, enum.ActionTypeAutomute}
	removals := []enum.ActionType{enum.ActionTypeRemoveAutowarn, enum.ActionTypeRemoveAutomute}

	subject, err := users.GetOrCreate(ctx, 100, "subject")
	require.NoError(t, err)
	moderator, err := users.GetOrCreate(ctx, 200, "moderator")
	require.NoError(t, err)

	warning, err := actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeAutowarn,
	})
	require.NoError(t, err)

	count, err := actions.CountActive(ctx, subject.ID, counted, removals)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A removal without a link cancels nothing.
	_, err = actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeRemoveAutowarn,
	})
	require.NoError(t, err)

	count, err = actions.CountActive(ctx, subject.ID, counted, removals)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A linked removal cancels exactly the action it points at.
	_, err = actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeRemoveAutowarn,
		LinkedID:    &warning.ID,
	})
	require.NoError(t, err)

	count, err = actions.CountActive(ctx, subject.ID, counted, removals)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	listed, err := actions.ListActive(ctx, subject.ID, counted, removals)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestListActiveLoadsModerator(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, actions := newTestModels(t)

	counted := []enum.ActionType{enum.ActionTypeWarn, enum.ActionTypeAutowarn}
	removals := []enum.ActionType{enum.ActionTypeRemoveWarn, enum.ActionTypeRemoveAutowarn}

	subject, err := users.GetOrCreate(ctx, 100, "subject")
	require.NoError(t, err)
	moderator, err := users.GetOrCreate(ctx, 200, "moderator")
	require.NoError(t, err)

	first, err := actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeWarn,
		Reason:      "first",
	})
	require.NoError(t, err)

	second, err := actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeAutowarn,
		Reason:      "second",
	})
	require.NoError(t, err)

	listed, err := actions.ListActive(ctx, subject.ID, counted, removals)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	assert.Equal(t, first.ID, listed[0].ID)
	assert.Equal(t, second.ID, listed[1].ID)
	require.NotNil(t, listed[0].Moderator)
	assert.Equal(t, "moderator", listed[0].Moderator.Username)
}

func TestGetUserActionConstraints(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, actions := newTestModels(t)

	kinds := []enum.ActionType{enum.ActionTypeWarn, enum.ActionTypeAutowarn}

	subject, err := users.GetOrCreate(ctx, 100, "subject")
	require.NoError(t, err)
	other, err := users.GetOrCreate(ctx, 300, "other")
	require.NoError(t, err)
	moderator, err := users.GetOrCreate(ctx, 200, "moderator")
	require.NoError(t, err)

	warning, err := actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeWarn,
	})
	require.NoError(t, err)

	found, err := actions.GetUserAction(ctx, warning.ID, subject.ID, kinds)
	require.NoError(t, err)
	assert.Equal(t, warning.ID, found.ID)

	// The id exists but belongs to a different member.
	_, err = actions.GetUserAction(ctx, warning.ID, other.ID, kinds)
	assert.ErrorIs(t, err, types.ErrActionNotFound)

	// The id exists but is not one of the requested kinds.
	_, err = actions.GetUserAction(ctx, warning.ID, subject.ID,
		[]enum.ActionType{enum.ActionTypeBan})
	assert.ErrorIs(t, err, types.ErrActionNotFound)
}

func TestTemporaryLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, actions := newTestModels(t)

	subject, err := users.GetOrCreate(ctx, 100, "subject")
	require.NoError(t, err)
	moderator, err := users.GetOrCreate(ctx, 200, "moderator")
	require.NoError(t, err)

	past := time.Now().Add(-time.Minute).UTC()
	future := time.Now().Add(time.Hour).UTC()

	due, err := actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeTempmute,
		Until:       &past,
	})
	require.NoError(t, err)

	_, err = actions.Record(ctx, RecordParams{
		UserID:      subject.ID,
		ModeratorID: moderator.ID,
		Action:      enum.ActionTypeTempban,
		Until:       &future,
	})
	require.NoError(t, err)

	pending, err := actions.ListDueTemporary(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, due.ID, pending[0].ID)
	require.NotNil(t, pending[0].Action)
	require.NotNil(t, pending[0].Action.User)
	assert.Equal(t, uint64(100), pending[0].Action.User.DiscordID)

	require.NoError(t, actions.MarkTemporaryCompleted(ctx, due.ID))

	pending, err = actions.ListDueTemporary(ctx, time.Now())
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = actions.MarkTemporaryCompleted(ctx, 9999)
	assert.ErrorIs(t, err, types.ErrActionNotFound)
}
