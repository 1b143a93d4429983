package migrations

import (
	"context"
	"fmt"

	"github.com/sentinelbot/sentinel/internal/database/types"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		// Users must exist before moderation_actions can reference them
		_, err := db.NewCreateTable().
			Model((*types.User)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create users table: %w", err)
		}

		_, err = db.NewCreateTable().
			Model((*types.ModerationAction)(nil)).
			IfNotExists().
			ForeignKey(`("user_id") REFERENCES "users" ("id")`).
			ForeignKey(`("moderator_id") REFERENCES "users" ("id")`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create moderation_actions table: %w", err)
		}

		_, err = db.NewCreateTable().
			Model((*types.ModerationTemporaryAction)(nil)).
			IfNotExists().
			ForeignKey(`("id") REFERENCES "moderation_actions" ("id")`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create moderation_temporary_actions table: %w", err)
		}

		_, err = db.NewCreateTable().
			Model((*types.ModerationLinkedAction)(nil)).
			IfNotExists().
			ForeignKey(`("id") REFERENCES "moderation_actions" ("id")`).
			ForeignKey(`("linked_id") REFERENCES "moderation_actions" ("id")`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create moderation_linked_actions table: %w", err)
		}

		_, err = db.NewRaw(`
			CREATE UNIQUE INDEX IF NOT EXISTS idx_users_discord_id
			ON users (discord_id);

			CREATE INDEX IF NOT EXISTS idx_moderation_actions_user_action
			ON moderation_actions (user_id, action);

			CREATE INDEX IF NOT EXISTS idx_moderation_temporary_actions_due
			ON moderation_temporary_actions (until ASC)
			WHERE completed = false;

			CREATE INDEX IF NOT EXISTS idx_moderation_linked_actions_linked
			ON moderation_linked_actions (linked_id);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create initial indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		// Drop in reverse dependency order
		tables := []string{
			"moderation_linked_actions",
			"moderation_temporary_actions",
			"moderation_actions",
			"users",
		}

		for _, table := range tables {
			_, err := db.NewDropTable().
				TableExpr(table).
				IfExists().
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("failed to drop %s table: %w", table, err)
			}
		}

		return nil
	})
}
