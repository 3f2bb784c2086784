package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

const ledgerSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
  name       TEXT        PRIMARY KEY,
  applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_site_settings",
		SQL: `CREATE TABLE IF NOT EXISTS site_settings (
  id               SMALLINT    PRIMARY KEY DEFAULT 1 CHECK (id = 1),
  site_name        TEXT        NOT NULL DEFAULT '',
  tagline          TEXT        NOT NULL DEFAULT '',
  logo_url         TEXT        NOT NULL DEFAULT '',
  favicon_url      TEXT        NOT NULL DEFAULT '',
  contact_email    TEXT        NOT NULL DEFAULT '',
  contact_phone    TEXT        NOT NULL DEFAULT '',
  whatsapp         TEXT        NOT NULL DEFAULT '',
  address          TEXT        NOT NULL DEFAULT '',
  facebook_url     TEXT        NOT NULL DEFAULT '',
  instagram_url    TEXT        NOT NULL DEFAULT '',
  linkedin_url     TEXT        NOT NULL DEFAULT '',
  youtube_url      TEXT        NOT NULL DEFAULT '',
  meta_title       TEXT        NOT NULL DEFAULT '',
  meta_description TEXT        NOT NULL DEFAULT '',
  cta_title        TEXT        NOT NULL DEFAULT '',
  cta_text         TEXT        NOT NULL DEFAULT '',
  cta_button_text  TEXT        NOT NULL DEFAULT '',
  cta_button_link  TEXT        NOT NULL DEFAULT '',
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_footer_settings",
		SQL: `CREATE TABLE IF NOT EXISTS footer_settings (
  id             SMALLINT    PRIMARY KEY DEFAULT 1 CHECK (id = 1),
  description    TEXT        NOT NULL DEFAULT '',
  copyright_text TEXT        NOT NULL DEFAULT '',
  email          TEXT        NOT NULL DEFAULT '',
  phone          TEXT        NOT NULL DEFAULT '',
  address        TEXT        NOT NULL DEFAULT '',
  facebook_url   TEXT        NOT NULL DEFAULT '',
  instagram_url  TEXT        NOT NULL DEFAULT '',
  linkedin_url   TEXT        NOT NULL DEFAULT '',
  youtube_url    TEXT        NOT NULL DEFAULT '',
  updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_page_banners",
		SQL: `CREATE TABLE IF NOT EXISTS page_banners (
  page       TEXT        PRIMARY KEY CHECK (page IN ('about', 'associates', 'news', 'contact', 'publications')),
  title      TEXT        NOT NULL DEFAULT '',
  subtitle   TEXT        NOT NULL DEFAULT '',
  image_url  TEXT        NOT NULL DEFAULT '',
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_banners",
		SQL: `CREATE TABLE IF NOT EXISTS banners (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title         TEXT        NOT NULL DEFAULT '',
  subtitle      TEXT        NOT NULL DEFAULT '',
  image_url     TEXT        NOT NULL,
  link_url      TEXT        NOT NULL DEFAULT '',
  button_text   TEXT        NOT NULL DEFAULT '',
  display_order INTEGER     NOT NULL DEFAULT 0 CHECK (display_order >= 0),
  active        BOOLEAN     NOT NULL DEFAULT true,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_posts",
		SQL: `CREATE TABLE IF NOT EXISTS posts (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title           TEXT        NOT NULL,
  slug            TEXT        NOT NULL UNIQUE,
  excerpt         TEXT        NOT NULL DEFAULT '',
  content         TEXT        NOT NULL DEFAULT '',
  cover_image_url TEXT        NOT NULL DEFAULT '',
  author          TEXT        NOT NULL DEFAULT '',
  category        TEXT        NOT NULL DEFAULT '',
  published       BOOLEAN     NOT NULL DEFAULT false,
  published_at    TIMESTAMPTZ,
  views           INTEGER     NOT NULL DEFAULT 0 CHECK (views >= 0),
  likes           INTEGER     NOT NULL DEFAULT 0 CHECK (likes >= 0),
  shares          INTEGER     NOT NULL DEFAULT 0 CHECK (shares >= 0),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_posts_published_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_posts_published_at ON posts (published, published_at DESC);`,
	},
	{
		Name: "create_table_comments",
		SQL: `CREATE TABLE IF NOT EXISTS comments (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  post_id      UUID        NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
  author_name  TEXT        NOT NULL,
  author_email TEXT        NOT NULL DEFAULT '',
  content      TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_comments_post_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments (post_id, created_at);`,
	},
	{
		Name: "create_table_associates",
		SQL: `CREATE TABLE IF NOT EXISTS associates (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  logo_url      TEXT        NOT NULL DEFAULT '',
  website       TEXT        NOT NULL DEFAULT '',
  description   TEXT        NOT NULL DEFAULT '',
  display_order INTEGER     NOT NULL DEFAULT 0 CHECK (display_order >= 0),
  active        BOOLEAN     NOT NULL DEFAULT true,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_team_members",
		SQL: `CREATE TABLE IF NOT EXISTS team_members (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  position      TEXT        NOT NULL DEFAULT '',
  photo_url     TEXT        NOT NULL DEFAULT '',
  bio           TEXT        NOT NULL DEFAULT '',
  linkedin_url  TEXT        NOT NULL DEFAULT '',
  member_group  TEXT        NOT NULL DEFAULT 'team' CHECK (member_group IN ('board', 'team')),
  display_order INTEGER     NOT NULL DEFAULT 0 CHECK (display_order >= 0),
  active        BOOLEAN     NOT NULL DEFAULT true,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_committees",
		SQL: `CREATE TABLE IF NOT EXISTS committees (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name          TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  coordinator   TEXT        NOT NULL DEFAULT '',
  display_order INTEGER     NOT NULL DEFAULT 0 CHECK (display_order >= 0),
  active        BOOLEAN     NOT NULL DEFAULT true,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_publications",
		SQL: `CREATE TABLE IF NOT EXISTS publications (
  id              UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title           TEXT        NOT NULL,
  description     TEXT        NOT NULL DEFAULT '',
  category        TEXT        NOT NULL DEFAULT '',
  file_url        TEXT        NOT NULL DEFAULT '',
  file_key        TEXT        NOT NULL DEFAULT '',
  cover_image_url TEXT        NOT NULL DEFAULT '',
  published_at    TIMESTAMPTZ,
  active          BOOLEAN     NOT NULL DEFAULT true,
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_videos",
		SQL: `CREATE TABLE IF NOT EXISTS videos (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  title         TEXT        NOT NULL,
  description   TEXT        NOT NULL DEFAULT '',
  youtube_url   TEXT        NOT NULL,
  youtube_id    TEXT        NOT NULL DEFAULT '',
  thumbnail_url TEXT        NOT NULL DEFAULT '',
  display_order INTEGER     NOT NULL DEFAULT 0 CHECK (display_order >= 0),
  active        BOOLEAN     NOT NULL DEFAULT true,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_contact_messages",
		SQL: `CREATE TABLE IF NOT EXISTS contact_messages (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  email      TEXT        NOT NULL,
  phone      TEXT        NOT NULL DEFAULT '',
  company    TEXT        NOT NULL DEFAULT '',
  subject    TEXT        NOT NULL DEFAULT '',
  message    TEXT        NOT NULL,
  read       BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_admin_users",
		SQL: `CREATE TABLE IF NOT EXISTS admin_users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL UNIQUE,
  name          TEXT        NOT NULL DEFAULT '',
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  last_login_at TIMESTAMPTZ
);`,
	},
}

// EnsureMigrated applies every step not yet recorded in schema_migrations.
// Each step runs in its own transaction together with its ledger insert.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	base := log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	base.WithFields(logrus.Fields{"event": "db_migration_check", "status": "starting"}).Info("checking schema")

	if _, err := db.ExecContext(ctx, ledgerSQL); err != nil {
		base.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"status":      "error",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to create migration ledger")
		return fmt.Errorf("failed to create migration ledger: %w", err)
	}

	applied, err := appliedSteps(ctx, db)
	if err != nil {
		base.WithFields(logrus.Fields{"event": "db_migration_failed", "status": "error"}).WithError(err).Error("failed to read migration ledger")
		return fmt.Errorf("failed to read migration ledger: %w", err)
	}

	pending := 0
	for _, step := range steps {
		if applied[step.Name] {
			continue
		}
		pending++
		stepStart := time.Now()
		if err := applyStep(ctx, db, step); err != nil {
			base.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		base.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	event, msg := "db_migration_success", "schema migrated"
	if pending == 0 {
		event, msg = "db_migration_skip", "schema already up to date, skipping migration"
	}
	base.WithFields(logrus.Fields{
		"event":       event,
		"status":      "success",
		"applied":     pending,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info(msg)

	return nil
}

func appliedSteps(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = true
	}
	return out, rows.Err()
}

func applyStep(ctx context.Context, db *sql.DB, step migrationStep) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, step.Name); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
