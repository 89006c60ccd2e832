package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contractor_type') THEN
			CREATE TYPE contractor_type AS ENUM ('Osoba', 'Firma');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS contractors (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		type contractor_type NOT NULL DEFAULT 'Osoba',
		id_number VARCHAR(11) NOT NULL,
		image TEXT NOT NULL,
		created_by UUID,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'contractors' AND column_name = 'created_by') THEN
			ALTER TABLE contractors ADD COLUMN created_by UUID;
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_contractors_type ON contractors (type);`,
	`CREATE INDEX IF NOT EXISTS idx_contractors_id_number ON contractors (id_number);`,
	`CREATE INDEX IF NOT EXISTS idx_contractors_created_at ON contractors (created_at DESC);`,
}

// Migrate applies the schema. It is safe to run repeatedly.
func Migrate(db *gorm.DB) error {
	return runMigrations(db)
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
