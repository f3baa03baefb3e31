package database

import (
	"database/sql"
	"fmt"
	"log"
)

// schemaStatements creates every collection the platform uses. Ids are
// application-assigned uuid strings, never storage-generated keys.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		ecocoin_balance BIGINT NOT NULL DEFAULT 0 CHECK (ecocoin_balance >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title_ru TEXT NOT NULL,
		title_en TEXT NOT NULL,
		title_kz TEXT NOT NULL,
		description_ru TEXT NOT NULL,
		description_en TEXT NOT NULL,
		description_kz TEXT NOT NULL,
		reward_coins BIGINT NOT NULL CHECK (reward_coins > 0),
		type TEXT NOT NULL,
		image_required BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS task_submissions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		image_base64 TEXT NOT NULL,
		status TEXT NOT NULL,
		verified_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS ecocoin_transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount BIGINT NOT NULL,
		type TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS regions (
		id TEXT PRIMARY KEY,
		name_ru TEXT NOT NULL,
		name_en TEXT NOT NULL,
		name_kz TEXT NOT NULL,
		description_ru TEXT NOT NULL,
		description_en TEXT NOT NULL,
		description_kz TEXT NOT NULL,
		image_url TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS attractions (
		id TEXT PRIMARY KEY,
		region_id TEXT NOT NULL,
		name_ru TEXT NOT NULL,
		name_en TEXT NOT NULL,
		name_kz TEXT NOT NULL,
		description_ru TEXT NOT NULL,
		description_en TEXT NOT NULL,
		description_kz TEXT NOT NULL,
		image_url TEXT NOT NULL,
		vr_url TEXT NOT NULL DEFAULT '',
		vr_type TEXT NOT NULL DEFAULT 'equirectangular',
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		attraction_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS hotels (
		id TEXT PRIMARY KEY,
		region_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		price_per_night BIGINT NOT NULL,
		is_partner BOOLEAN NOT NULL DEFAULT FALSE,
		image_url TEXT NOT NULL,
		rating DOUBLE PRECISION NOT NULL DEFAULT 4.5
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		hotel_id TEXT NOT NULL,
		hotel_name TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT NOT NULL,
		guests INTEGER NOT NULL,
		total_price BIGINT NOT NULL,
		payment_status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS taxi_orders (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		driver_id TEXT,
		from_location TEXT NOT NULL,
		to_location TEXT NOT NULL,
		from_lat DOUBLE PRECISION NOT NULL,
		from_lng DOUBLE PRECISION NOT NULL,
		to_lat DOUBLE PRECISION NOT NULL,
		to_lng DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS charging_stations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		availability BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS contact_messages (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'sent',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_user ON task_submissions (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON ecocoin_transactions (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_users_leaderboard ON users (role, ecocoin_balance DESC)`,
}

// EnsureSchema creates missing tables and indexes on startup.
func EnsureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema bootstrap failed: %w", err)
		}
	}
	log.Println("Database schema ensured")
	return nil
}
