package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Constraint names are matched by the repositories to tell conflicts apart.
const (
	ConstraintUsersUsername    = "users_username_key"
	ConstraintUsersEmail       = "users_email_key"
	ConstraintCatalogsSellerID = "catalogs_seller_id_key"
)

// Schema is the idempotent DDL for every store.
const Schema = `
	CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL CHECK (role IN ('buyer', 'seller')),
		email         VARCHAR(255),
		phone_number  VARCHAR(32),
		address       VARCHAR(512),
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_email_key UNIQUE (email)
	);

	CREATE INDEX IF NOT EXISTS idx_users_role ON users(role);

	CREATE TABLE IF NOT EXISTS catalogs (
		id         UUID PRIMARY KEY,
		seller_id  VARCHAR(64) NOT NULL,
		products   JSONB       NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT catalogs_seller_id_key UNIQUE (seller_id)
	);

	CREATE TABLE IF NOT EXISTS orders (
		id         UUID PRIMARY KEY,
		buyer_id   VARCHAR(64) NOT NULL,
		seller_id  VARCHAR(64) NOT NULL,
		products   JSONB       NOT NULL DEFAULT '[]'::jsonb,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_orders_seller_id ON orders(seller_id, created_at);

	CREATE TABLE IF NOT EXISTS coordinates (
		id          UUID PRIMARY KEY,
		lat         DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
		lon         DOUBLE PRECISION NOT NULL CHECK (lon BETWEEN -180 AND 180),
		food_orders JSONB,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
`

// EnsureSchema creates any missing tables and indexes.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		logger.Error().Err(err).Msg("failed to apply database schema")
		return fmt.Errorf("failed to apply database schema: %w", err)
	}

	logger.Info().Msg("database schema is up to date")
	return nil
}
