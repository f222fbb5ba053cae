package repository

import (
	"context"
	"errors"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Global error declarations.
var (
	ErrIntervalNotSupported = errors.New("timeframe not supported")
	ErrAssetNotFound        = errors.New("not found in datasource")
	ErrNoCandles            = errors.New("no candles found in datasource")
)

type assetsRepository interface {
	GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error)
}
type candlesRepository interface {
	GetAggregates(ctx context.Context, arg aggregatesParams) ([]aggregateRow, error)
}

// Database struct that holds the database connection and queries.
type Database struct {
	assets  assetsRepository
	candles candlesRepository
	conn    *pgxpool.Pool
}

// NewDatabase creates a new Database instance and verifies connectivity.
func NewDatabase(ctx context.Context, dbURL string) (*Database, error) {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// Register shopspring decimal
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	conn, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	// Ensure the connection is established.
	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	q := newQueries(conn)
	return &Database{
		assets:  q,
		candles: q,
		conn:    conn}, nil
}

func (db *Database) Close() {
	if db.conn != nil {
		db.conn.Close()
	}
}
