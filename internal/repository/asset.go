package repository

import (
	"backtestreport/types"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// GetAssetByTicker retrieves a types.Asset by its ticker.
func (db *Database) GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error) {
	asset, err := db.assets.GetAssetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	return &types.Asset{
		Id:         int(asset.ID),
		Ticker:     asset.Ticker,
		Name:       asset.Name,
		Type:       types.AssetType(asset.Type),
		CreatedAt:  derefTime(asset.CreatedAt),
		ModifiedAt: derefTime(asset.ModifiedAt),
	}, nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
