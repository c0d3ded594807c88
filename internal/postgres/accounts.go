package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

// CreateUser registers a user and opens their default POUND account in one
// transaction, so a fresh registration can immediately receive transfers.
func (p *Postgres) CreateUser(ctx context.Context, email, hashedPassword string) (string, error) {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("error starting transaction: %w", err)
	}

	userID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		"INSERT INTO users (id, email, password) VALUES ($1, $2, $3)",
		userID, email, hashedPassword,
	)
	if err != nil {
		rollback(tx)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			logger.Log.Warn("user already exists", logger.String("email", email))
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("error creating user: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_assets (id, user_id, asset_id)
		 SELECT $1, $2, id FROM assets WHERE asset_type = $3`,
		uuid.NewString(), userID, domain.AssetPound,
	)
	if err != nil {
		rollback(tx)
		return "", fmt.Errorf("error opening default account: %w", err)
	}

	if err = tx.Commit(); err != nil {
		rollback(tx)
		return "", fmt.Errorf("error committing transaction: %w", err)
	}

	return userID, nil
}

func (p *Postgres) User(ctx context.Context, email string) (*domain.User, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, email, password, registered_at FROM users WHERE email = $1", email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.RegisteredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrIncorrectCredentials
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}

	return &user, nil
}

func (p *Postgres) AssetByType(ctx context.Context, assetType domain.AssetType) (*domain.Asset, error) {
	row := p.DB.QueryRowContext(ctx,
		"SELECT id, symbol, asset_type, withdrawal_activity FROM assets WHERE asset_type = $1", assetType)

	var asset domain.Asset
	err := row.Scan(&asset.ID, &asset.Symbol, &asset.AssetType, &asset.WithdrawalActivity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, fmt.Errorf("error fetching asset: %w", err)
	}

	return &asset, nil
}

const userAssetColumns = `ua.id, ua.user_id, u.email, ua.asset_id,
	ua.available_balance, ua.pending_balance, ua.withdrawal_activity, ua.deposit_activity`

// UserAccount looks up a holding by account email and asset. The unique
// (user_id, asset_id) constraint keeps this a single-row index lookup.
func (p *Postgres) UserAccount(ctx context.Context, email, assetID string) (*domain.UserAsset, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT `+userAssetColumns+`
		 FROM user_assets ua JOIN users u ON u.id = ua.user_id
		 WHERE u.email = $1 AND ua.asset_id = $2`,
		email, assetID,
	)

	return scanUserAsset(row)
}

func (p *Postgres) UserAssetByID(ctx context.Context, id string) (*domain.UserAsset, error) {
	row := p.DB.QueryRowContext(ctx,
		`SELECT `+userAssetColumns+`
		 FROM user_assets ua JOIN users u ON u.id = ua.user_id
		 WHERE ua.id = $1`,
		id,
	)

	return scanUserAsset(row)
}

func scanUserAsset(row *sql.Row) (*domain.UserAsset, error) {
	var ua domain.UserAsset
	err := row.Scan(&ua.ID, &ua.UserID, &ua.Email, &ua.AssetID,
		&ua.AvailableBalance, &ua.PendingBalance, &ua.WithdrawalActivity, &ua.DepositActivity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error fetching user asset: %w", err)
	}

	return &ua, nil
}

// UpdateBalances overwrites one account's cached projection. Called only by
// Replay; the transfer unit writes its own projections inside its transaction.
func (p *Postgres) UpdateBalances(ctx context.Context, userID, assetID string, available, pending int64) error {
	_, err := p.DB.ExecContext(ctx,
		`UPDATE user_assets SET available_balance = $1, pending_balance = $2
		 WHERE user_id = $3 AND asset_id = $4`,
		available, pending, userID, assetID,
	)
	if err != nil {
		return fmt.Errorf("error updating balances: %w", err)
	}

	return nil
}
