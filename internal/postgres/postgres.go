package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/myke-awoniran/tally/internal/domain"
	"github.com/myke-awoniran/tally/pkg/logger"
)

const transactionRollbackError = "error rolling back transaction"

type Postgres struct {
	DB *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}

func rollback(tx *sql.Tx) {
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		logger.Log.Error(transactionRollbackError, logger.Error(err))
	}
}

// mapUnitError translates SQLSTATEs raised inside the transfer unit into the
// retryable conflict sentinel. 40001 is a serialization failure, 40P01 a
// deadlock, 23505 a reference collision; the orchestrator re-runs the
// transfer from validation with a fresh reference in all three cases.
func mapUnitError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "23505":
			return domain.ErrTransferConflict
		}
	}

	return err
}
