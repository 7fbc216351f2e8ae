package postgresadapter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	domainerrors "paywall/contexts/finance-core/paywall-ledger/domain/errors"
	"paywall/contexts/finance-core/paywall-ledger/domain/services"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps every statement gorm renders in a dry-run session.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

func (r *sqlRecorder) last() string {
	if len(r.statements) == 0 {
		return ""
	}
	return r.statements[len(r.statements)-1]
}

func (r *sqlRecorder) reset() { r.statements = nil }

func newDryRunTx(t *testing.T) (*ledgerTx, *sqlRecorder) {
	t.Helper()
	recorder := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=5432 user=paywall dbname=paywall sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 recorder,
	})
	require.NoError(t, err)
	return &ledgerTx{db: db}, recorder
}

func TestLedgerTxConfigLockStrength(t *testing.T) {
	tx, recorder := newDryRunTx(t)
	ctx := context.Background()
	slot := services.ConfigSlot()

	_, _ = tx.LoadConfig(ctx, slot)
	assert.Contains(t, recorder.last(), "FOR SHARE")
	assert.NotContains(t, recorder.last(), "FOR UPDATE")

	_, _ = tx.LoadConfigForUpdate(ctx, slot)
	assert.Contains(t, recorder.last(), "FOR UPDATE")

	_, _ = tx.LoadPaywall(ctx, services.PaywallSlot("creator-a", "article"))
	assert.Contains(t, recorder.last(), "FOR UPDATE")
}

func TestLedgerTxTransferFromMissingAccount(t *testing.T) {
	tx, recorder := newDryRunTx(t)
	ctx := context.Background()

	err := tx.Transfer(ctx, " payer-1 ", "creator-a", 5)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientFunds)
	require.Len(t, recorder.statements, 1)
	assert.Contains(t, recorder.last(), `"account_balances"`)
	assert.Contains(t, recorder.last(), "'payer-1'")
	assert.Contains(t, recorder.last(), "FOR UPDATE")

	recorder.reset()
	assert.NoError(t, tx.Transfer(ctx, "payer-1", "creator-a", 0))
	require.Len(t, recorder.statements, 1, "zero transfers only lock the source row")
}

func TestLedgerTxTransferToSelfWritesNothing(t *testing.T) {
	tx, recorder := newDryRunTx(t)
	ctx := context.Background()

	assert.NoError(t, tx.Transfer(ctx, "payer-1", " payer-1", 0))
	require.Len(t, recorder.statements, 1)
	assert.True(t, strings.HasPrefix(recorder.last(), "SELECT"), recorder.last())

	recorder.reset()
	assert.ErrorIs(t, tx.Transfer(ctx, "payer-1", "payer-1", 1), domainerrors.ErrInsufficientFunds)
	require.Len(t, recorder.statements, 1)
}

func TestLedgerTxRejectsBlankAccounts(t *testing.T) {
	tx, recorder := newDryRunTx(t)
	ctx := context.Background()

	assert.ErrorIs(t, tx.Transfer(ctx, "  ", "creator-a", 1), domainerrors.ErrInvalidIdentity)
	assert.ErrorIs(t, tx.Transfer(ctx, "payer-1", "", 1), domainerrors.ErrInvalidIdentity)
	assert.ErrorIs(t, tx.Credit(ctx, "\t", 1), domainerrors.ErrInvalidIdentity)
	assert.Empty(t, recorder.statements)
}

func TestLedgerTxCreditUpserts(t *testing.T) {
	tx, recorder := newDryRunTx(t)

	require.NoError(t, tx.Credit(context.Background(), " payer-1 ", 250))
	require.Len(t, recorder.statements, 1)
	sql := recorder.last()
	assert.Contains(t, sql, `INSERT INTO "account_balances"`)
	assert.Contains(t, sql, "'payer-1'")
	assert.Contains(t, sql, "ON CONFLICT")
	assert.Contains(t, sql, "account_balances.balance + EXCLUDED.balance")
}

func TestRetryAbortedReplaysDeadlocks(t *testing.T) {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	attempts := 0
	err := retryAborted(context.Background(), quiet, func() error {
		attempts++
		return &pgconn.PgError{Code: "40P01"}
	})
	assert.True(t, isTransactionAborted(err))
	assert.Equal(t, maxTransactionAttempts, attempts)

	attempts = 0
	err = retryAborted(context.Background(), quiet, func() error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, attempts)

	attempts = 0
	err = retryAborted(context.Background(), quiet, func() error {
		attempts++
		return &pgconn.PgError{Code: "23505"}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	attempts = 0
	_ = retryAborted(ctx, quiet, func() error {
		attempts++
		return &pgconn.PgError{Code: "40P01"}
	})
	assert.Equal(t, 1, attempts)
}

func TestIsTransactionAborted(t *testing.T) {
	assert.True(t, isTransactionAborted(errors.Join(errors.New("commit"), &pgconn.PgError{Code: "40P01"})))
	assert.False(t, isTransactionAborted(&pgconn.PgError{Code: "22003"}))
	assert.False(t, isTransactionAborted(nil))
	assert.False(t, isTransactionAborted(domainerrors.ErrInsufficientFunds))
}
