package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// transactionContextKey はコンテキストにトランザクションを格納するためのキーです。
type transactionContextKey struct{}

var txContextKey = transactionContextKey{}

// ErrWriteInSnapshot はスナップショット読み取り中に書き込みトランザクションを要求した場合のエラーです。
var ErrWriteInSnapshot = errors.New("postgres: read-write transaction requested inside snapshot")

// TxMode はトランザクションの種類です。
type TxMode int

const (
	// ModeSnapshot は REPEATABLE READ の読み取り専用トランザクションです。
	// 1 回のプロフィール組み立てで発行する複数クエリが同じ時点のデータを参照します。
	ModeSnapshot TxMode = iota
	// ModeReadWrite はシード投入など書き込みを伴う運用処理向けのトランザクションです。
	ModeReadWrite
)

func (m TxMode) options() pgx.TxOptions {
	if m == ModeReadWrite {
		return pgx.TxOptions{AccessMode: pgx.ReadWrite}
	}
	return pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
}

// String はログ出力用の名前を返します。
func (m TxMode) String() string {
	if m == ModeReadWrite {
		return "read-write"
	}
	return "snapshot"
}

// activeTx はコンテキストに格納する実行中のトランザクションです。
type activeTx struct {
	tx   pgx.Tx
	mode TxMode
}

// txStarter は pgxpool.Pool と pgxmock が満たすトランザクション開始インターフェースです。
type txStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TransactionManager は pgx を用いたトランザクション制御を提供します。
type TransactionManager struct {
	pool txStarter
}

// NewTransactionManager は TransactionManager を生成します。
func NewTransactionManager(pool txStarter) *TransactionManager {
	if pool == nil {
		return nil
	}
	return &TransactionManager{pool: pool}
}

// WithinSnapshot は fn 内のクエリを 1 つのスナップショットで実行します。
// 社員と関連エンティティの読み取りはすべてこの中で行います。
func (m *TransactionManager) WithinSnapshot(ctx context.Context, fn func(context.Context) error) error {
	return m.Within(ctx, ModeSnapshot, fn)
}

// WithinReadWrite は読み書きトランザクションで fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.Within(ctx, ModeReadWrite, fn)
}

// Within は mode のトランザクションで fn を実行します。
// 既にトランザクション内であればそれを再利用しますが、スナップショット内での書き込み要求は ErrWriteInSnapshot を返します。
// nil の TransactionManager はトランザクションを張らずに fn を実行します。
func (m *TransactionManager) Within(ctx context.Context, mode TxMode, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("postgres: transaction function is required")
	}

	if current, ok := activeFromContext(ctx); ok {
		if current.mode == ModeSnapshot && mode == ModeReadWrite {
			return ErrWriteInSnapshot
		}
		return fn(ctx)
	}

	if m == nil {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, mode.options())
	if err != nil {
		return fmt.Errorf("postgres: begin %s tx: %w", mode, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	txCtx := context.WithValue(ctx, txContextKey, activeTx{tx: tx, mode: mode})

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("postgres: rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if !errors.Is(err, pgx.ErrTxClosed) {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				return errors.Join(fmt.Errorf("postgres: commit: %w", err), fmt.Errorf("postgres: rollback after commit failure: %w", rbErr))
			}
		}
		return fmt.Errorf("postgres: commit: %w", err)
	}

	committed = true
	return nil
}

func activeFromContext(ctx context.Context) (activeTx, bool) {
	if ctx == nil {
		return activeTx{}, false
	}
	active, ok := ctx.Value(txContextKey).(activeTx)
	return active, ok
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	active, ok := activeFromContext(ctx)
	return active.tx, ok
}

// QueryerFromContext はコンテキスト内にトランザクションが存在すればそれを返し、存在しなければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// Queryer は pgx.Tx および pgxpool.Pool と互換性のあるクエリ実行インターフェースです。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
