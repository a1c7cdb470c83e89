package pool

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Queryer is something sending SQL commands.
//
// Interface extracted from `pgxpool.Conn` and `pgx.Tx`, so repositories and
// their tests do not depend on concrete pgx types. When you need more
// methods found in pgx, add them.
type Queryer interface {
	// Exec sends a SQL command which does not have result rows.
	Exec(ctx context.Context, sql string, arguments ...interface{}) (commandTag pgconn.CommandTag, err error)

	// Query sends a SQL command which has result rows.
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)

	// QueryRow sends a SQL command which has just a single result row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Tx is an interface extracted from `pgx.Tx`.
//
// `pgx.Tx` does not implement Tx directly (golang lacks covariance in
// typing); wrap it via Conn.Begin or Pool.Begin.
type Tx interface {
	Queryer

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Conn is an interface extracted from `*pgxpool.Conn`.
type Conn interface {
	Queryer

	Begin(ctx context.Context) (Tx, error)
	Release()
}

// Pool is an interface extracted from `*pgxpool.Pool`.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
	Begin(ctx context.Context) (Tx, error)
	Close()
}

// New connects to PostgreSQL at dburi and wraps the pool.
func New(ctx context.Context, dburi string) (Pool, error) {
	p, err := pgxpool.Connect(ctx, dburi)
	if err != nil {
		return nil, err
	}
	return &pgxPool{base: p}, nil
}

type pgxPool struct {
	base *pgxpool.Pool
}

var _ Pool = &pgxPool{}

func (p *pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.base.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxConn{base: conn}, nil
}

func (p *pgxPool) Begin(ctx context.Context) (Tx, error) {
	tx, err := p.base.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{base: tx}, nil
}

func (p *pgxPool) Close() {
	p.base.Close()
}

type pgxConn struct {
	base *pgxpool.Conn
}

var _ Conn = &pgxConn{}

func (c *pgxConn) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return c.base.Exec(ctx, sql, arguments...)
}

func (c *pgxConn) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return c.base.Query(ctx, sql, args...)
}

func (c *pgxConn) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return c.base.QueryRow(ctx, sql, args...)
}

func (c *pgxConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.base.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxTx{base: tx}, nil
}

func (c *pgxConn) Release() {
	c.base.Release()
}

type pgxTx struct {
	base pgx.Tx
}

var _ Tx = &pgxTx{}

func (tx *pgxTx) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return tx.base.Exec(ctx, sql, arguments...)
}

func (tx *pgxTx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return tx.base.Query(ctx, sql, args...)
}

func (tx *pgxTx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return tx.base.QueryRow(ctx, sql, args...)
}

func (tx *pgxTx) Commit(ctx context.Context) error {
	return tx.base.Commit(ctx)
}

func (tx *pgxTx) Rollback(ctx context.Context) error {
	return tx.base.Rollback(ctx)
}
