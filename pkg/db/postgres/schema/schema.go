// Package schema applies versioned SQL scripts out of a schema repository.
//
// The repository is a directory of numbered subdirectories, one per schema
// version. Each subdirectory holds .sql scripts which are executed in
// filename order when that version is applied.
package schema

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	kpool "github.com/DavidAtikpo/irata-sub007/pkg/conn/db/postgres/pool"
)

type migration struct {
	Version int
	Scripts []string // absolute paths, sorted by filename
}

func (m migration) apply(ctx context.Context, conn kpool.Queryer) error {
	for _, script := range m.Scripts {
		query, err := os.ReadFile(script)
		if err != nil {
			return err
		}
		if _, err := conn.Exec(ctx, string(query)); err != nil {
			return fmt.Errorf("schema script %s: %w", filepath.Base(script), err)
		}
	}
	return nil
}

type pgSchema struct {
	pool       kpool.Pool
	repository string
}

// New creates a schema over the repository directory at repository.
func New(pool kpool.Pool, repository string) *pgSchema {
	return &pgSchema{pool: pool, repository: repository}
}

func (s *pgSchema) Version(ctx context.Context) (int, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return -1, err
	}
	defer conn.Release()

	var version int
	if err := conn.QueryRow(
		ctx, `select max("version") from "schema_version"`,
	).Scan(&version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return 0, nil // nothing applied yet, not even the version table
		}
		return -1, err
	}
	return version, nil
}

func (s *pgSchema) Upgrade(ctx context.Context) error {
	migrations, err := s.migrations()
	if err != nil {
		return err
	}

	current, err := s.Version(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		// each version lands atomically, or not at all.
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		if err := func() error {
			defer tx.Rollback(ctx)
			if err := m.apply(ctx, tx); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `delete from "schema_version"`); err != nil {
				return err
			}
			if _, err := tx.Exec(
				ctx, `insert into "schema_version" ("version") values ($1)`, m.Version,
			); err != nil {
				return err
			}
			return tx.Commit(ctx)
		}(); err != nil {
			return err
		}
	}
	return nil
}

// Context watches the schema repository and cancels when the database
// version falls behind what the repository requires.
func (s *pgSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	cctx, can := context.WithCancelCause(ctx)
	cancel := func() { can(nil) }

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		can(err)
		return cctx, cancel
	}
	if err := watcher.Add(s.repository); err != nil {
		watcher.Close()
		can(err)
		return cctx, cancel
	}

	verify := func() {
		migrations, err := s.migrations()
		if err != nil {
			can(fmt.Errorf("failed to read schema repository: %w", err))
			return
		}
		current, err := s.Version(ctx)
		if err != nil {
			can(fmt.Errorf("failed to get current schema version: %w", err))
			return
		}
		for _, m := range migrations {
			if current < m.Version {
				can(fmt.Errorf(
					"schema is outdated: %d (in db) < %d (in repository)",
					current, m.Version,
				))
				return
			}
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-cctx.Done():
				return
			case ev := <-watcher.Events:
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) {
					continue
				}
				if filepath.Dir(ev.Name) != s.repository {
					continue
				}
				verify()
			}
		}
	}()

	verify()
	return cctx, cancel
}

func (s *pgSchema) migrations() ([]migration, error) {
	entries, err := os.ReadDir(s.repository)
	if err != nil {
		return nil, err
	}

	migrations := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue // not a version directory
		}

		root := filepath.Join(s.repository, entry.Name())
		scripts := []string{}
		if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".sql") {
				scripts = append(scripts, path)
			}
			return nil
		}); err != nil {
			return nil, err
		}
		slices.Sort(scripts)

		migrations = append(migrations, migration{Version: v, Scripts: scripts})
	}

	slices.SortFunc(migrations, func(a, b migration) int {
		return cmp.Compare(a.Version, b.Version)
	})
	return migrations, nil
}

// Null returns a schema without a repository. Upgrade always fails.
func Null() *nullSchema {
	return &nullSchema{}
}

type nullSchema struct{}

func (nullSchema) Upgrade(ctx context.Context) error {
	return errors.New("no schema repository available")
}

func (nullSchema) Version(ctx context.Context) (int, error) {
	return -1, nil
}

func (nullSchema) Context(ctx context.Context) (context.Context, context.CancelFunc) {
	return ctx, func() {}
}
