package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// ApplySeeds は fsys 直下の *.sql をファイル名順に 1 トランザクションで実行し、適用したファイル名を返します。
func ApplySeeds(ctx context.Context, tm *TransactionManager, db Queryer, fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("postgres: read seeds: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	err = tm.WithinReadWrite(ctx, func(ctx context.Context) error {
		exec := QueryerFromContext(ctx, db)
		for _, name := range names {
			b, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("postgres: read seed %s: %w", name, err)
			}
			stmt := strings.TrimSpace(string(b))
			if stmt == "" {
				continue
			}
			if _, err := exec.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("postgres: apply seed %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
