//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	repo "github.com/ogurasousui/codex-grpc-employee-profile/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/catalog"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/db/postgres"
	"go.uber.org/zap/zaptest"
)

const (
	migrationsDir = "../assets/migrations"
	seedsDir      = "../assets/seeds"
)

func TestEmployeeProfileIntegration(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	tm := pg.NewTransactionManager(pool)
	if _, err := pg.ApplySeeds(ctx, tm, pool, os.DirFS(seedsDir)); err != nil {
		t.Fatalf("failed to apply seeds: %v", err)
	}

	logger := zaptest.NewLogger(t)
	svc := employee.NewService(repo.NewEmployeeRepository(pool), tm, employee.Settings{MaxReviews: 5}, logger)

	t.Run("fetch trims reviews and resolves names", func(t *testing.T) {
		profile, err := svc.FetchProfile(ctx, employee.FetchProfileInput{ID: 1})
		if err != nil {
			t.Fatalf("FetchProfile error: %v", err)
		}
		if profile.ManagerName != employee.NoManager {
			t.Fatalf("expected %q, got %q", employee.NoManager, profile.ManagerName)
		}
		if profile.DepartmentName != "Engineering" {
			t.Fatalf("expected Engineering, got %q", profile.DepartmentName)
		}
		if len(profile.Reviews) != 5 {
			t.Fatalf("expected 5 reviews, got %d", len(profile.Reviews))
		}
		if *profile.Reviews[0].ReviewDate != "2024-12-01" {
			t.Fatalf("expected newest review first, got %s", *profile.Reviews[0].ReviewDate)
		}
	})

	t.Run("fetch resolves manager", func(t *testing.T) {
		profile, err := svc.FetchProfile(ctx, employee.FetchProfileInput{ID: 2})
		if err != nil {
			t.Fatalf("FetchProfile error: %v", err)
		}
		if profile.ManagerName != "Alice Tanaka" {
			t.Fatalf("expected Alice Tanaka, got %q", profile.ManagerName)
		}
		if len(profile.Projects) != 1 || profile.Projects[0].DepartmentName != employee.NoDepartment {
			t.Fatalf("unexpected projects: %+v", profile.Projects)
		}
	})

	t.Run("fetch missing", func(t *testing.T) {
		if _, err := svc.FetchProfile(ctx, employee.FetchProfileInput{ID: 999999}); !errors.Is(err, employee.ErrEmployeeNotFound) {
			t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
		}
	})

	t.Run("search composes criteria", func(t *testing.T) {
		all, err := svc.SearchProfiles(ctx, employee.SearchProfilesInput{})
		if err != nil {
			t.Fatalf("SearchProfiles error: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 profiles, got %d", len(all))
		}

		both, err := svc.SearchProfiles(ctx, employee.SearchProfilesInput{Criteria: employee.Criteria{
			Departments: []string{"Engineering"},
			Projects:    []string{"Atlas"},
		}})
		if err != nil {
			t.Fatalf("SearchProfiles error: %v", err)
		}
		if len(both) != 1 || both[0].ID != 1 {
			t.Fatalf("expected only Alice, got %+v", both)
		}

		byDate, err := svc.SearchProfiles(ctx, employee.SearchProfilesInput{Criteria: employee.Criteria{ReviewDate: "2024-06-30"}})
		if err != nil {
			t.Fatalf("SearchProfiles error: %v", err)
		}
		if len(byDate) != 1 || byDate[0].ID != 2 {
			t.Fatalf("expected only Bob, got %+v", byDate)
		}
	})

	t.Run("search unknown department", func(t *testing.T) {
		_, err := svc.SearchProfiles(ctx, employee.SearchProfilesInput{Criteria: employee.Criteria{Departments: []string{"Unknown"}}})
		if !errors.Is(err, employee.ErrNoMatches) {
			t.Fatalf("expected ErrNoMatches, got %v", err)
		}
	})

	t.Run("blank criteria values stay active", func(t *testing.T) {
		_, err := svc.SearchProfiles(ctx, employee.SearchProfilesInput{Criteria: employee.Criteria{Departments: []string{""}}})
		if !errors.Is(err, employee.ErrNoMatches) {
			t.Fatalf("expected ErrNoMatches, got %v", err)
		}
		_, err = svc.SearchProfiles(ctx, employee.SearchProfilesInput{Criteria: employee.Criteria{ReviewDate: "   "}})
		if !errors.Is(err, employee.ErrMalformedFilterValue) {
			t.Fatalf("expected ErrMalformedFilterValue, got %v", err)
		}
	})

	t.Run("fetch loads reportees", func(t *testing.T) {
		employees := repo.NewEmployeeRepository(pool)
		var graph *employee.Graph
		err := tm.WithinSnapshot(ctx, func(txCtx context.Context) error {
			found, err := employees.FindByID(txCtx, 1)
			graph = found
			return err
		})
		if err != nil {
			t.Fatalf("FindByID error: %v", err)
		}
		if reportees := graph.Reportees(1); len(reportees) != 2 {
			t.Fatalf("expected Bob and Carol as reportees, got %+v", reportees)
		}
		if len(graph.Roots) != 1 {
			t.Fatalf("expected a single root, got %v", graph.Roots)
		}
	})

	t.Run("catalog lists", func(t *testing.T) {
		catalogSvc := catalog.NewService(repo.NewCatalogRepository(pool), tm, logger)
		departments, err := catalogSvc.ListDepartments(ctx)
		if err != nil {
			t.Fatalf("ListDepartments error: %v", err)
		}
		if len(departments) != 3 || departments[0].Name != "Engineering" {
			t.Fatalf("unexpected departments: %+v", departments)
		}
	})
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}
