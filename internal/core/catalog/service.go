package catalog

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// TransactionManager は複数の読み取りを 1 つのスナップショットにまとめる抽象化です。
type TransactionManager interface {
	WithinSnapshot(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinSnapshot(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は参照リストユースケースの公開インターフェースです。
type UseCase interface {
	ListDepartments(ctx context.Context) ([]DropdownItem, error)
	ListProjects(ctx context.Context) ([]DropdownItem, error)
}

// Service は部署・プロジェクトの参照リストを提供します。
type Service struct {
	repo   Repository
	tx     TransactionManager
	logger *zap.Logger
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager, logger *zap.Logger) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, tx: tx, logger: logger.Named("catalog.service")}
}

// ListDepartments は部署を ID 昇順の DropdownItem として返します。
func (s *Service) ListDepartments(ctx context.Context) ([]DropdownItem, error) {
	var items []DropdownItem
	if err := s.tx.WithinSnapshot(ctx, func(txCtx context.Context) error {
		departments, err := s.repo.ListDepartments(txCtx)
		if err != nil {
			return err
		}
		items = make([]DropdownItem, 0, len(departments))
		for _, d := range departments {
			if d != nil {
				items = append(items, DropdownItem{ID: d.ID, Name: d.Name})
			}
		}
		return nil
	}); err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	return sortByID(items), nil
}

// ListProjects はプロジェクトを ID 昇順の DropdownItem として返します。
func (s *Service) ListProjects(ctx context.Context) ([]DropdownItem, error) {
	var items []DropdownItem
	if err := s.tx.WithinSnapshot(ctx, func(txCtx context.Context) error {
		projects, err := s.repo.ListProjects(txCtx)
		if err != nil {
			return err
		}
		items = make([]DropdownItem, 0, len(projects))
		for _, p := range projects {
			if p != nil {
				items = append(items, DropdownItem{ID: p.ID, Name: p.Name})
			}
		}
		return nil
	}); err != nil {
		s.logger.Error("list projects failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
	}
	return sortByID(items), nil
}

func sortByID(items []DropdownItem) []DropdownItem {
	if items == nil {
		return []DropdownItem{}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
