package employee

import (
	"context"
	"errors"
	"fmt"

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

// DegradationObserver はマッピング劣化の発生を受け取ります。
type DegradationObserver interface {
	ProfileDegraded(operation string)
}

type noopObserver struct{}

func (noopObserver) ProfileDegraded(string) {}

// Settings はサービスの動作設定です。
type Settings struct {
	// MaxReviews はプロフィールに含める評価の最大件数です。0 以下なら DefaultMaxReviews を使います。
	MaxReviews int
	// StrictSingleFetch が true の場合、FetchProfile はマッピング劣化をエラーとして返します。
	StrictSingleFetch bool
}

// UseCase は社員プロフィール参照ユースケースの公開インターフェースです。
type UseCase interface {
	FetchProfile(ctx context.Context, in FetchProfileInput) (*Profile, error)
	SearchProfiles(ctx context.Context, in SearchProfilesInput) ([]*Profile, error)
}

// Service は社員プロフィール参照のユースケースをまとめます。
type Service struct {
	repo     Repository
	tx       TransactionManager
	settings Settings
	logger   *zap.Logger
	observer DegradationObserver
}

// Option は Service の任意設定です。
type Option func(*Service)

// WithObserver はマッピング劣化の通知先を設定します。
func WithObserver(o DegradationObserver) Option {
	return func(s *Service) {
		if o != nil {
			s.observer = o
		}
	}
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager, settings Settings, logger *zap.Logger, opts ...Option) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if settings.MaxReviews <= 0 {
		settings.MaxReviews = DefaultMaxReviews
	}
	s := &Service{
		repo:     repo,
		tx:       tx,
		settings: settings,
		logger:   logger.Named("employee.service"),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchProfileInput は社員プロフィール取得時の入力です。
type FetchProfileInput struct {
	ID int64
}

// SearchProfilesInput は社員検索時の入力です。
type SearchProfilesInput struct {
	Criteria Criteria
}

// FetchProfile は社員 1 名のプロフィールを取得します。
func (s *Service) FetchProfile(ctx context.Context, in FetchProfileInput) (*Profile, error) {
	if in.ID <= 0 {
		return nil, fmt.Errorf("id %d: %w", in.ID, ErrInvalidEmployeeID)
	}

	var graph *Graph
	if err := s.tx.WithinSnapshot(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		graph = found
		return nil
	}); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Info("employee not found", zap.Int64("employee_id", in.ID))
			return nil, err
		}
		s.logger.Error("fetch employee failed", zap.Int64("employee_id", in.ID), zap.Error(err))
		return nil, upstream(err)
	}

	roots := graph.RootEmployees()
	if len(roots) == 0 {
		return nil, ErrEmployeeNotFound
	}
	emp := roots[0]

	reviews := s.selectReviews(emp)
	profile, err := NewProfile(graph, emp, reviews)
	if err != nil {
		s.reportDegraded("fetch", emp.ID, err)
		if s.settings.StrictSingleFetch {
			return nil, err
		}
	}

	s.logger.Debug("employee profile fetched",
		zap.Int64("employee_id", emp.ID),
		zap.Int("projects", len(profile.Projects)),
		zap.Int("reviews", len(profile.Reviews)),
		zap.Int("reportees", len(graph.Reportees(emp.ID))),
	)
	return profile, nil
}

// SearchProfiles は検索条件に一致する社員のプロフィールを永続化層の順序で返します。
// 一致する社員がいない場合は ErrNoMatches を返します。
func (s *Service) SearchProfiles(ctx context.Context, in SearchProfilesInput) ([]*Profile, error) {
	filter, err := ComposeFilter(in.Criteria)
	if err != nil {
		s.logger.Info("invalid search criteria", zap.Error(err))
		return nil, err
	}

	var graph *Graph
	if err := s.tx.WithinSnapshot(ctx, func(txCtx context.Context) error {
		found, err := s.repo.Search(txCtx, filter)
		if err != nil {
			return err
		}
		graph = found
		return nil
	}); err != nil {
		s.logger.Error("search employees failed", zap.Stringer("filter", filter), zap.Error(err))
		return nil, upstream(err)
	}

	employees := graph.RootEmployees()
	if len(employees) == 0 {
		s.logger.Info("search returned no results", zap.Stringer("filter", filter))
		return nil, ErrNoMatches
	}

	profiles := make([]*Profile, 0, len(employees))
	for _, emp := range employees {
		profile, err := NewProfile(graph, emp, s.selectReviews(emp))
		if err != nil {
			s.reportDegraded("search", emp.ID, err)
		}
		profiles = append(profiles, profile)
	}

	s.logger.Info("employee search completed", zap.Stringer("filter", filter), zap.Int("matches", len(profiles)))
	return profiles, nil
}

func (s *Service) selectReviews(emp *Employee) []PerformanceReview {
	if len(emp.Reviews) == 0 {
		s.logger.Debug("no performance reviews", zap.Int64("employee_id", emp.ID))
	}
	return SelectReviews(emp.Reviews, s.settings.MaxReviews)
}

func (s *Service) reportDegraded(operation string, employeeID int64, err error) {
	s.logger.Warn("employee profile mapping degraded",
		zap.String("operation", operation),
		zap.Int64("employee_id", employeeID),
		zap.Error(err),
	)
	s.observer.ProfileDegraded(operation)
}

func upstream(err error) error {
	if errors.Is(err, ErrUpstreamFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstreamFailure, err)
}
