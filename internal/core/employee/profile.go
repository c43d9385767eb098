package employee

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// NoManager は上長がいない社員の managerName です。
	NoManager = "No Manager"
	// NoDepartment は部署を解決できない場合の departmentName です。
	NoDepartment = "No Department"
)

// Profile はクライアント向けに平坦化した社員プロフィールです。
type Profile struct {
	ID             int64            `json:"id"`
	Name           string           `json:"name"`
	Email          string           `json:"email"`
	DateOfJoining  *string          `json:"dateOfJoining"`
	Salary         float64          `json:"salary"`
	ManagerName    string           `json:"managerName"`
	DepartmentName string           `json:"departmentName"`
	Projects       []ProjectSummary `json:"projects"`
	Reviews        []ReviewSummary  `json:"performanceReviews"`
}

// ProjectSummary はプロフィールに含めるプロジェクト情報です。
type ProjectSummary struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	StartDate      *string `json:"startDate"`
	EndDate        *string `json:"endDate"`
	DepartmentName string  `json:"departmentName"`
}

// ReviewSummary はプロフィールに含める評価情報です。
type ReviewSummary struct {
	ID         int64           `json:"id"`
	ReviewDate *string         `json:"reviewDate"`
	Score      decimal.Decimal `json:"score"`
	Comments   *string         `json:"comments"`
}

// NewProfile は Graph 上の社員と選択済みの評価から Profile を組み立てます。
// 不正な関連データは読み飛ばし、その内容を ErrMappingDegraded を包んだエラーとして返します。
// 社員が nil の場合を除き、エラーの有無に関わらず Profile を返します。
func NewProfile(g *Graph, e *Employee, reviews []PerformanceReview) (*Profile, error) {
	if e == nil {
		return nil, fmt.Errorf("nil employee: %w", ErrMappingDegraded)
	}

	p := &Profile{
		ID:             e.ID,
		Name:           e.Name,
		Email:          e.Email,
		DateOfJoining:  formatDate(e.DateOfJoining),
		Salary:         e.Salary,
		ManagerName:    nameOrDefault(g.managerNamed(e), NoManager),
		DepartmentName: nameOrDefault(g.departmentNamed(e.DepartmentID), NoDepartment),
		Projects:       make([]ProjectSummary, 0, len(e.Assignments)),
		Reviews:        make([]ReviewSummary, 0, len(reviews)),
	}

	var issues []error

	for _, a := range e.Assignments {
		project := g.Project(a.ProjectID)
		if project == nil {
			issues = append(issues, fmt.Errorf("assignment to project %d: project not loaded", a.ProjectID))
			continue
		}
		p.Projects = append(p.Projects, newProjectSummary(g, project))
	}

	for _, r := range reviews {
		if !r.ScoreInRange() {
			issues = append(issues, fmt.Errorf("review %d: score %s outside [0.00, 10.00]", r.ID, r.Score.StringFixed(2)))
			continue
		}
		p.Reviews = append(p.Reviews, newReviewSummary(r))
	}

	if len(issues) > 0 {
		return p, fmt.Errorf("employee %d: %w: %w", e.ID, ErrMappingDegraded, errors.Join(issues...))
	}
	return p, nil
}

func newProjectSummary(g *Graph, project *Project) ProjectSummary {
	var dept Named
	if project.DepartmentID != nil {
		dept = g.departmentNamed(*project.DepartmentID)
	}
	return ProjectSummary{
		ID:             project.ID,
		Name:           project.Name,
		StartDate:      formatDate(project.StartDate),
		EndDate:        formatDate(project.EndDate),
		DepartmentName: nameOrDefault(dept, NoDepartment),
	}
}

func newReviewSummary(r PerformanceReview) ReviewSummary {
	var reviewDate *string
	if !r.ReviewDate.IsZero() {
		reviewDate = formatDate(&r.ReviewDate)
	}
	return ReviewSummary{
		ID:         r.ID,
		ReviewDate: reviewDate,
		Score:      r.Score,
		Comments:   cloneString(r.Comments),
	}
}

func nameOrDefault(entity Named, fallback string) string {
	if entity == nil {
		return fallback
	}
	return entity.DisplayName()
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
