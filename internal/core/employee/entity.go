package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Named は表示名を持つエンティティの能力です。
type Named interface {
	DisplayName() string
}

// Department は部署エンティティです。
type Department struct {
	ID   int64
	Name string
}

// DisplayName は部署名を返します。
func (d *Department) DisplayName() string {
	return d.Name
}

// Project はプロジェクトエンティティです。
type Project struct {
	ID           int64
	Name         string
	StartDate    *time.Time
	EndDate      *time.Time
	DepartmentID *int64
}

// DisplayName はプロジェクト名を返します。
func (p *Project) DisplayName() string {
	return p.Name
}

// ProjectAssignment は社員とプロジェクトの割り当てです。(EmployeeID, ProjectID) で一意になります。
type ProjectAssignment struct {
	EmployeeID   int64
	ProjectID    int64
	AssignedDate time.Time
	Role         *string
}

// PerformanceReview は人事評価です。自然順序は評価日の降順です。
type PerformanceReview struct {
	ID         int64
	EmployeeID int64
	ReviewDate time.Time
	Score      decimal.Decimal
	Comments   *string
}

var (
	minReviewScore = decimal.Zero
	maxReviewScore = decimal.NewFromInt(10)
)

// ScoreInRange はスコアが 0.00〜10.00 の範囲内かを判定します。
func (r PerformanceReview) ScoreInRange() bool {
	return !r.Score.LessThan(minReviewScore) && !r.Score.GreaterThan(maxReviewScore)
}

// Employee は社員エンティティです。関連は ID 参照で保持し、Graph 経由で解決します。
type Employee struct {
	ID            int64
	Name          string
	Email         string
	DateOfJoining *time.Time
	Salary        float64
	DepartmentID  int64
	ManagerID     *int64
	Assignments   []ProjectAssignment
	Reviews       []PerformanceReview
}

// DisplayName は社員名を返します。
func (e *Employee) DisplayName() string {
	return e.Name
}
