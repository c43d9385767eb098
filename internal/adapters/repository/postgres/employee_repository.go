package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const employeeColumns = `e.id, e.name, e.email, e.date_of_joining, e.salary, e.department_id, e.manager_id`

// EmployeeRepository は PostgreSQL を利用した社員読み取りの実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindByID は ID で社員を取得し、関連エンティティと部下を含む Graph を返します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Graph, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT `+employeeColumns+`
          FROM employees e
         WHERE e.id = $1
         LIMIT 1
    `, id)

	emp, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}

	g := employee.NewGraph()
	g.AddRoot(emp)
	if err := r.loadRelations(ctx, exec, g); err != nil {
		return nil, err
	}
	if err := r.loadReportees(ctx, exec, g); err != nil {
		return nil, fmt.Errorf("postgres: load reportees: %w", err)
	}
	return g, nil
}

// Search は Filter に一致する社員を ID 昇順で取得し、関連エンティティを含む Graph を返します。
func (r *EmployeeRepository) Search(ctx context.Context, filter employee.Filter) (*employee.Graph, error) {
	whereClause, args := buildEmployeeWhere(filter, make([]any, 0, 3))

	query := `
        SELECT ` + employeeColumns + `
          FROM employees e` + whereClause + `
         ORDER BY e.id
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	g := employee.NewGraph()
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		g.AddRoot(emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}
	rows.Close()

	if len(g.Roots) == 0 {
		return g, nil
	}
	if err := r.loadRelations(ctx, exec, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *EmployeeRepository) loadRelations(ctx context.Context, exec pgdb.Queryer, g *employee.Graph) error {
	if err := r.loadAssignments(ctx, exec, g); err != nil {
		return fmt.Errorf("postgres: load assignments: %w", err)
	}
	if err := r.loadReviews(ctx, exec, g); err != nil {
		return fmt.Errorf("postgres: load reviews: %w", err)
	}
	if err := r.loadManagers(ctx, exec, g); err != nil {
		return fmt.Errorf("postgres: load managers: %w", err)
	}
	if err := r.loadDepartments(ctx, exec, g); err != nil {
		return fmt.Errorf("postgres: load departments: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) loadAssignments(ctx context.Context, exec pgdb.Queryer, g *employee.Graph) error {
	rows, err := exec.Query(ctx, `
        SELECT ep.employee_id, ep.project_id, ep.assigned_date, ep.role,
               p.id, p.name, p.start_date, p.end_date, p.department_id
          FROM employee_projects ep
          JOIN projects p ON p.id = ep.project_id
         WHERE ep.employee_id = ANY($1)
         ORDER BY ep.employee_id, ep.assigned_date, ep.project_id
    `, g.Roots)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			assignment   employee.ProjectAssignment
			role         sql.NullString
			project      employee.Project
			startDate    sql.NullTime
			endDate      sql.NullTime
			departmentID sql.NullInt64
		)
		if err := rows.Scan(
			&assignment.EmployeeID,
			&assignment.ProjectID,
			&assignment.AssignedDate,
			&role,
			&project.ID,
			&project.Name,
			&startDate,
			&endDate,
			&departmentID,
		); err != nil {
			return err
		}
		assignment.AssignedDate = toDate(assignment.AssignedDate)
		assignment.Role = nullStringPtr(role)
		project.StartDate = nullDatePtr(startDate)
		project.EndDate = nullDatePtr(endDate)
		project.DepartmentID = nullInt64Ptr(departmentID)

		g.Projects[project.ID] = &project
		if emp := g.Employees[assignment.EmployeeID]; emp != nil {
			emp.Assignments = append(emp.Assignments, assignment)
		}
	}
	return rows.Err()
}

func (r *EmployeeRepository) loadReviews(ctx context.Context, exec pgdb.Queryer, g *employee.Graph) error {
	rows, err := exec.Query(ctx, `
        SELECT r.id, r.employee_id, r.review_date, r.score::text, r.review_comments
          FROM performance_reviews r
         WHERE r.employee_id = ANY($1)
         ORDER BY r.employee_id, r.review_date DESC, r.id
    `, g.Roots)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			review   employee.PerformanceReview
			score    string
			comments sql.NullString
		)
		if err := rows.Scan(&review.ID, &review.EmployeeID, &review.ReviewDate, &score, &comments); err != nil {
			return err
		}
		parsed, err := decimal.NewFromString(score)
		if err != nil {
			return fmt.Errorf("review %d score %q: %w", review.ID, score, err)
		}
		review.Score = parsed
		review.ReviewDate = toDate(review.ReviewDate)
		review.Comments = nullStringPtr(comments)

		if emp := g.Employees[review.EmployeeID]; emp != nil {
			emp.Reviews = append(emp.Reviews, review)
		}
	}
	return rows.Err()
}

func (r *EmployeeRepository) loadManagers(ctx context.Context, exec pgdb.Queryer, g *employee.Graph) error {
	missing := missingManagerIDs(g)
	if len(missing) == 0 {
		return nil
	}

	rows, err := exec.Query(ctx, `
        SELECT `+employeeColumns+`
          FROM employees e
         WHERE e.id = ANY($1)
    `, missing)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		manager, err := scanEmployee(rows)
		if err != nil {
			return err
		}
		g.Employees[manager.ID] = manager
	}
	return rows.Err()
}

// loadReportees は Roots を上長に持つ社員を Graph に追加します。Roots には加えません。
func (r *EmployeeRepository) loadReportees(ctx context.Context, exec pgdb.Queryer, g *employee.Graph) error {
	rows, err := exec.Query(ctx, `
        SELECT `+employeeColumns+`
          FROM employees e
         WHERE e.manager_id = ANY($1)
         ORDER BY e.id
    `, g.Roots)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		reportee, err := scanEmployee(rows)
		if err != nil {
			return err
		}
		if _, loaded := g.Employees[reportee.ID]; loaded {
			continue
		}
		g.Employees[reportee.ID] = reportee
	}
	return rows.Err()
}

func (r *EmployeeRepository) loadDepartments(ctx context.Context, exec pgdb.Queryer, g *employee.Graph) error {
	ids := referencedDepartmentIDs(g)
	if len(ids) == 0 {
		return nil
	}

	rows, err := exec.Query(ctx, `
        SELECT d.id, d.name
          FROM departments d
         WHERE d.id = ANY($1)
    `, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var d employee.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return err
		}
		g.Departments[d.ID] = &d
	}
	return rows.Err()
}

func missingManagerIDs(g *employee.Graph) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, emp := range g.Employees {
		if emp.ManagerID == nil {
			continue
		}
		id := *emp.ManagerID
		if _, loaded := g.Employees[id]; loaded {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func referencedDepartmentIDs(g *employee.Graph) []int64 {
	seen := make(map[int64]struct{})
	for _, emp := range g.Employees {
		seen[emp.DepartmentID] = struct{}{}
	}
	for _, p := range g.Projects {
		if p.DepartmentID != nil {
			seen[*p.DepartmentID] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id            int64
		name          string
		email         string
		dateOfJoining sql.NullTime
		salary        float64
		departmentID  int64
		managerID     sql.NullInt64
	)

	if err := row.Scan(&id, &name, &email, &dateOfJoining, &salary, &departmentID, &managerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:            id,
		Name:          name,
		Email:         email,
		DateOfJoining: nullDatePtr(dateOfJoining),
		Salary:        salary,
		DepartmentID:  departmentID,
		ManagerID:     nullInt64Ptr(managerID),
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}
	return err
}

func toDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func nullDatePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	d := toDate(value.Time)
	return &d
}

func nullInt64Ptr(value sql.NullInt64) *int64 {
	if !value.Valid {
		return nil
	}
	v := value.Int64
	return &v
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}
