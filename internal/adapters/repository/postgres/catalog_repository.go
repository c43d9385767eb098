package postgres

import (
	"context"
	"database/sql"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-grpc-employee-profile/internal/platform/db/postgres"
)

// CatalogRepository は部署とプロジェクトの一覧を PostgreSQL から取得します。
type CatalogRepository struct {
	pool pgdb.Queryer
}

// NewCatalogRepository は CatalogRepository を生成します。
func NewCatalogRepository(pool pgdb.Queryer) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListDepartments は全部署を ID 昇順で返します。
func (r *CatalogRepository) ListDepartments(ctx context.Context) ([]*employee.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name
          FROM departments
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]*employee.Department, 0)
	for rows.Next() {
		var d employee.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		departments = append(departments, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return departments, nil
}

// ListProjects は全プロジェクトを ID 昇順で返します。
func (r *CatalogRepository) ListProjects(ctx context.Context) ([]*employee.Project, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, start_date, end_date, department_id
          FROM projects
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*employee.Project, 0)
	for rows.Next() {
		var (
			p            employee.Project
			startDate    sql.NullTime
			endDate      sql.NullTime
			departmentID sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &p.Name, &startDate, &endDate, &departmentID); err != nil {
			return nil, err
		}
		p.StartDate = nullDatePtr(startDate)
		p.EndDate = nullDatePtr(endDate)
		p.DepartmentID = nullInt64Ptr(departmentID)
		projects = append(projects, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}
