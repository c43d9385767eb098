package postgres

import (
	"strconv"
	"strings"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
)

// buildEmployeeWhere は Filter を WHERE 句と引数に変換します。
// 関連テーブルの条件は EXISTS で表し、同じ社員が複数行返らないようにします。
func buildEmployeeWhere(filter employee.Filter, args []any) (string, []any) {
	conditions := make([]string, 0, 3)

	if len(filter.Departments) > 0 {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, `EXISTS (SELECT 1 FROM departments d WHERE d.id = e.department_id AND d.name = ANY(`+placeholder+`))`)
		args = append(args, filter.Departments)
	}

	if len(filter.Projects) > 0 {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, `EXISTS (SELECT 1 FROM employee_projects ep JOIN projects p ON p.id = ep.project_id WHERE ep.employee_id = e.id AND p.name = ANY(`+placeholder+`))`)
		args = append(args, filter.Projects)
	}

	if filter.ReviewDate != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, `EXISTS (SELECT 1 FROM performance_reviews r WHERE r.employee_id = e.id AND r.review_date = `+placeholder+`)`)
		args = append(args, nullableTime(filter.ReviewDate))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}
