package catalog

import (
	"context"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
)

// Repository は参照データの読み取り抽象です。
type Repository interface {
	ListDepartments(ctx context.Context) ([]*employee.Department, error)
	ListProjects(ctx context.Context) ([]*employee.Project, error)
}
