package employee

import "context"

// Repository は社員エンティティの読み取り抽象です。
type Repository interface {
	// FindByID は社員 1 名とその関連を Graph として返します。存在しなければ ErrEmployeeNotFound を返します。
	FindByID(ctx context.Context, id int64) (*Graph, error)
	// Search は Filter に一致する社員を Graph として返します。一致なしの場合は Roots が空になります。
	Search(ctx context.Context, filter Filter) (*Graph, error)
}
