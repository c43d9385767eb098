package handler

import (
	"context"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/catalog"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// CatalogHandler は CatalogService の gRPC 実装です。
type CatalogHandler struct {
	svc catalog.UseCase
}

// NewCatalogHandler は CatalogHandler を生成します。
func NewCatalogHandler(svc catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListDepartments は部署のドロップダウン項目を返します。
func (h *CatalogHandler) ListDepartments(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := h.svc.ListDepartments(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toDropdownList(items), nil
}

// ListProjects はプロジェクトのドロップダウン項目を返します。
func (h *CatalogHandler) ListProjects(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	items, err := h.svc.ListProjects(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toDropdownList(items), nil
}

func toDropdownList(items []catalog.DropdownItem) *structpb.ListValue {
	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(items))}
	for _, item := range items {
		list.Values = append(list.Values, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				"id":   structpb.NewNumberValue(float64(item.ID)),
				"name": structpb.NewStringValue(item.Name),
			},
		}))
	}
	return list
}
