package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// サービスとメソッドの完全修飾名です。proto/employee/v1/profile.proto と proto/catalog/v1/catalog.proto に対応します。
const (
	EmployeeProfileServiceName = "employee.v1.EmployeeProfileService"
	CatalogServiceName         = "catalog.v1.CatalogService"

	GetEmployeeProfileMethod = "/" + EmployeeProfileServiceName + "/GetEmployeeProfile"
	SearchEmployeesMethod    = "/" + EmployeeProfileServiceName + "/SearchEmployees"
	ListDepartmentsMethod    = "/" + CatalogServiceName + "/ListDepartments"
	ListProjectsMethod       = "/" + CatalogServiceName + "/ListProjects"
)

// EmployeeProfileServiceServer は EmployeeProfileService のサーバー API です。
type EmployeeProfileServiceServer interface {
	GetEmployeeProfile(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	SearchEmployees(context.Context, *structpb.Struct) (*structpb.ListValue, error)
}

// CatalogServiceServer は CatalogService のサーバー API です。
type CatalogServiceServer interface {
	ListDepartments(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	ListProjects(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
}

// EmployeeProfileServiceDesc は EmployeeProfileService のサービス記述子です。
var EmployeeProfileServiceDesc = grpc.ServiceDesc{
	ServiceName: EmployeeProfileServiceName,
	HandlerType: (*EmployeeProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetEmployeeProfile",
			Handler:    getEmployeeProfileHandler,
		},
		{
			MethodName: "SearchEmployees",
			Handler:    searchEmployeesHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "employee/v1/profile.proto",
}

// CatalogServiceDesc は CatalogService のサービス記述子です。
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListDepartments",
			Handler:    listDepartmentsHandler,
		},
		{
			MethodName: "ListProjects",
			Handler:    listProjectsHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}

// RegisterEmployeeProfileServiceServer は EmployeeProfileService を登録します。
func RegisterEmployeeProfileServiceServer(s grpc.ServiceRegistrar, srv EmployeeProfileServiceServer) {
	s.RegisterService(&EmployeeProfileServiceDesc, srv)
}

// RegisterCatalogServiceServer は CatalogService を登録します。
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func getEmployeeProfileHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeProfileServiceServer).GetEmployeeProfile(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetEmployeeProfileMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EmployeeProfileServiceServer).GetEmployeeProfile(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

func searchEmployeesHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EmployeeProfileServiceServer).SearchEmployees(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SearchEmployeesMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EmployeeProfileServiceServer).SearchEmployees(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listDepartmentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListDepartments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListDepartmentsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ListDepartments(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func listProjectsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListProjects(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListProjectsMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).ListProjects(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// EmployeeProfileServiceClient は EmployeeProfileService のクライアントです。
type EmployeeProfileServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewEmployeeProfileServiceClient は EmployeeProfileServiceClient を生成します。
func NewEmployeeProfileServiceClient(cc grpc.ClientConnInterface) *EmployeeProfileServiceClient {
	return &EmployeeProfileServiceClient{cc: cc}
}

// GetEmployeeProfile は ID を指定してプロフィールを取得します。
func (c *EmployeeProfileServiceClient) GetEmployeeProfile(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetEmployeeProfileMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchEmployees は検索条件に一致するプロフィールを取得します。
func (c *EmployeeProfileServiceClient) SearchEmployees(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, SearchEmployeesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// CatalogServiceClient は CatalogService のクライアントです。
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient は CatalogServiceClient を生成します。
func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

// ListDepartments は部署一覧を取得します。
func (c *CatalogServiceClient) ListDepartments(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListDepartmentsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProjects はプロジェクト一覧を取得します。
func (c *CatalogServiceClient) ListProjects(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListProjectsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
