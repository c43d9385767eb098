package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// 検索リクエストで認識するキーです。それ以外のキーは無視します。
const (
	searchKeyDepartment = "department"
	searchKeyProjects   = "projects"
	searchKeyReviewDate = "reviewDate"
)

// EmployeeProfileHandler は EmployeeProfileService の gRPC 実装です。
type EmployeeProfileHandler struct {
	svc employee.UseCase
}

// NewEmployeeProfileHandler は EmployeeProfileHandler を生成します。
func NewEmployeeProfileHandler(svc employee.UseCase) *EmployeeProfileHandler {
	return &EmployeeProfileHandler{svc: svc}
}

// GetEmployeeProfile は ID を指定して社員プロフィールを返します。
func (h *EmployeeProfileHandler) GetEmployeeProfile(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req == nil {
		return nil, statusWithReason(codes.InvalidArgument, "request is required", ReasonBadRequest)
	}

	profile, err := h.svc.FetchProfile(ctx, employee.FetchProfileInput{ID: req.GetValue()})
	if err != nil {
		return nil, toStatusError(err)
	}

	out, err := toProfileStruct(profile)
	if err != nil {
		return nil, toStatusError(err)
	}
	return out, nil
}

// SearchEmployees は条件に一致する社員プロフィールの一覧を返します。
func (h *EmployeeProfileHandler) SearchEmployees(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	criteria, err := criteriaFromStruct(req)
	if err != nil {
		return nil, statusWithReason(codes.InvalidArgument, err.Error(), ReasonInvalidFilterCriteria)
	}

	profiles, err := h.svc.SearchProfiles(ctx, employee.SearchProfilesInput{Criteria: criteria})
	if err != nil {
		return nil, toStatusError(err)
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(profiles))}
	for _, p := range profiles {
		s, err := toProfileStruct(p)
		if err != nil {
			return nil, toStatusError(err)
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return list, nil
}

func criteriaFromStruct(req *structpb.Struct) (employee.Criteria, error) {
	fields := req.GetFields()

	departments, err := stringListField(fields, searchKeyDepartment)
	if err != nil {
		return employee.Criteria{}, err
	}

	projects, err := stringListField(fields, searchKeyProjects)
	if err != nil {
		return employee.Criteria{}, err
	}

	reviewDate, err := stringField(fields, searchKeyReviewDate)
	if err != nil {
		return employee.Criteria{}, err
	}

	return employee.Criteria{
		Departments: departments,
		Projects:    projects,
		ReviewDate:  reviewDate,
	}, nil
}

func stringListField(fields map[string]*structpb.Value, key string) ([]string, error) {
	v, ok := fields[key]
	if !ok || isNull(v) {
		return nil, nil
	}

	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list of strings", key)
	}

	values := list.ListValue.GetValues()
	out := make([]string, 0, len(values))
	for i, item := range values {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected a string", key, i)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}

func stringField(fields map[string]*structpb.Value, key string) (string, error) {
	v, ok := fields[key]
	if !ok || isNull(v) {
		return "", nil
	}

	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s: expected a string", key)
	}
	return s.StringValue, nil
}

func isNull(v *structpb.Value) bool {
	if v == nil || v.GetKind() == nil {
		return true
	}
	_, ok := v.GetKind().(*structpb.Value_NullValue)
	return ok
}

func toProfileStruct(p *employee.Profile) (*structpb.Struct, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("handler: marshal profile: %w", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, fmt.Errorf("handler: convert profile: %w", err)
	}
	return out, nil
}
