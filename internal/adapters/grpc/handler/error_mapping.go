package handler

import (
	"context"
	"errors"

	"github.com/ogurasousui/codex-grpc-employee-profile/internal/core/employee"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const errorDomain = "employee-profile"

// ErrorInfo.Reason に設定する理由コードです。
const (
	ReasonBadRequest            = "BAD_REQUEST"
	ReasonInvalidFilterCriteria = "INVALID_FILTER_CRITERIA"
	ReasonEmployeeNotFound      = "EMPLOYEE_NOT_FOUND"
	ReasonNoEmployeesFound      = "NO_EMPLOYEES_FOUND"
	ReasonProfileIncomplete     = "PROFILE_INCOMPLETE"
	ReasonInternal              = "INTERNAL"
)

func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, employee.ErrMalformedFilterValue):
		return statusWithReason(codes.InvalidArgument, err.Error(), ReasonInvalidFilterCriteria)
	case errors.Is(err, employee.ErrInvalidArgument):
		return statusWithReason(codes.InvalidArgument, err.Error(), ReasonBadRequest)
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return statusWithReason(codes.NotFound, err.Error(), ReasonEmployeeNotFound)
	case errors.Is(err, employee.ErrNoMatches):
		return statusWithReason(codes.NotFound, err.Error(), ReasonNoEmployeesFound)
	case errors.Is(err, employee.ErrMappingDegraded):
		return statusWithReason(codes.DataLoss, "employee profile is incomplete", ReasonProfileIncomplete)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return statusWithReason(codes.Internal, "internal error", ReasonInternal)
	}
}

func statusWithReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ReasonOf は gRPC エラーに含まれる ErrorInfo の理由コードを返します。
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
