package employee

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument      = errors.New("employee: invalid argument")
	ErrInvalidEmployeeID    = fmt.Errorf("%w: employee id must be a positive integer", ErrInvalidArgument)
	ErrMalformedFilterValue = fmt.Errorf("%w: malformed filter value", ErrInvalidArgument)
	ErrEmployeeNotFound     = errors.New("employee: not found")
	ErrNoMatches            = errors.New("employee: no employees match the criteria")
	ErrUpstreamFailure      = errors.New("employee: upstream failure")
	ErrMappingDegraded      = errors.New("employee: profile mapping degraded")
)
