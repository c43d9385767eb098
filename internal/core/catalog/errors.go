package catalog

import "errors"

var (
	// ErrUpstreamFailure は参照データの取得に失敗した場合に返却されます。
	ErrUpstreamFailure = errors.New("catalog: upstream failure")
)
