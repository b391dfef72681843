package tax

import "errors"

var (
	ErrBuildQuery = errors.New("tax repository: failed to build query")
	ErrExecQuery  = errors.New("tax repository: failed to execute query")
	ErrScanRow    = errors.New("tax repository: failed to scan row")
)
