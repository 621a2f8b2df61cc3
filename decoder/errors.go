package decoder

import "github.com/pkg/errors"

var (
	// ErrInvalidInput is returned for malformed inputs: wrong row width,
	// out of range sequence lengths, NaN or +Inf scores, or top-path
	// counts below one.
	ErrInvalidInput = errors.New("decoder: invalid input")
	// ErrConfig is returned for unusable decoder configurations.
	ErrConfig = errors.New("decoder: invalid config")
	// ErrFinalized is returned by Step after TopPaths until Reset is called.
	ErrFinalized = errors.New("decoder: already finalized")
)
