package model

import "errors"

// Sentinel error kinds shared by every stage of the estimation pipeline.
// Callers match them with errors.Is; wrapped errors carry the offending value.
var (
	// ErrUnknownCategory reports an industry, size or complexity outside the recognised set.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidInput reports a malformed numeric input such as a negative prev_issues.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDataLoad reports an unreadable or malformed reference data source.
	ErrDataLoad = errors.New("data load failure")
	// ErrStaffNotFound reports a staff id that is not part of the roster.
	ErrStaffNotFound = errors.New("staff not found")
)

// Error codes reported to callers and used as the metrics error kind.
const (
	CodeUnknownCategory = "unknown_category"
	CodeInvalidInput    = "invalid_input"
	CodeDataLoad        = "data_load"
	CodeNotFound        = "not_found"
	CodeInternal        = "internal"
)

// ErrorCode maps err onto a stable machine-readable code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownCategory):
		return CodeUnknownCategory
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrStaffNotFound):
		return CodeNotFound
	case errors.Is(err, ErrDataLoad):
		return CodeDataLoad
	}
	return CodeInternal
}
