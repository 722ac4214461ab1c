package upstream

import "errors"

var (
	ErrTransport          = errors.New("transport error")
	ErrDecode             = errors.New("decode error")
	ErrMissingOrWrongType = errors.New("missing or wrong type")
	ErrNoDailyPeriod      = errors.New("no daily portfolio period")
	ErrEmptyHistory       = errors.New("empty history")
	ErrNumericParse       = errors.New("numeric parse error")
	ErrInvalidHex         = errors.New("invalid hex")
)

// FieldError ties one of the sentinel errors above to the response field
// that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	if e == nil || e.Err == nil {
		return "field error"
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

// Field wraps kind with the name of the offending field.
func Field(name string, kind error) error {
	return &FieldError{Field: name, Err: kind}
}
