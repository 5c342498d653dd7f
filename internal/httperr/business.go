package httperr

import "errors"

// Kind classifies a business error into the failure taxonomy the HTTP layer
// maps onto status codes.
type Kind int

const (
	KindValidation Kind = iota // malformed or out-of-policy input
	KindConflict               // slot taken, invalid state transition
	KindNotFound               // entity absent
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

func NotFoundErr(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}
