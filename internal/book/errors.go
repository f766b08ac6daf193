package book

import "errors"

// Sentinel errors returned by the address book core. Callers match them with
// errors.Is; the wrapped message carries the specific rule that was violated.
var (
	ErrInvalidPhoneFormat = errors.New("invalid phone format")
	ErrInvalidDateFormat  = errors.New("invalid date format")
	ErrInvalidName        = errors.New("invalid name")
	ErrDuplicateName      = errors.New("duplicate name")
	ErrNotFound           = errors.New("contact not found")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrNotANumber         = errors.New("not a number")
	ErrEmptyPhoneList     = errors.New("phone list is empty")
	ErrNoBirthdayKnown    = errors.New("no birthday known")
	ErrInvalidPageSize    = errors.New("invalid page size")

	// ErrNoMoreRecords signals the end of a Pager. It is a normal termination
	// condition, not a failure.
	ErrNoMoreRecords = errors.New("no more records")
)
