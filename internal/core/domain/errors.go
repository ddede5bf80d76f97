package domain

// ErrorKind classifies a rule violation. The kind, not the detail text, is the
// stable contract consumed by the HTTP adapter when picking a status code.
type ErrorKind int

const (
	KindInvalidInput ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a rule violation tagged with its kind.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Detail
}

// Is matches any *Error carrying the same kind, so callers can write
// errors.Is(err, domain.ErrConflict) without caring about the detail text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is dispatch.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

func InvalidInput(detail string) *Error {
	return &Error{Kind: KindInvalidInput, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

func Unauthorized(detail string) *Error {
	return &Error{Kind: KindUnauthorized, Detail: detail}
}
