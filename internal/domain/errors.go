package domain

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindInvalidReference
	KindForbidden
	KindConflict
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidReference:
		return "invalid_reference"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindInvalidInput:
		return "invalid_input"
	}
	return "unknown"
}

// Error 是业务错误；Msg 直接返回给调用方
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Is 按 Kind 匹配，errors.Is(err, ErrNotFound) 对任意 NotFound 成立
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound         = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrInvalidReference = &Error{Kind: KindInvalidReference, Msg: "invalid reference"}
	ErrForbidden        = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrConflict         = &Error{Kind: KindConflict, Msg: "conflict"}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput, Msg: "invalid input"}
)

func NotFound(msg string) error         { return &Error{Kind: KindNotFound, Msg: msg} }
func InvalidReference(msg string) error { return &Error{Kind: KindInvalidReference, Msg: msg} }
func Forbidden(msg string) error        { return &Error{Kind: KindForbidden, Msg: msg} }
func Conflict(msg string) error         { return &Error{Kind: KindConflict, Msg: msg} }
func InvalidInput(msg string) error     { return &Error{Kind: KindInvalidInput, Msg: msg} }
