package services

import "errors"

// Kind classifies a service error for the caller. It never changes how the
// core behaves, only how the routing layer reports the failure.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

var (
	ErrUserNotFound       = newError(KindNotFound, "user not found")
	ErrPostNotFound       = newError(KindNotFound, "post not found")
	ErrAttachmentNotFound = newError(KindNotFound, "attachment not found")
	ErrDuplicateUsername  = newError(KindConflict, "username already exists")
	ErrAlreadyFriends     = newError(KindConflict, "already friends with this user")
	ErrSelfFriendship     = newError(KindConflict, "cannot be friends with yourself")
	ErrUnauthenticated    = newError(KindUnauthorized, "missing or invalid token")
	ErrBadCredential      = newError(KindUnauthorized, "wrong password")
	ErrForbidden          = newError(KindForbidden, "cannot access another user's resources")
	ErrInvalidInput       = newError(KindValidation, "invalid input")
)

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
