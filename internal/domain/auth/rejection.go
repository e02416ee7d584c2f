package auth

import "fmt"

// RejectionReason tags why a bearer token was refused. The reason is kept for
// logging and tests; callers outside the service only see ErrUnauthorized.
type RejectionReason int

const (
	// RejectMalformed covers tokens that do not parse or carry unusable claims.
	RejectMalformed RejectionReason = iota + 1
	// RejectBadSignature covers signature and algorithm mismatches.
	RejectBadSignature
	// RejectExpired covers tokens whose exp is not in the future.
	RejectExpired
	// RejectSubjectMissing covers a valid token whose subject no longer resolves.
	RejectSubjectMissing
)

func (r RejectionReason) String() string {
	switch r {
	case RejectMalformed:
		return "malformed"
	case RejectBadSignature:
		return "bad_signature"
	case RejectExpired:
		return "expired"
	case RejectSubjectMissing:
		return "subject_missing"
	default:
		return "unknown"
	}
}

// RejectionError carries the internal reason for a token rejection.
type RejectionError struct {
	Reason RejectionReason
	Err    error
}

// Reject builds a RejectionError with the given reason and optional cause.
func Reject(reason RejectionReason, cause error) *RejectionError {
	return &RejectionError{Reason: reason, Err: cause}
}

func (e *RejectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %v", ErrUnauthorized.Error(), e.Reason, e.Err)
	}
	return fmt.Sprintf("%s (%s)", ErrUnauthorized.Error(), e.Reason)
}

// Is makes every rejection match ErrUnauthorized.
func (e *RejectionError) Is(target error) bool {
	return target == ErrUnauthorized
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}
