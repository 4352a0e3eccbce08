package c2pa

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Precondition violations (MissingSigner, StorageOptions, Format,
// InvalidInput) are raised before any engine call and carry no cause.
// Signing, Ingredient, and Claim wrap an underlying failure once at the
// orchestration boundary; use errors.As/Unwrap to reach the cause.
type Kind string

const (
	// KindMissingSigner: no signer supplied for the call and none
	// configured on the client.
	KindMissingSigner Kind = "MissingSigner"

	// KindStorageOptions: signing was requested with neither embedding nor
	// a remote manifest URL.
	KindStorageOptions Kind = "StorageOptions"

	// KindFormat: in-memory signing was requested for a MIME type outside
	// the allowed set.
	KindFormat Kind = "Format"

	// KindInvalidInput: a malformed request (missing manifest builder,
	// missing output path for file signing, unknown asset variant).
	KindInvalidInput Kind = "InvalidInput"

	// KindSigning: the engine failed during a signing dispatch.
	KindSigning Kind = "Signing"

	// KindIngredient: ingredient creation failed (hashing, engine call, or
	// thumbnail generation).
	KindIngredient Kind = "Ingredient"

	// KindClaim: the engine failed during claim signing.
	KindClaim Kind = "Claim"
)

// Error is the orchestration error type. Message is for humans; branch on
// Kind instead of matching strings.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newError(kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, cause error) error {
	if cause == nil {
		return newError(kind, msg)
	}
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
