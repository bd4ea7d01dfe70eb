package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status. Flows wrap
// ErrValidation with a user-correctable detail via fmt.Errorf("%w: ...").
var (
	// ErrValidation covers malformed or missing input.
	ErrValidation = errors.New("invalid input")
	// ErrEmailInUse and ErrUsernameTaken are uniqueness conflicts. The
	// repository raises them too, so races lost between pre-check and
	// insert surface the same way.
	ErrEmailInUse    = errors.New("this email is already in use")
	ErrUsernameTaken = errors.New("this username is not available")
	// ErrInvalidCredentials is deliberately identical for an unknown email
	// and a wrong password so responses do not leak account existence.
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	// ErrNotActivated is distinct from ErrInvalidCredentials: the caller
	// already proved credential ownership.
	ErrNotActivated = errors.New("account is not activated; check your email for the activation link")
	// ErrForbidden means the session's profile does not match the target.
	ErrForbidden = errors.New("not allowed to access this profile")
	// ErrCurrentPassword means re-verification failed during rotation.
	ErrCurrentPassword = errors.New("current password is incorrect")
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDispatch means the activation email collaborator reported fewer
	// successful deliveries than intended recipients.
	ErrDispatch = errors.New("unable to send activation email")
	// ErrForgery means the anti-forgery token was absent or did not match.
	ErrForgery = errors.New("anti-forgery token mismatch")
)
