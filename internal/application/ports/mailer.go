package ports

import "context"

// ActivationMail carries what the activation email needs.
type ActivationMail struct {
	Email    string
	Username string
	Token    string
}

// ActivationMailer dispatches the account activation email. Implementations
// return an error wrapping ErrDispatch when fewer recipients were accepted
// than intended; the signup flow treats that as terminal and never retries.
type ActivationMailer interface {
	SendActivation(ctx context.Context, mail ActivationMail) error
}
