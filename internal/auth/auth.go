// Package auth verifies submitted credentials against stored users and
// classifies sign-in failures into a small error taxonomy.
package auth

import "fmt"

// Category classifies an authentication failure
type Category string

const (
	// CategoryCredentials covers failures caused by the submitted
	// credentials: malformed input, unknown email, wrong password.
	CategoryCredentials Category = "credentials"

	// CategoryProvider covers failures inside the identity provider while
	// resolving the user.
	CategoryProvider Category = "provider"

	// CategorySession covers failures while establishing the signed-in
	// session after successful verification.
	CategorySession Category = "session"
)

// Error is an authentication failure with a recognized category. Errors
// outside this taxonomy are returned as-is and propagate to the caller.
type Error struct {
	Category Category
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s failure: %v", e.Category, e.Err)
	}
	return fmt.Sprintf("auth %s failure", e.Category)
}

func (e *Error) Unwrap() error {
	return e.Err
}
