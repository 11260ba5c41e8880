package ports

import "context"

type AuthService interface {
	// Authenticate checks HTTP Basic credentials of the clinic administrator.
	Authenticate(ctx context.Context, username, password string) bool
}
