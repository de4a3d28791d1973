package i

import (
	"context"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
)

type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (*dmn.User, string, error)
}
