package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/beka-birhanu/circuit-maze/interfaces/general"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/google/uuid"
)

const tokenLifetime = 24 * time.Hour

var _ i.Authenticator = &Auth{}

// Auth registers players and signs them in.
type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
	logger    general.Logger
}

// NewAuthService creates an Auth service.
func NewAuthService(ur i.UserRepo, t i.Tokenizer, logger general.Logger) (*Auth, error) {
	if ur == nil || t == nil || logger == nil {
		return nil, errors.New("auth service requires a user repo, a tokenizer and a logger")
	}
	return &Auth{
		userRepo:  ur,
		tokenizer: t,
		logger:    logger,
	}, nil
}

// Register creates a new player account.
func (a *Auth) Register(ctx context.Context, username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	if _, err := a.userRepo.ByUsername(ctx, username); err == nil {
		return dmn.ErrUsernameConflict
	} else if !errors.Is(err, dmn.ErrUserNotFound) {
		a.logger.Error(fmt.Sprintf("looking up user %s: %s", username, err))
		return err
	}

	if err := a.userRepo.Save(ctx, user); err != nil {
		a.logger.Error(fmt.Sprintf("saving user %s: %s", username, err))
		return err
	}

	a.logger.Info(fmt.Sprintf("registered user %s", user.ID))
	return nil
}

// SignIn checks the credentials and returns the user with a signed token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", dmn.ErrInvalidCredential
	}

	if !user.VerifyPassword(password) {
		return nil, "", dmn.ErrInvalidCredential
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID.String(),
		"username": user.Username,
	}, tokenLifetime)
	if err != nil {
		a.logger.Error(fmt.Sprintf("generating token for %s: %s", user.ID, err))
		return nil, "", err
	}

	return user, token, nil
}
