package api

import (
	"context"
	"fmt"

	"github.com/TerminusTerminal/invest-desk/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Name string `json:"name"`
	} `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token.
func Login(ctx context.Context, c Requester, email, password string) (session.Session, error) {
	var resp loginResponse
	if err := c.Post(ctx, "/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return session.Session{}, fmt.Errorf("login failed: %w", err)
	}
	if resp.Token == "" {
		return session.Session{}, fmt.Errorf("login response missing token")
	}

	return session.Session{Token: resp.Token, UserName: resp.User.Name}, nil
}

// Register creates a new account. The user still logs in afterwards.
func Register(ctx context.Context, c Requester, name, email, password string) error {
	if err := c.Post(ctx, "/register", registerRequest{Name: name, Email: email, Password: password}, nil); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return nil
}
