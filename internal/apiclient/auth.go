package apiclient

import (
	"context"
	"fmt"
)

type AuthClient struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReply struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a backend token. The backend also sets a
// session cookie, which the shared cookie jar carries on every later call.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required")
	}
	var reply loginReply
	if err := a.c.post(ctx, "/auth/login", &loginRequest{Email: email, Password: password}, &reply); err != nil {
		return "", err
	}
	return reply.Token, nil
}

// Logout invalidates the backend session. Local session teardown happens
// regardless of the outcome; an unreachable backend must not pin a user in.
func (a *AuthClient) Logout(ctx context.Context) error {
	return a.c.post(ctx, "/auth/logout", nil, nil)
}
