package api

import (
	"context"
	"fmt"
)

// AuthScope provides session management operations. A successful login
// stores the session cookie in the client's cookie jar; every
// subsequent request carries it automatically.
type AuthScope struct {
	client *Client
}

type loginRQ struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRQ struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with the server and returns the signed-in user.
func (a *AuthScope) Login(ctx context.Context, username, password string) (*User, error) {
	u := fmt.Sprintf("%s/api/auth/login", a.client.baseURL)
	var user User
	body := loginRQ{Username: username, Password: password}
	if err := a.client.doJSON(ctx, "POST", u, "login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the server-side session and drops the session cookie.
func (a *AuthScope) Logout(ctx context.Context) error {
	u := fmt.Sprintf("%s/api/auth/logout", a.client.baseURL)
	return a.client.doJSON(ctx, "POST", u, "logout", nil, nil)
}

// Register creates a new account and returns the new user. The server
// does not sign the user in; follow with Login.
func (a *AuthScope) Register(ctx context.Context, username, email, password string) (*User, error) {
	u := fmt.Sprintf("%s/api/auth/register", a.client.baseURL)
	var user User
	body := registerRQ{Username: username, Email: email, Password: password}
	if err := a.client.doJSON(ctx, "POST", u, "register", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the profile behind the current session. An expired or
// missing session yields an error for which IsUnauthorized is true.
func (a *AuthScope) Me(ctx context.Context) (*User, error) {
	u := fmt.Sprintf("%s/api/auth/me", a.client.baseURL)
	var user User
	if err := a.client.doJSON(ctx, "GET", u, "get current user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
