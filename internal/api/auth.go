// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import "context"

// TokenPair is the credential pair issued on login, signup and refresh.
// Access and refresh tokens are always issued and rotated together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RefreshRequest carries the refresh token to POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse is the generic acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// Login exchanges email/password for a credential pair.
// The pair is returned, not stored; credential lifecycle belongs to the
// session manager.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var pair TokenPair
	if err := c.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Signup registers a new account and returns its first credential pair.
func (c *Client) Signup(ctx context.Context, name, email, password string) (*TokenPair, error) {
	var pair TokenPair
	if err := c.post(ctx, "/auth/signup", signupRequest{Name: name, Email: email, Password: password}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout notifies the backend that the current session is ending.
// Callers treat failures as best-effort; see session.Manager.Logout.
func (c *Client) Logout(ctx context.Context) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/auth/logout", nil, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ForgotPassword requests a password recovery email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var msg MessageResponse
	if err := c.post(ctx, "/auth/forgot-password", forgotPasswordRequest{Email: email}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
