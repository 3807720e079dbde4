// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import "context"

// UserProfile is the authenticated user's account data from GET /users/me.
type UserProfile struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	AvatarURL       *string `json:"avatar_url"`
	MembershipSince *string `json:"membership_since"`
	Plan            string  `json:"plan"`
}

// UserSettings are the account preferences from GET /users/me/settings.
type UserSettings struct {
	Theme             string `json:"theme"`
	AIInsights        bool   `json:"ai_insights"`
	BiblicalReminders bool   `json:"biblical_reminders"`
	RAGMemory         bool   `json:"rag_memory"`
}

// UpdateProfileRequest carries partial profile updates; nil fields are omitted.
type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// UpdateSettingsRequest carries partial settings updates; nil fields are omitted.
type UpdateSettingsRequest struct {
	Theme             *string `json:"theme,omitempty"`
	AIInsights        *bool   `json:"ai_insights,omitempty"`
	BiblicalReminders *bool   `json:"biblical_reminders,omitempty"`
	RAGMemory         *bool   `json:"rag_memory,omitempty"`
}

// Me fetches the current user's profile.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, "/users/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateMe applies a partial profile update and returns the updated profile.
func (c *Client) UpdateMe(ctx context.Context, req UpdateProfileRequest) (*UserProfile, error) {
	var profile UserProfile
	if err := c.patch(ctx, "/users/me", req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Settings fetches the current user's preferences.
func (c *Client) Settings(ctx context.Context) (*UserSettings, error) {
	var settings UserSettings
	if err := c.get(ctx, "/users/me/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings applies a partial settings update and returns the result.
func (c *Client) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*UserSettings, error) {
	var settings UserSettings
	if err := c.patch(ctx, "/users/me/settings", req, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
