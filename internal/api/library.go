// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/url"
)

// Library tabs accepted by GET /library.
const (
	LibraryTabFavorites = "favorites"
	LibraryTabHistory   = "history"
)

// LibraryItem is one saved post or chat in the personal library.
type LibraryItem struct {
	ID       string   `json:"id"`
	PostID   string   `json:"post_id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Type     string   `json:"type"` // "post" or "chat"
	SavedAt  string   `json:"saved_at"`
	Tags     []string `json:"tags"`
}

// LibraryResponse is the paged library listing.
type LibraryResponse struct {
	Items []LibraryItem `json:"items"`
	Total int           `json:"total"`
}

// FavoriteToggleResponse acknowledges a favorite add/remove.
type FavoriteToggleResponse struct {
	PostID      string `json:"post_id"`
	IsFavorited bool   `json:"is_favorited"`
	Message     string `json:"message"`
}

// Library fetches the personal library for the given tab.
func (c *Client) Library(ctx context.Context, tab string) (*LibraryResponse, error) {
	var lib LibraryResponse
	if err := c.get(ctx, "/library?tab="+url.QueryEscape(tab), &lib); err != nil {
		return nil, err
	}
	return &lib, nil
}

// AddFavorite marks a post as favorited.
func (c *Client) AddFavorite(ctx context.Context, postID string) (*FavoriteToggleResponse, error) {
	var out FavoriteToggleResponse
	if err := c.post(ctx, "/library/favorites/"+url.PathEscape(postID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveFavorite removes a post from favorites.
func (c *Client) RemoveFavorite(ctx context.Context, postID string) (*FavoriteToggleResponse, error) {
	var out FavoriteToggleResponse
	if err := c.del(ctx, "/library/favorites/"+url.PathEscape(postID), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
