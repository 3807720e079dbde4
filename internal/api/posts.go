// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/url"
)

// PostSummary is a feed card for a devotional post.
type PostSummary struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Reference    string   `json:"reference"`
	Category     string   `json:"category"`
	Date         string   `json:"date"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	IsNew        bool     `json:"is_new"`
	IsStarred    bool     `json:"is_starred"`
	Tags         []string `json:"tags"`
}

// PostKeyPoint is one highlighted takeaway of a post.
type PostKeyPoint struct {
	Text string `json:"text"`
}

// PostDetail is the full devotional post from GET /posts/{id}.
type PostDetail struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Reference            string         `json:"reference"`
	Category             string         `json:"category"`
	Date                 string         `json:"date"`
	ThumbnailURL         *string        `json:"thumbnail_url"`
	VerseContent         string         `json:"verse_content"`
	AISummary            string         `json:"ai_summary"`
	KeyPoints            []PostKeyPoint `json:"key_points"`
	Tags                 []string       `json:"tags"`
	DevotionalMeditation string         `json:"devotional_meditation"`
	DevotionalPrayer     string         `json:"devotional_prayer"`
	AudioURL             *string        `json:"audio_url"`
	AudioDuration        *string        `json:"audio_duration"`
}

// FeedResponse is the home feed: the post of the day plus recent posts.
type FeedResponse struct {
	PostOfDay   PostSummary   `json:"post_of_day"`
	RecentPosts []PostSummary `json:"recent_posts"`
}

// Feed fetches the devotional feed.
func (c *Client) Feed(ctx context.Context) (*FeedResponse, error) {
	var feed FeedResponse
	if err := c.get(ctx, "/posts/feed", &feed); err != nil {
		return nil, err
	}
	return &feed, nil
}

// Post fetches a single devotional post by id.
func (c *Client) Post(ctx context.Context, id string) (*PostDetail, error) {
	var post PostDetail
	if err := c.get(ctx, "/posts/"+url.PathEscape(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}
