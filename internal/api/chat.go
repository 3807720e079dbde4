// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"net/url"
)

// DefaultConversationID is the single conversation used by the current
// backend phase; multi-conversation support is a backend roadmap item.
const DefaultConversationID = "conv-001"

// Citation is a biblical reference attached to an assistant message.
type Citation struct {
	Reference string  `json:"reference"`
	Book      *string `json:"book,omitempty"`
	Chapter   *int    `json:"chapter,omitempty"`
	Verse     *string `json:"verse,omitempty"`
}

// ChatMessage is one message in a conversation.
type ChatMessage struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"` // "user" or "assistant"
	Content   string     `json:"content"`
	Citations []Citation `json:"citations"`
	CreatedAt string     `json:"created_at"`
}

// MessagesResponse is the conversation history.
type MessagesResponse struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []ChatMessage `json:"messages"`
}

// SendMessageResponse pairs the echoed user message with the assistant reply.
type SendMessageResponse struct {
	UserMessage      ChatMessage `json:"user_message"`
	AssistantMessage ChatMessage `json:"assistant_message"`
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

// Messages fetches the message history of a conversation.
func (c *Client) Messages(ctx context.Context, conversationID string) (*MessagesResponse, error) {
	var out MessagesResponse
	if err := c.get(ctx, "/chat/conversations/"+url.PathEscape(conversationID)+"/messages", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendMessage posts a user message and returns the assistant's reply.
func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (*SendMessageResponse, error) {
	var out SendMessageResponse
	path := "/chat/conversations/" + url.PathEscape(conversationID) + "/messages"
	if err := c.post(ctx, path, sendMessageRequest{Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
