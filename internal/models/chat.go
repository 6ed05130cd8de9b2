package models

import (
	"fmt"
	"time"
)

// Chat is an in-memory conversation. It only lives for the duration of a
// session, nothing is persisted to disk.
type Chat struct {
	Created  time.Time `json:"created,omitempty"`
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

// Append adds a message with the given role to the end of the chat.
func (c *Chat) Append(role, content string) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
}

func (c *Chat) LastOfRole(role string) (Message, int, error) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		msg := c.Messages[i]
		if msg.Role == role {
			return msg, i, nil
		}
	}
	return Message{}, -1, fmt.Errorf("failed to find any %v message", role)
}
