package chain

import (
	"context"

	"github.com/baalimago/chatbox/internal/providers"
)

// Chain binds a prompt template to a completer. Invoking it templates the
// question and returns the provider's full reply.
type Chain struct {
	tmpl      Template
	completer providers.Completer
}

func New(tmpl Template, completer providers.Completer) *Chain {
	return &Chain{tmpl: tmpl, completer: completer}
}

// Invoke templates the question and returns the completer's full reply.
func (c *Chain) Invoke(ctx context.Context, question string) (string, error) {
	return c.completer.Complete(ctx, c.tmpl.Fill(question))
}
