package chain

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/baalimago/chatbox/internal/providers"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

// Service hands out chains cached per provider and model. Chains are
// constructed lazily on first use and reused for the lifetime of the
// process. Failed constructions are not cached, so a misconfigured
// provider is retried on the next invocation.
type Service struct {
	mu     sync.Mutex
	chains map[string]*Chain

	newCompleter func(p providers.Provider, model string) (providers.Completer, error)
}

func NewService() *Service {
	return &Service{
		chains:       make(map[string]*Chain),
		newCompleter: providers.New,
	}
}

// Chain returns the cached chain for the provider and model, constructing
// it first if needed. An empty model selects the provider's default.
func (s *Service) Chain(p providers.Provider, model string) (*Chain, error) {
	key := cacheKey(p, model)
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.chains[key]; ok {
		return c, nil
	}
	completer, err := s.newCompleter(p, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create completer: %w", err)
	}
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.Noticef("created chain: '%v'\n", key)
	}
	c := New(NewTemplate(""), completer)
	s.chains[key] = c
	return c, nil
}

// Invoke routes the question through the chain for the given provider and
// model. Any failure, construction or completion alike, is decorated with
// the provider's troubleshooting hints.
func (s *Service) Invoke(ctx context.Context, question string, p providers.Provider, model string) (string, error) {
	c, err := s.Chain(p, model)
	if err != nil {
		return "", providers.Wrap(p, err)
	}
	resp, err := c.Invoke(ctx, question)
	if err != nil {
		return "", providers.Wrap(p, err)
	}
	return resp, nil
}

func cacheKey(p providers.Provider, model string) string {
	if model == "" {
		model = "default"
	}
	return fmt.Sprintf("%v_%v", p, model)
}
