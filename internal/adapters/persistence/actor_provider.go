package persistence

import (
	"context"

	"github.com/example/prepline/internal/actor"
	"github.com/example/prepline/internal/ports/secondary"
)

// ActorProviderAdapter wraps the actor package to implement ActorProvider.
type ActorProviderAdapter struct{}

// NewActorProvider creates a new ActorProviderAdapter.
func NewActorProvider() *ActorProviderAdapter {
	return &ActorProviderAdapter{}
}

// CurrentActor returns the identity of the current operator.
func (p *ActorProviderAdapter) CurrentActor(ctx context.Context) (*secondary.Actor, error) {
	identity := actor.Current()
	return &secondary.Actor{Name: identity.Name}, nil
}

// Ensure ActorProviderAdapter implements the interface
var _ secondary.ActorProvider = (*ActorProviderAdapter)(nil)
