package secondary

import "context"

// ActorProvider defines the secondary port for resolving the identity of
// the operator driving the engine, recorded as the creator of runs and
// engine-created items.
type ActorProvider interface {
	// CurrentActor returns the identity of the current operator.
	CurrentActor(ctx context.Context) (*Actor, error)
}

// Actor represents an operator identity as provided by the secondary port.
type Actor struct {
	Name string // Display name, e.g. "sous-chef" or an OS username
}
