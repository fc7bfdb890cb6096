// Package actor resolves the identity of the operator driving the engine.
package actor

import (
	"os"
	"os/user"

	"github.com/example/prepline/internal/config"
)

// Identity is the resolved operator identity.
type Identity struct {
	Name string
}

// Current resolves the operator name. Resolution order: configured
// operator in ~/.prepline/config.json, then the OS username, then a
// fixed fallback so run rows always carry a creator.
func Current() Identity {
	if dir, err := config.DefaultConfigDir(); err == nil {
		if cfg, err := config.LoadConfig(dir); err == nil && cfg.Operator != "" {
			return Identity{Name: cfg.Operator}
		}
	}

	if u, err := user.Current(); err == nil && u.Username != "" {
		return Identity{Name: u.Username}
	}
	if name := os.Getenv("USER"); name != "" {
		return Identity{Name: name}
	}

	return Identity{Name: "unknown-operator"}
}
