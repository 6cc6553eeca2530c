package game

import (
	"fmt"

	"github.com/alteredfree/altered-engine-go/internal/game/card"
)

// CardRegistry resolves definition IDs. Static and read-only from the
// engine's perspective; loading card content is an external concern.
type CardRegistry interface {
	GetCardDefinition(id string) (*card.Definition, error)
}

// ErrDefinitionNotFound wraps registry lookup misses.
var ErrDefinitionNotFound = fmt.Errorf("card definition not found")

// StaticRegistry is a map-backed CardRegistry.
type StaticRegistry struct {
	defs map[string]*card.Definition
}

// NewStaticRegistry builds a registry from definitions, validating each.
func NewStaticRegistry(defs ...*card.Definition) (*StaticRegistry, error) {
	reg := &StaticRegistry{defs: make(map[string]*card.Definition, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("registering definition: %w", err)
		}
		if _, dup := reg.defs[def.ID]; dup {
			return nil, fmt.Errorf("duplicate definition id %s", def.ID)
		}
		reg.defs[def.ID] = def
	}
	return reg, nil
}

// GetCardDefinition looks up a definition by ID.
func (r *StaticRegistry) GetCardDefinition(id string) (*card.Definition, error) {
	def, ok := r.defs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefinitionNotFound, id)
	}
	return def, nil
}
