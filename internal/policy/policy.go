// Package policy is the central authorization checkpoint. A Gate holds one
// Policy per resource type; handlers ask the gate instead of checking flags
// inline, so the staff-only rules live in exactly one place.
package policy

import (
	"context"
	"errors"

	"github.com/netaaura/netaaura/internal/models"
)

// Action describes the kind of operation an actor wants to perform.
type Action string

const (
	ActionView    Action = "view"
	ActionCreate  Action = "create"
	ActionApprove Action = "approve"
	ActionDelete  Action = "delete"
)

// Sentinel errors returned by Gate.Authorize.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)

// Policy defines the authorization rules for one resource type.
type Policy interface {
	Can(ctx context.Context, actor models.User, action Action, resource any) bool
}

// Gate registers policies by resource type name.
type Gate struct {
	policies map[string]Policy
}

func NewGate() *Gate {
	return &Gate{policies: make(map[string]Policy)}
}

// Register adds a policy for a given resource type (e.g. "politician").
// Overwrites any existing policy for that type.
func (g *Gate) Register(resourceType string, p Policy) {
	g.policies[resourceType] = p
}

// Authorize returns nil when the actor may perform the action. Anonymous
// requests arrive as a zero-ID User; the policy decides what they may see.
func (g *Gate) Authorize(ctx context.Context, actor models.User, action Action, resourceType string, resource any) error {
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, actor, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(ctx context.Context, actor models.User, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, actor, action, resourceType, resource) == nil
}
