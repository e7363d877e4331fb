package policy

import (
	"context"

	"github.com/netaaura/netaaura/internal/models"
)

// PoliticianPolicy implements the profile workflow rules: any authenticated
// user may submit, only staff may approve or delete, and pending profiles are
// visible to staff alone. Even the creator gets a not-found.
type PoliticianPolicy struct{}

func NewPoliticianPolicy() PoliticianPolicy { return PoliticianPolicy{} }

func (PoliticianPolicy) Can(_ context.Context, actor models.User, action Action, resource any) bool {
	switch action {
	case ActionCreate:
		return actor.ID != 0
	case ActionApprove, ActionDelete:
		return actor.IsStaff
	case ActionView:
		p, ok := resource.(*models.Politician)
		if !ok {
			return false
		}
		return p.IsApproved || actor.IsStaff
	default:
		return false
	}
}
