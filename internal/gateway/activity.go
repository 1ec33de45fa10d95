package gateway

import (
	"context"

	"github.com/fieldside/tourney-admin/internal/domain/activity"
)

// ActivityGateway is read-only; audit entries are written server-side as a
// side effect of admin mutations.
type ActivityGateway struct {
	res resource[activity.Entry]
}

func NewActivityGateway(transport *Transport) *ActivityGateway {
	return &ActivityGateway{res: newResource[activity.Entry](transport, "/activity-logs", ActivityPageSize)}
}

func (g *ActivityGateway) List(ctx context.Context, page int) (Page[activity.Entry], error) {
	return g.res.List(ctx, ListQuery{Page: page})
}

func (g *ActivityGateway) PageSize() int {
	return g.res.PageSize()
}
