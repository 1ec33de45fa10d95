package gateway

import (
	"context"
	"net/url"

	"github.com/fieldside/tourney-admin/internal/domain/fan"
)

// FanPayload is the fan form draft; scalar fields only, so it travels as JSON.
type FanPayload struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	TeamID          string   `json:"team"`
	JoinDate        string   `json:"joinDate"`
	MembershipLevel string   `json:"membershipLevel" validate:"required"`
	Interests       []string `json:"interests"`
	Bio             string   `json:"bio"`
}

type FansGateway struct {
	res resource[fan.Fan]
}

func NewFansGateway(transport *Transport) *FansGateway {
	return &FansGateway{res: newResource[fan.Fan](transport, "/fans", DefaultPageSize)}
}

// List filters by supported team when one is given.
func (g *FansGateway) List(ctx context.Context, teamID string, page int) (Page[fan.Fan], error) {
	filters := url.Values{}
	if teamID != "" {
		filters.Set("team", teamID)
	}
	return g.res.List(ctx, ListQuery{Page: page, Filters: filters})
}

func (g *FansGateway) Create(ctx context.Context, payload FanPayload) (fan.Fan, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return fan.Fan{}, err
	}
	return g.res.create(ctx, body)
}

func (g *FansGateway) Update(ctx context.Context, id string, payload FanPayload) (fan.Fan, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return fan.Fan{}, err
	}
	return g.res.update(ctx, id, body)
}

func (g *FansGateway) Delete(ctx context.Context, id string) error {
	return g.res.Delete(ctx, id)
}

func (g *FansGateway) PageSize() int {
	return g.res.PageSize()
}
