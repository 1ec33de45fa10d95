package gateway

import (
	"context"

	"github.com/fieldside/tourney-admin/internal/domain/user"
)

// UserPayload manages admin accounts. Password is required on create and
// optional on update (blank leaves it unchanged).
type UserPayload struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role" validate:"required"`
}

type UsersGateway struct {
	res resource[user.Account]
}

func NewUsersGateway(transport *Transport) *UsersGateway {
	return &UsersGateway{res: newResource[user.Account](transport, "/users", DefaultPageSize)}
}

func (g *UsersGateway) List(ctx context.Context, page int) (Page[user.Account], error) {
	return g.res.List(ctx, ListQuery{Page: page})
}

func (g *UsersGateway) Create(ctx context.Context, payload UserPayload) (user.Account, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return user.Account{}, err
	}
	return g.res.create(ctx, body)
}

func (g *UsersGateway) Update(ctx context.Context, id string, payload UserPayload) (user.Account, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return user.Account{}, err
	}
	return g.res.update(ctx, id, body)
}

func (g *UsersGateway) Delete(ctx context.Context, id string) error {
	return g.res.Delete(ctx, id)
}

func (g *UsersGateway) PageSize() int {
	return g.res.PageSize()
}
