package gateway

import (
	"context"

	"github.com/fieldside/tourney-admin/internal/domain/team"
)

// TeamPayload is the team form draft. Teams may carry a logo image, so
// create/update always go out as multipart.
type TeamPayload struct {
	Name        string `validate:"required"`
	Description string
	City        string `validate:"required"`
	Coach       string `validate:"required"`
	Logo        *FileAttachment
}

func (p TeamPayload) FormFields() map[string]string {
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"city":        p.City,
		"coach":       p.Coach,
	}
}

func (p TeamPayload) FormFile() (string, *FileAttachment) {
	return "logo", p.Logo
}

type TeamsGateway struct {
	res resource[team.Team]
}

func NewTeamsGateway(transport *Transport) *TeamsGateway {
	return &TeamsGateway{res: newResource[team.Team](transport, "/teams", DefaultPageSize)}
}

func (g *TeamsGateway) List(ctx context.Context, q ListQuery) (Page[team.Team], error) {
	return g.res.List(ctx, q)
}

func (g *TeamsGateway) Create(ctx context.Context, payload TeamPayload) (team.Team, error) {
	body, err := encodeMultipart(payload)
	if err != nil {
		return team.Team{}, err
	}
	return g.res.create(ctx, body)
}

func (g *TeamsGateway) Update(ctx context.Context, id string, payload TeamPayload) (team.Team, error) {
	body, err := encodeMultipart(payload)
	if err != nil {
		return team.Team{}, err
	}
	return g.res.update(ctx, id, body)
}

func (g *TeamsGateway) Delete(ctx context.Context, id string) error {
	return g.res.Delete(ctx, id)
}

func (g *TeamsGateway) PageSize() int {
	return g.res.PageSize()
}
