package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fieldside/tourney-admin/internal/domain/user"
)

// AuthGateway covers /login and /register. Both calls are anonymous: a 401
// here is bad credentials, not an expired session.
type AuthGateway struct {
	transport *Transport
}

func NewAuthGateway(transport *Transport) *AuthGateway {
	return &AuthGateway{transport: transport}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type credentialsResponse struct {
	Token string        `json:"token"`
	Admin user.Identity `json:"admin"`
}

func (g *AuthGateway) Login(ctx context.Context, email, password string) (string, user.Identity, error) {
	body, err := encodeJSON(loginRequest{Email: email, Password: password})
	if err != nil {
		return "", user.Identity{}, err
	}

	var out credentialsResponse
	if err := g.transport.do(ctx, call{method: http.MethodPost, path: "/login", body: body, anonymous: true}, &out); err != nil {
		return "", user.Identity{}, err
	}
	if out.Token == "" {
		return "", user.Identity{}, fmt.Errorf("login response is missing a token")
	}

	return out.Token, out.Admin, nil
}

func (g *AuthGateway) Register(ctx context.Context, name, email, password, role string) (string, user.Identity, error) {
	body, err := encodeJSON(registerRequest{Name: name, Email: email, Password: password, Role: role})
	if err != nil {
		return "", user.Identity{}, err
	}

	var out credentialsResponse
	if err := g.transport.do(ctx, call{method: http.MethodPost, path: "/register", body: body, anonymous: true}, &out); err != nil {
		return "", user.Identity{}, err
	}
	if out.Token == "" {
		return "", user.Identity{}, fmt.Errorf("register response is missing a token")
	}

	return out.Token, out.Admin, nil
}
