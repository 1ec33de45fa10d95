package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/fieldside/tourney-admin/internal/domain/user"
	"github.com/fieldside/tourney-admin/internal/gateway"
	"github.com/fieldside/tourney-admin/internal/platform/logging"
)

// Authenticator is the slice of the auth gateway the store needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, user.Identity, error)
	Register(ctx context.Context, name, email, password, role string) (string, user.Identity, error)
}

// LoginStatus is the display-ready outcome of a login attempt. The store
// never lets an error escape its boundary; failures become messages.
type LoginStatus struct {
	OK      bool
	Message string
}

// Store owns the session: the current identity in memory for the process
// lifetime, and the opaque token behind TokenStorage. Only the token
// survives a restart; identity stays nil until the next successful login.
type Store struct {
	mu       sync.Mutex
	auth     Authenticator
	tokens   TokenStorage
	logger   *logging.Logger
	token    string
	identity *user.Identity
}

func NewStore(auth Authenticator, tokens TokenStorage, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}

	s := &Store{auth: auth, tokens: tokens, logger: logger}
	if token, err := tokens.Load(); err != nil {
		logger.Warn("load persisted token failed", "error", err)
	} else {
		s.token = token
	}

	return s
}

// SetAuthenticator wires the auth gateway in after the transport exists;
// the transport needs the store for tokens, and the auth gateway needs
// the transport.
func (s *Store) SetAuthenticator(auth Authenticator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = auth
}

func (s *Store) authenticator() Authenticator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth
}

func (s *Store) Login(ctx context.Context, email, password string) LoginStatus {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginStatus{Message: "Email and password are required"}
	}

	auth := s.authenticator()
	if auth == nil {
		return LoginStatus{Message: "Login failed. Please try again."}
	}

	token, identity, err := auth.Login(ctx, email, password)
	if err != nil {
		return LoginStatus{Message: loginMessage(err)}
	}

	s.install(token, identity)
	s.logger.InfoContext(ctx, "login succeeded", "email", identity.Email, "role", identity.Role)

	return LoginStatus{OK: true}
}

func (s *Store) Register(ctx context.Context, name, email, password, role string) LoginStatus {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return LoginStatus{Message: "Name, email and password are required"}
	}
	if role == "" {
		role = user.RoleAdmin
	}

	auth := s.authenticator()
	if auth == nil {
		return LoginStatus{Message: "Registration failed. Please try again."}
	}

	token, identity, err := auth.Register(ctx, name, email, password, role)
	if err != nil {
		return LoginStatus{Message: loginMessage(err)}
	}

	s.install(token, identity)

	return LoginStatus{OK: true}
}

// Logout clears both the persisted token and the in-memory identity,
// unconditionally.
func (s *Store) Logout() {
	s.clear()
	s.logger.Info("logged out")
}

// Invalidate is the 401 teardown shared with the transport. Clearing an
// already-cleared token is a no-op, so concurrent 401s are safe.
func (s *Store) Invalidate() {
	s.clear()
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns the in-memory operator, if a login happened in this
// process lifetime.
func (s *Store) Identity() (user.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return user.Identity{}, false
	}
	return *s.identity, true
}

// Authenticated reports whether a token is present. The identity may still
// be absent after a restart.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// install and clear persist under the same lock that guards the in-memory
// state, so a login racing a 401 teardown cannot leave the token file
// disagreeing with the store.

func (s *Store) install(token string, identity user.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.identity = &identity
	if err := s.tokens.Save(token); err != nil {
		s.logger.Warn("persist token failed", "error", err)
	}
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.identity = nil
	if err := s.tokens.Clear(); err != nil {
		s.logger.Warn("clear persisted token failed", "error", err)
	}
}

func loginMessage(err error) string {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Login failed. Please try again."
}
