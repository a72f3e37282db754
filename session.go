package shoptaboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// SessionState is the lifecycle state of the authenticated-user session.
type SessionState string

const (
	// StateUninitialized means Bootstrap has not been called yet.
	StateUninitialized SessionState = "uninitialized"
	// StateBootstrapping means a bootstrap is in progress.
	StateBootstrapping SessionState = "bootstrapping"
	// StateAnonymous means no user is signed in.
	StateAnonymous SessionState = "anonymous"
	// StateAuthenticated means a user is signed in.
	StateAuthenticated SessionState = "authenticated"
)

// SessionService owns the authenticated-user lifecycle: bootstrap on start,
// sign-up, sign-in, sign-out, and the silent token refresh chain. Exactly one
// session exists per Client.
type SessionService struct {
	client *Client

	mu      sync.RWMutex
	state   SessionState
	user    *User
	lastErr error
}

// SignUpRequest is the input for SignUp. Names are compared after trimming
// surrounding whitespace.
type SignUpRequest struct {
	Firstname string `json:"firstname" validate:"min=2"`
	Lastname  string `json:"lastname" validate:"min=2"`
	Email     string `json:"email" validate:"required,contains=@"`
	Password  string `json:"password" validate:"min=8"`
}

// SignInRequest is the input for SignIn.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// State returns the current session state.
func (s *SessionService) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser returns a copy of the signed-in user, or nil when anonymous.
func (s *SessionService) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsAuthenticated reports whether a user is signed in.
func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Err returns the last operation error, or nil. The slot is cleared at the
// start of every operation and by ClearErr.
func (s *SessionService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearErr clears the retained operation error.
func (s *SessionService) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *SessionService) begin(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
	if state != "" {
		s.state = state
	}
}

func (s *SessionService) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	return err
}

func (s *SessionService) setAuthenticated(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.state = StateAuthenticated
}

func (s *SessionService) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.state = StateAnonymous
}

// Bootstrap establishes the session from stored tokens on application start.
//
// With no stored access token it settles Anonymous and returns nil. With a
// stored token it asks the backend for the current user; if that call fails
// it attempts one silent refresh with the stored refresh token and retries.
// When the whole chain fails the token store is cleared, the session settles
// Anonymous, and ErrSessionExpired is returned so callers can distinguish a
// lapsed session from a fresh install.
func (s *SessionService) Bootstrap(ctx context.Context) error {
	s.begin(StateBootstrapping)

	access, ok := s.client.tokens.AccessToken()
	if !ok {
		s.setAnonymous()
		return nil
	}

	user, err := s.fetchCurrentUser(ctx, access)
	if err == nil {
		s.setAuthenticated(user)
		return nil
	}

	// Access token rejected: silent refresh, then retry once.
	refresh, ok := s.client.tokens.RefreshToken()
	if !ok {
		return s.expire()
	}

	tokens, err := s.refreshTokens(ctx, refresh)
	if err != nil {
		return s.expire()
	}
	if err := s.client.tokens.Save(tokens); err != nil {
		return s.expire()
	}

	user, err = s.fetchCurrentUser(ctx, tokens.AccessToken)
	if err != nil {
		return s.expire()
	}

	s.setAuthenticated(user)
	return nil
}

// expire collapses any refresh-chain failure into a full token clear and a
// single session-expired error.
func (s *SessionService) expire() error {
	_ = s.client.tokens.Clear()
	s.setAnonymous()
	return s.fail(ErrSessionExpired)
}

// SignUp registers a new account and signs it in. Validation failures are
// returned before any network call. Tokens are persisted only after the
// sign-up call itself succeeds; a downstream failure surfaces the error and
// leaves the session state untouched.
func (s *SessionService) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	s.begin("")

	if err := s.validateSignUp(&req); err != nil {
		return nil, s.fail(err)
	}

	var tokens Tokens
	if err := s.client.post(ctx, "/auth/signup", "", req, &tokens); err != nil {
		return nil, s.fail(err)
	}
	if err := s.client.tokens.Save(tokens); err != nil {
		return nil, s.fail(err)
	}

	user, err := s.fetchCurrentUser(ctx, tokens.AccessToken)
	if err != nil {
		return nil, s.fail(err)
	}

	s.setAuthenticated(user)
	return user, nil
}

// SignIn authenticates an existing account.
func (s *SessionService) SignIn(ctx context.Context, req SignInRequest) (*User, error) {
	s.begin("")

	if req.Email == "" || req.Password == "" {
		return nil, s.fail(newValidationError("", "email and password are required"))
	}

	var tokens Tokens
	if err := s.client.post(ctx, "/auth/signin", "", req, &tokens); err != nil {
		return nil, s.fail(err)
	}
	if err := s.client.tokens.Save(tokens); err != nil {
		return nil, s.fail(err)
	}

	user, err := s.fetchCurrentUser(ctx, tokens.AccessToken)
	if err != nil {
		return nil, s.fail(err)
	}

	s.setAuthenticated(user)
	return user, nil
}

// SignOut ends the session. The server-side invalidation call is best
// effort: a failure is logged, never surfaced, and never blocks the local
// logout. The token store is cleared and the session settles Anonymous
// unconditionally.
func (s *SessionService) SignOut(ctx context.Context) {
	s.begin("")

	if access, ok := s.client.tokens.AccessToken(); ok {
		if err := s.client.post(ctx, "/auth/signout", access, nil, nil); err != nil {
			s.client.logger.Warn("server-side sign-out failed",
				slog.String("error", err.Error()),
			)
		}
	}

	_ = s.client.tokens.Clear()
	s.setAnonymous()
}

// fetchCurrentUser loads the identity snapshot for the given access token.
func (s *SessionService) fetchCurrentUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/users/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// refreshTokens exchanges a refresh token for a fresh pair. The refresh
// token travels as the bearer credential; there is no request body.
func (s *SessionService) refreshTokens(ctx context.Context, refreshToken string) (Tokens, error) {
	var tokens Tokens
	if err := s.client.post(ctx, "/auth/refresh", refreshToken, nil, &tokens); err != nil {
		return Tokens{}, err
	}
	return tokens, nil
}

// reloadUser re-fetches the identity snapshot with the current access token
// and replaces the session user wholesale. Used after profile updates.
func (s *SessionService) reloadUser(ctx context.Context) (*User, error) {
	access, err := s.client.accessToken()
	if err != nil {
		return nil, err
	}
	user, err := s.fetchCurrentUser(ctx, access)
	if err != nil {
		return nil, err
	}
	s.setAuthenticated(user)
	return user, nil
}

// validateSignUp normalizes and validates sign-up input without any I/O.
func (s *SessionService) validateSignUp(req *SignUpRequest) error {
	req.Firstname = strings.TrimSpace(req.Firstname)
	req.Lastname = strings.TrimSpace(req.Lastname)

	err := s.client.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("", "invalid sign-up data")
	}

	switch fe := fieldErrs[0]; fe.StructField() {
	case "Firstname":
		return newValidationError("firstname", "firstname must be at least 2 characters")
	case "Lastname":
		return newValidationError("lastname", "lastname must be at least 2 characters")
	case "Email":
		return newValidationError("email", "invalid email address")
	case "Password":
		return newValidationError("password", "password must be at least 8 characters")
	default:
		return newValidationError(strings.ToLower(fe.StructField()), fe.Error())
	}
}
