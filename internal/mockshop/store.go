// Package mockshop is an in-memory storefront server implementing the
// shop-ta-board REST API. It exists for local development and integration
// tests; the real backend is a separate product.
package mockshop

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"

	shoptaboard "github.com/Gra1gkolodziejczyk/shop-ta-board"
)

// Store errors mapped to HTTP statuses by the handlers.
var (
	ErrEmailTaken       = errors.New("an account with this email already exists")
	ErrBadCredentials   = errors.New("incorrect email or password")
	ErrUnknownToken     = errors.New("invalid or expired token")
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrOutOfStock       = errors.New("insufficient stock")
)

type userRecord struct {
	shoptaboard.User
	passwordHash []byte
}

type session struct {
	userID  string
	access  string
	refresh string
	admin   bool
}

// Store holds all mock storefront state. Every mutating method recomputes
// cart totals server-side; clients are expected to adopt the returned
// snapshot verbatim.
type Store struct {
	mu sync.RWMutex

	users     map[string]*userRecord // by user ID
	emails    map[string]string      // email -> user ID
	byAccess  map[string]*session
	byRefresh map[string]*session

	products     map[string]*shoptaboard.Product
	productOrder []string

	carts  map[string]*shoptaboard.Cart    // by user ID
	orders map[string][]*shoptaboard.Order // by user ID

	adminEmail string
	adminHash  []byte

	entropy     *ulid.MonotonicEntropy
	entropyLock sync.Mutex
}

// NewStore creates an empty store with the given admin credentials.
func NewStore(adminEmail, adminPassword string) (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &Store{
		users:      make(map[string]*userRecord),
		emails:     make(map[string]string),
		byAccess:   make(map[string]*session),
		byRefresh:  make(map[string]*session),
		products:   make(map[string]*shoptaboard.Product),
		carts:      make(map[string]*shoptaboard.Cart),
		orders:     make(map[string][]*shoptaboard.Order),
		adminEmail: adminEmail,
		adminHash:  hash,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// newID generates a ULID, the storefront's ID scheme.
func (s *Store) newID() string {
	s.entropyLock.Lock()
	defer s.entropyLock.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func newToken() string {
	return uuid.NewString()
}

// issueSession mints a fresh token pair. Caller must hold the write lock.
func (s *Store) issueSession(userID string, admin bool) shoptaboard.Tokens {
	sess := &session{
		userID:  userID,
		access:  newToken(),
		refresh: newToken(),
		admin:   admin,
	}
	s.byAccess[sess.access] = sess
	s.byRefresh[sess.refresh] = sess
	return shoptaboard.Tokens{AccessToken: sess.access, RefreshToken: sess.refresh}
}

func (s *Store) dropSession(sess *session) {
	delete(s.byAccess, sess.access)
	delete(s.byRefresh, sess.refresh)
}

// SignUp registers a user and signs them in.
func (s *Store) SignUp(firstname, lastname, email, password string) (shoptaboard.Tokens, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shoptaboard.Tokens{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.emails[email]; taken {
		return shoptaboard.Tokens{}, ErrEmailTaken
	}

	user := &userRecord{
		User: shoptaboard.User{
			ID:        s.newID(),
			Email:     email,
			Firstname: firstname,
			Lastname:  lastname,
		},
		passwordHash: hash,
	}
	s.users[user.ID] = user
	s.emails[email] = user.ID

	return s.issueSession(user.ID, false), nil
}

// SignIn authenticates a user by email and password.
func (s *Store) SignIn(email, password string) (shoptaboard.Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.emails[email]
	if !ok {
		return shoptaboard.Tokens{}, ErrBadCredentials
	}
	user := s.users[userID]
	if bcrypt.CompareHashAndPassword(user.passwordHash, []byte(password)) != nil {
		return shoptaboard.Tokens{}, ErrBadCredentials
	}

	return s.issueSession(user.ID, false), nil
}

// AdminLogin authenticates the admin console.
func (s *Store) AdminLogin(email, password string) (shoptaboard.Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if email != s.adminEmail || bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) != nil {
		return shoptaboard.Tokens{}, ErrBadCredentials
	}

	return s.issueSession("", true), nil
}

// SignOut invalidates a session by access token. Unknown tokens are an
// error, but callers treat sign-out as best effort.
func (s *Store) SignOut(accessToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byAccess[accessToken]
	if !ok {
		return ErrUnknownToken
	}
	s.dropSession(sess)
	return nil
}

// Refresh rotates a token pair. The presented refresh token is consumed.
func (s *Store) Refresh(refreshToken string) (shoptaboard.Tokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byRefresh[refreshToken]
	if !ok {
		return shoptaboard.Tokens{}, ErrUnknownToken
	}
	s.dropSession(sess)
	return s.issueSession(sess.userID, sess.admin), nil
}

// UserByAccess resolves a shopper access token.
func (s *Store) UserByAccess(accessToken string) (*shoptaboard.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.byAccess[accessToken]
	if !ok || sess.admin {
		return nil, ErrUnknownToken
	}
	user, ok := s.users[sess.userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	u := user.User
	return &u, nil
}

// IsAdminAccess reports whether an access token belongs to an admin session.
func (s *Store) IsAdminAccess(accessToken string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.byAccess[accessToken]
	return ok && sess.admin
}

// UpdateUser replaces the mutable identity fields.
func (s *Store) UpdateUser(userID, firstname, lastname, email string) (*shoptaboard.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if other, taken := s.emails[email]; taken && other != userID {
		return nil, ErrEmailTaken
	}

	delete(s.emails, user.Email)
	user.Firstname = firstname
	user.Lastname = lastname
	user.Email = email
	s.emails[email] = userID

	u := user.User
	return &u, nil
}

// DeleteUser removes a user with their cart, orders, and sessions.
func (s *Store) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrUserNotFound
	}

	delete(s.emails, user.Email)
	delete(s.users, userID)
	delete(s.carts, userID)
	delete(s.orders, userID)
	for _, sess := range s.byAccess {
		if sess.userID == userID {
			s.dropSession(sess)
		}
	}
	return nil
}
