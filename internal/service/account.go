package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
	"github.com/pageza/nutriai/backend/internal/types"
)

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccount     = errors.New("name, a valid email and a password of at least 6 characters are required")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSessionExpired     = errors.New("session has ended")
)

const (
	tokenTTL          = 24 * time.Hour
	maxSessions       = 10
	minPasswordLength = 6
)

// validate applies the same tags gin uses for request binding.
var validate = validator.New()

// Session is one issued token. Logging out removes it.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountService registers users and issues session tokens. Accounts live in
// a single list under the accounts key.
type AccountService struct {
	store     *storage.KeyValueStore
	jwtSecret []byte
	now       func() time.Time
	locks     keyMutex
}

// Ensure AccountService implements IAccountService
var _ IAccountService = (*AccountService)(nil)

// NewAccountService creates a new AccountService instance
func NewAccountService(store *storage.KeyValueStore, jwtSecret string) *AccountService {
	return &AccountService{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

// Register creates an account and signs it in.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.Account, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || len(password) < minPasswordLength {
		return nil, "", ErrInvalidAccount
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, "", ErrInvalidAccount
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    s.now().UTC(),
	}

	unlock := s.locks.lock(usersKey)
	accounts := storage.Load(ctx, s.store, usersKey, []models.Account{})
	if findByEmail(accounts.Value(), email) >= 0 {
		unlock()
		return nil, "", ErrEmailTaken
	}
	accounts.Update(ctx, func(prev []models.Account) []models.Account {
		return append(slices.Clone(prev), account)
	})
	unlock()

	token, err := s.startSession(ctx, account)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// Login checks the credentials and returns a fresh token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	accounts := storage.Get(ctx, s.store, usersKey, []models.Account{})
	i := findByEmail(accounts, strings.TrimSpace(email))
	if i < 0 {
		return nil, "", ErrInvalidCredentials
	}
	account := accounts[i]

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.startSession(ctx, account)
	if err != nil {
		return nil, "", err
	}
	return &account, token, nil
}

// Logout ends the session the token was issued for.
func (s *AccountService) Logout(ctx context.Context, userID, sessionID string) {
	key := storage.UserKey(sessionsPrefix, userID)
	unlock := s.locks.lock(key)
	defer unlock()

	sessions := storage.Load(ctx, s.store, key, []Session{})
	sessions.Update(ctx, func(prev []Session) []Session {
		return slices.DeleteFunc(slices.Clone(prev), func(sess Session) bool { return sess.ID == sessionID })
	})
}

// CurrentUser returns the account with the given ID.
func (s *AccountService) CurrentUser(ctx context.Context, userID string) (*models.Account, error) {
	accounts := storage.Get(ctx, s.store, usersKey, []models.Account{})
	for _, a := range accounts {
		if a.ID.String() == userID {
			return &a, nil
		}
	}
	return nil, ErrAccountNotFound
}

// ValidateToken verifies the signature and expiry of tokenString and checks
// that its session has not been logged out.
func (s *AccountService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	sessions := storage.Get(ctx, s.store, storage.UserKey(sessionsPrefix, claims.UserID), []Session{})
	if !slices.ContainsFunc(sessions, func(sess Session) bool { return sess.ID == claims.SessionID }) {
		return nil, ErrSessionExpired
	}
	return claims, nil
}

func (s *AccountService) startSession(ctx context.Context, account models.Account) (string, error) {
	now := s.now()
	session := Session{ID: uuid.NewString(), CreatedAt: now.UTC()}

	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID:    account.ID.String(),
		Name:      account.Name,
		SessionID: session.ID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	key := storage.UserKey(sessionsPrefix, account.ID.String())
	unlock := s.locks.lock(key)
	defer unlock()

	sessions := storage.Load(ctx, s.store, key, []Session{})
	sessions.Update(ctx, func(prev []Session) []Session {
		next := append([]Session{session}, prev...)
		if len(next) > maxSessions {
			next = next[:maxSessions]
		}
		return next
	})
	return token, nil
}

func findByEmail(accounts []models.Account, email string) int {
	return slices.IndexFunc(accounts, func(a models.Account) bool {
		return strings.EqualFold(a.Email, email)
	})
}
