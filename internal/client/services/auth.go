package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/dailykeep/internal/client/keys"
	"github.com/dmitrijs2005/dailykeep/internal/client/models"
	"github.com/dmitrijs2005/dailykeep/internal/client/records"
	"github.com/dmitrijs2005/dailykeep/internal/common"
	"github.com/dmitrijs2005/dailykeep/internal/cryptox"
	"github.com/dmitrijs2005/dailykeep/internal/logging"
	"github.com/dmitrijs2005/dailykeep/internal/sanitize"
	"github.com/dmitrijs2005/dailykeep/internal/timex"
	"github.com/google/uuid"
)

const (
	NameMaxLen        = 80
	MinPasswordLength = 6
)

// AuthService manages local accounts and the device session.
//
// Contract:
//   - Register: create an account and sign it in.
//   - Login: verify credentials and sign in.
//   - CurrentUser: resolve the session; common.ErrNoSession when signed out.
//   - Logout: end the session.
type AuthService interface {
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
}

type authService struct {
	mu      sync.Mutex
	records *records.Store
	clock   timex.Clock
	log     logging.Logger
}

func NewAuthService(rec *records.Store, clock timex.Clock, log logging.Logger) AuthService {
	return &authService{records: rec, clock: clock, log: log}
}

func (a *authService) users(ctx context.Context) []models.User {
	return records.ReadJSON(ctx, a.records, keys.Global(keys.Users), []models.User{}, models.ValidUsers)
}

func (a *authService) startSession(ctx context.Context, u *models.User) error {
	s := models.Session{UserID: u.ID, LoggedInAt: a.clock.Now()}
	if err := a.records.WriteJSON(ctx, keys.Global(keys.Session), s); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Register validates the input, stores a salted verifier of the password and
// opens a session for the new account.
func (a *authService) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name = sanitize.Text(name, NameMaxLen, false)
	email = sanitize.Email(email)

	users := a.users(ctx)
	for _, u := range users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: an account with this email already exists", common.ErrAlreadyExists)
		}
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if !sanitize.LooksLikeEmail(email) {
		return nil, fmt.Errorf("%w: please provide a valid email address", common.ErrValidation)
	}
	if len(strings.TrimSpace(string(password))) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrValidation, MinPasswordLength)
	}

	salt, verifier := cryptox.NewPasswordVerifier(password)
	u := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Salt:      salt,
		Verifier:  verifier,
		CreatedAt: a.clock.Now(),
	}

	if err := a.records.WriteJSON(ctx, keys.Global(keys.Users), append(users, u)); err != nil {
		return nil, fmt.Errorf("saving account: %w", err)
	}
	if err := a.startSession(ctx, &u); err != nil {
		return nil, err
	}
	a.log.Info(ctx, "account registered", "user", u.ID)
	return &u, nil
}

// Login checks password against the stored verifier of the account with
// this email. Unknown emails and wrong passwords both yield
// common.ErrUnauthorized.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	email = sanitize.Email(email)
	for _, u := range a.users(ctx) {
		if u.Email != email {
			continue
		}
		if !cryptox.CheckPassword(password, u.Salt, u.Verifier) {
			break
		}
		if err := a.startSession(ctx, &u); err != nil {
			return nil, err
		}
		return &u, nil
	}
	return nil, fmt.Errorf("%w: invalid email or password", common.ErrUnauthorized)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	s := records.ReadJSON[*models.Session](ctx, a.records, keys.Global(keys.Session), nil, models.ValidSession)
	if s == nil {
		return nil, common.ErrNoSession
	}
	for _, u := range a.users(ctx) {
		if u.ID == s.UserID {
			return &u, nil
		}
	}
	return nil, common.ErrNoSession
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.records.Remove(ctx, keys.Global(keys.Session)); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
