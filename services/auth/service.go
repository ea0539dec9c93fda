package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/xerrors"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/repos/store"
)

const (
	minFullNameLen = 2
	minPasswordLen = 6
	// bcrypt refuses longer input.
	maxPasswordLen = 72
	notifyTimeout  = 15 * time.Second
)

type Store interface {
	CreateUser(ctx context.Context, u *store.User) error
	GetUserByMSV(ctx context.Context, msv string) (*store.User, error)
}

// Credentials hashes passwords and issues tokens.
type Credentials interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) bool
	IssueToken(msv, role string) (string, time.Time, error)
}

// Notifier is told about every new account.
type Notifier interface {
	SendRegistrationNotice(ctx context.Context, u *store.User) error
}

type AuthService struct {
	store    Store
	creds    Credentials
	notifier Notifier
	now      func() time.Time
}

// NewAuthService creates the service. notifier may be nil.
func NewAuthService(s Store, creds Credentials, notifier Notifier) *AuthService {
	return &AuthService{
		store:    s,
		creds:    creds,
		notifier: notifier,
		now:      time.Now,
	}
}

// NormalizeMSV trims and uppercases a student id so that lookups are case
// insensitive.
func NormalizeMSV(msv string) string {
	return strings.ToUpper(strings.TrimSpace(msv))
}

// validMSV limits ids to characters that are safe in document ids.
func validMSV(msv string) bool {
	if msv == "" {
		return false
	}
	for _, r := range msv {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func validPhone(phone string) bool {
	if len(phone) < 10 || len(phone) > 11 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Register creates an active user account.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*store.User, error) {
	msv := NormalizeMSV(req.MSV)
	fullName := strings.TrimSpace(req.FullName)
	phone := strings.TrimSpace(req.Phone)

	switch {
	case !validMSV(msv):
		return nil, apperr.New(apperr.InvalidInput, "msv may only contain letters, digits, '-' and '_'")
	case utf8.RuneCountInString(fullName) < minFullNameLen:
		return nil, apperr.Newf(apperr.InvalidInput, "full name must be at least %d characters", minFullNameLen)
	case !validPhone(phone):
		return nil, apperr.New(apperr.InvalidInput, "phone must be 10 or 11 digits")
	case len(req.Password) < minPasswordLen:
		return nil, apperr.Newf(apperr.InvalidInput, "password must be at least %d characters", minPasswordLen)
	case len(req.Password) > maxPasswordLen:
		return nil, apperr.Newf(apperr.InvalidInput, "password must be at most %d bytes", maxPasswordLen)
	}

	u, err := s.createUser(ctx, msv, fullName, phone, req.Password, store.RoleUser)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("msv", u.MSV).Msg("user registered")

	if s.notifier != nil {
		go s.notify(u)
	}
	return u, nil
}

func (s *AuthService) createUser(ctx context.Context, msv, fullName, phone, password, role string) (*store.User, error) {
	hash, err := s.creds.HashPassword(password)
	if err != nil {
		return nil, xerrors.Errorf("hash password: %w", err)
	}

	u := &store.User{
		MSV:            msv,
		FullName:       fullName,
		Phone:          phone,
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.AlreadyRegistered, "this msv is already registered")
		}
		return nil, xerrors.Errorf("register %s: %w", msv, err)
	}
	return u, nil
}

func (s *AuthService) notify(u *store.User) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.SendRegistrationNotice(ctx, u); err != nil {
		logging.Warn().Err(err).Str("msv", u.MSV).Msg("failed to send registration notice")
	}
}

// Login checks the password and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, msv, password string) (string, error) {
	u, err := s.store.GetUserByMSV(ctx, NormalizeMSV(msv))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if u == nil || !s.creds.VerifyPassword(password, u.HashedPassword) {
		return "", apperr.New(apperr.Unauthorized, "incorrect msv or password")
	}
	if !u.IsActive {
		return "", apperr.New(apperr.AccountDisabled, "your account is locked, contact an administrator")
	}

	token, _, err := s.creds.IssueToken(u.MSV, u.Role)
	if err != nil {
		return "", xerrors.Errorf("issue token for %s: %w", u.MSV, err)
	}
	return token, nil
}

// EnsureAdmin creates the administrator account unless the msv is taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, msv, password, fullName, phone string) error {
	msv = NormalizeMSV(msv)
	if !validMSV(msv) || password == "" {
		return apperr.New(apperr.InvalidInput, "admin msv and password are required")
	}
	if len(password) > maxPasswordLen {
		return apperr.Newf(apperr.InvalidInput, "admin password must be at most %d bytes", maxPasswordLen)
	}

	existing, err := s.store.GetUserByMSV(ctx, msv)
	switch {
	case err == nil:
		if existing.Role != store.RoleAdmin {
			logging.Warn().Str("msv", msv).Msg("admin msv belongs to a regular user, leaving it untouched")
		}
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	if _, err := s.createUser(ctx, msv, fullName, phone, password, store.RoleAdmin); err != nil {
		if errors.Is(err, apperr.AlreadyRegistered) {
			return nil
		}
		return err
	}
	logging.Info().Str("msv", msv).Msg("admin account created")
	return nil
}
