package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"eventify/internal/status"
	"eventify/internal/store"
	"eventify/models"
	"eventify/monitoring"
	"eventify/security"
	"eventify/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	store   *store.Store
	tokens  *security.TokenIssuer
	monitor *monitoring.Monitor
}

func NewAuthService(s *store.Store, tokens *security.TokenIssuer, monitor *monitoring.Monitor) *AuthService {
	return &AuthService{store: s, tokens: tokens, monitor: monitor}
}

const (
	minUsernameLen = 3
	maxUsernameLen = 80
	// "-" plus four hex characters
	usernameSuffixLen = 5
)

type RegisterInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	CollegeID *int64 `json:"college_id"`
}

func (in *RegisterInput) normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.CollegeID != nil && *in.CollegeID <= 0 {
		in.CollegeID = nil
	}
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&in.Username, validation.Length(minUsernameLen, maxUsernameLen)),
	)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string            `json:"access_token"`
	User  models.PublicUser `json:"user"`
}

// Register creates an account and signs the new user in. Without an
// explicit username the local part of the email is used, with a random
// suffix when that name is taken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrValidation, err)
	}

	exists, err := s.store.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		s.monitor.TrackAuth("register", "duplicate")
		return nil, status.ErrDuplicateEmail
	}

	if in.CollegeID != nil {
		if _, err := s.store.FindCollege(ctx, *in.CollegeID); err != nil {
			if errors.Is(err, status.ErrNotFound) {
				return nil, fmt.Errorf("%w: college %d does not exist", status.ErrValidation, *in.CollegeID)
			}
			return nil, err
		}
	}

	username, err := s.pickUsername(ctx, in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password: the length must be no more than 72 bytes", status.ErrValidation)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        in.Email,
		Username:     username,
		PasswordHash: string(hash),
		CollegeID:    in.CollegeID,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", user.ID)
	s.monitor.TrackAuth("register", "ok")
	return s.result(user)
}

func (s *AuthService) pickUsername(ctx context.Context, in RegisterInput) (string, error) {
	if in.Username != "" {
		taken, err := s.store.UsernameExists(ctx, in.Username)
		if err != nil {
			return "", fmt.Errorf("check username: %w", err)
		}
		if taken {
			return "", status.ErrDuplicateUsername
		}
		return in.Username, nil
	}

	base := in.Email[:strings.Index(in.Email, "@")]
	if r := []rune(base); len(r) > maxUsernameLen-usernameSuffixLen {
		base = string(r[:maxUsernameLen-usernameSuffixLen])
	}

	// Local parts too short to be a username always get a suffix.
	candidate := base
	for attempt := 0; attempt < 5; attempt++ {
		if utf8.RuneCountInString(candidate) >= minUsernameLen {
			taken, err := s.store.UsernameExists(ctx, candidate)
			if err != nil {
				return "", fmt.Errorf("check username: %w", err)
			}
			if !taken {
				return candidate, nil
			}
		}
		suffix, err := utils.GenerateCode(2)
		if err != nil {
			return "", err
		}
		candidate = base + "-" + strings.ToLower(suffix)
	}
	return "", status.ErrDuplicateUsername
}

// Login never reveals whether the email exists.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", status.ErrValidation, err)
	}

	user, err := s.store.FindUserByEmail(ctx, in.Email)
	if errors.Is(err, status.ErrNotFound) {
		s.monitor.TrackAuth("login", "rejected")
		return nil, status.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.monitor.TrackAuth("login", "rejected")
		return nil, status.ErrInvalidCredentials
	}

	s.monitor.TrackAuth("login", "ok")
	return s.result(user)
}

// CurrentUser resolves a credential to its user. Unknown users are
// unauthorized, not missing.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.PublicUser, error) {
	id, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.store.FindUserByID(ctx, id)
	if errors.Is(err, status.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %d no longer exists", status.ErrUnauthorized, id)
	}
	if err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

// Authenticate lets the service guard routes: the credential must verify
// and its user must still exist.
func (s *AuthService) Authenticate(ctx context.Context, token string) (int64, error) {
	user, err := s.CurrentUser(ctx, token)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (s *AuthService) result(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
