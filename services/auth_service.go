package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

const minPasswordLength = 8

// SignUpInput is the account creation payload.
type SignUpInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AuthDecision is the outcome of an authorization check. Reason is
// human readable and only set when not authorized.
type AuthDecision struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`
}

// AuthService manages accounts and answers the role-based
// authorization questions the HTTP layer asks before invoking the
// championship operations. The apply/revert core itself never checks
// authorization; it trusts its caller.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*models.User, error)
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	CanSubmitMatchResults(ctx context.Context, userID, clubID string) AuthDecision
	CanViewAdminFeatures(ctx context.Context, userID, clubID string) AuthDecision
}

type authService struct {
	store docstore.Store
}

func NewAuthService(store docstore.Store) AuthService {
	return &authService{store: store}
}

func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email", ErrValidationFailed)
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if _, err := s.store.Get(ctx, docstore.UserPath(email)); err == nil {
		return nil, ErrEmailConflict
	} else if !errors.Is(err, docstore.ErrDocumentNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Set(ctx, docstore.UserPath(email), userDoc(user), false); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	doc, err := s.store.Get(ctx, docstore.UserPath(email))
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	var stored storedUser
	if err := doc.Decode(&stored); err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return stored.user(), nil
}

func (s *authService) CanSubmitMatchResults(ctx context.Context, userID, clubID string) AuthDecision {
	role, err := s.memberRole(ctx, userID, clubID)
	if err != nil {
		return AuthDecision{Reason: "not a member of this club"}
	}
	if role == models.RoleAdmin || role == models.RoleStaff {
		return AuthDecision{Authorized: true}
	}
	return AuthDecision{Reason: "submitting match results requires a staff or admin role"}
}

func (s *authService) CanViewAdminFeatures(ctx context.Context, userID, clubID string) AuthDecision {
	role, err := s.memberRole(ctx, userID, clubID)
	if err != nil {
		return AuthDecision{Reason: "not a member of this club"}
	}
	if role == models.RoleAdmin {
		return AuthDecision{Authorized: true}
	}
	return AuthDecision{Reason: "admin features require an admin role"}
}

func (s *authService) memberRole(ctx context.Context, userID, clubID string) (models.ClubRole, error) {
	doc, err := s.store.Get(ctx, docstore.ClubMemberPath(clubID, userID))
	if err != nil {
		return "", err
	}
	member := &models.ClubMember{}
	if err := doc.Decode(member); err != nil {
		return "", err
	}
	return member.Role, nil
}

// storedUser is the persisted account shape: the password hash is
// json:"-" on models.User so it needs an explicit field here.
type storedUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *storedUser) user() *models.User {
	return &models.User{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func userDoc(u *models.User) *storedUser {
	return &storedUser{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}
