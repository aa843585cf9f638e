package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/joelcondh/burien-soccer/internal/models"
)

// ProfileRepository defines what the app layer needs from the repository.
type ProfileRepository interface {
	CreateAccountWithProfile(ctx context.Context, req CreateAccountRequest) (*models.Profile, error)
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
	GetProfileByAccount(ctx context.Context, accountID uuid.UUID) (*models.Profile, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	UpdateContact(ctx context.Context, accountID uuid.UUID, name string, city, phone *string) (*models.Profile, error)
	SetProfileState(ctx context.Context, id uuid.UUID, state models.ProfileState) (*models.Profile, error)
}

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Name     string  `json:"name"`
	City     *string `json:"city,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
}

// UpdateContactRequest carries the owner-editable profile fields.
type UpdateContactRequest struct {
	Name  string  `json:"name"`
	City  *string `json:"city,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// App handles account and profile business logic.
type App struct {
	repo  ProfileRepository
	clock clockwork.Clock
}

func NewApp(repo ProfileRepository, clock clockwork.Clock) *App {
	return &App{repo: repo, clock: clock}
}

// Register creates an account plus its player profile. New profiles start
// active; an admin can deactivate them afterwards.
func (a *App) Register(ctx context.Context, req RegisterRequest) (*models.Profile, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.repo.CreateAccountWithProfile(ctx, CreateAccountRequest{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		City:         req.City,
		Phone:        req.Phone,
		Role:         models.ProfileRolePlayer,
		State:        models.ProfileStateActive,
		CreatedAt:    a.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("profile_id", created.ID.String()).Msg("player registered")
	return created, nil
}

// Authenticate verifies email/password and returns the login credentials.
func (a *App) Authenticate(ctx context.Context, email, password string) (*Credentials, error) {
	creds, err := a.repo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return creds, nil
}

func (a *App) GetByAccount(ctx context.Context, accountID uuid.UUID) (*models.Profile, error) {
	return a.repo.GetProfileByAccount(ctx, accountID)
}

func (a *App) List(ctx context.Context) ([]models.Profile, error) {
	return a.repo.ListProfiles(ctx)
}

// UpdateContact lets the owning player edit name, city and phone.
func (a *App) UpdateContact(ctx context.Context, accountID uuid.UUID, req UpdateContactRequest) (*models.Profile, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("validation failed: name is required")
	}
	return a.repo.UpdateContact(ctx, accountID, req.Name, req.City, req.Phone)
}

// SetState flips a profile between active and inactive. Admin-only at the
// transport layer; anyone inactive is refused at the reservation step.
func (a *App) SetState(ctx context.Context, id uuid.UUID, state models.ProfileState) (*models.Profile, error) {
	switch state {
	case models.ProfileStateActive, models.ProfileStateInactive:
	default:
		return nil, fmt.Errorf("validation failed: invalid profile state: %s", state)
	}

	updated, err := a.repo.SetProfileState(ctx, id, state)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("profile_id", id.String()).
		Str("state", string(state)).
		Msg("profile state changed")
	return updated, nil
}

func validateRegisterRequest(req RegisterRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.Email == "" {
		return fmt.Errorf("email is required")
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
