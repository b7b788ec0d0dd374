package admins

import (
	"context"
	"errors"
	"strings"

	"github.com/fundvault/fundvault/backend/go-services/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both unknown names and wrong
// passwords so login failures do not reveal which names exist.
var ErrInvalidCredentials = errors.New("invalid name or password")

// Service encapsulates admin credential logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Authenticate verifies a name+password pair against the stored bcrypt hash.
func (s *Service) Authenticate(ctx context.Context, name, password string) (*models.Admin, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	a, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// SetCredential creates or replaces an admin credential. Used by the seed CLI.
func (s *Service) SetCredential(ctx context.Context, name, password string) (*models.Admin, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	a := &models.Admin{Name: name, PasswordHash: string(hash)}
	return s.repo.UpsertByName(ctx, a)
}
