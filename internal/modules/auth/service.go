package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"workspace/internal/domain"
	jwtsvc "workspace/internal/pkg/jwt"
	"workspace/internal/repository"
)

// Service issues identity. The booking core treats the resulting JWT claims
// ({user_id, role, organization_id}) as an external collaborator's output.
type Service struct {
	users *repository.UserRepository
	jwt   *jwtsvc.Service
}

func NewService(users *repository.UserRepository, jwt *jwtsvc.Service) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates an INDIVIDUAL_USER account. Organization members are
// provisioned separately by admins.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleIndividualUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return s.respond(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.respond(u)
}

func (s *Service) respond(u *domain.User) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(u.ID, string(u.Role), u.OrganizationID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		UserID:         u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		OrganizationID: u.OrganizationID,
		Token:          token,
	}, nil
}
