package users

import (
	"context"
	"strings"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/avelora/flightreserve/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListByRole(ctx context.Context, actor domain.Actor, role domain.Role) ([]domain.User, error)
}

type UserService struct {
	repo repository.UserRepository
}

type RegisterInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, domain.Validationf("please fill in all fields")
	}
	if input.Password != input.ConfirmPassword {
		return nil, domain.Validationf("passwords do not match")
	}

	user := &domain.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Password:  input.Password,
		Role:      domain.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) ListByRole(ctx context.Context, actor domain.Actor, role domain.Role) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.Unauthorizedf("access denied: admins only")
	}
	return s.repo.ListByRole(ctx, role)
}

var _ UserUseCase = (*UserService)(nil)
