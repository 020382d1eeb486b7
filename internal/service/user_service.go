package service

import (
	"context"
	"errors"
	"strings"

	"go-gin-gorm-shop/internal/domain"
	"go-gin-gorm-shop/pkg/utils"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService { return &UserService{users: users} }

// Register 自助注册只允许 buyer / seller
func (s *UserService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if role == "" {
		role = domain.RoleBuyer
	}
	if role != domain.RoleBuyer && role != domain.RoleSeller {
		return nil, domain.InvalidInput("role must be buyer or seller")
	}
	return s.create(ctx, email, password, role)
}

// CreateUser 管理端建用户，可以是任意角色
func (s *UserService) CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.InvalidInput("unknown role")
	}
	return s.create(ctx, email, password, role)
}

func (s *UserService) create(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Email already registered")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Email: email, HashedPassword: hashed, Role: role, IsActive: true}
	if err := s.users.Create(ctx, u); err != nil {
		if utils.IsDupKey(err) {
			return nil, domain.Conflict("Email already registered")
		}
		return nil, err
	}
	return u, nil
}

// Authenticate 校验邮箱密码；停用用户和密码错误返回同一个错误
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || !u.IsActive || !utils.CheckPassword(password, u.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("User not found")
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, q, offset, limit)
}

func (s *UserService) Deactivate(ctx context.Context, id uint) error {
	ok, err := s.users.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("User not found")
	}
	return nil
}
