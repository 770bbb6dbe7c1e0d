package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bahzadkaka/mv-marketplace/pkg/auth"
	"github.com/bahzadkaka/mv-marketplace/pkg/config"
	"github.com/bahzadkaka/mv-marketplace/pkg/db/models"
	"github.com/bahzadkaka/mv-marketplace/pkg/enums"
	pkgerrors "github.com/bahzadkaka/mv-marketplace/pkg/errors"
	"github.com/bahzadkaka/mv-marketplace/pkg/security"
	"github.com/bahzadkaka/mv-marketplace/pkg/types"
)

const invalidCredentialsMessage = "invalid credentials"

// RegisterInput is the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     enums.Role
}

// LoginResult carries the minted token alongside the account.
type LoginResult struct {
	Token string
	User  *models.User
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service handles registration and credential login.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type service struct {
	users       userRepository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

// NewService constructs the auth service.
func NewService(users userRepository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{
		users:       users,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}, nil
}

// Register creates a vendor or customer account. Vendors start pending and
// stay locked out of login until an admin activates them.
func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	switch input.Role {
	case enums.RoleVendor, enums.RoleCustomer:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be vendor or customer")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Role:         input.Role,
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Status:       enums.UserStatusActive,
	}
	if input.Role == enums.RoleVendor {
		user.Status = enums.UserStatusPending
		user.Store = &types.StoreProfile{}
		user.Shipping = types.ShippingMethods{}
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return created, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	if user.Status != enums.UserStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is not active")
	}

	token, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &LoginResult{Token: token, User: user}, nil
}
