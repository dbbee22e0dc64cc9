package services

import (
	"context"
	"fmt"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  repository.UserRepository
	tokens *jwt.Manager
}

func NewAuthService(users repository.UserRepository, tokens *jwt.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a customer or vendor account. Vendor registration also
// creates the vendor's shop in the same transaction.
func (s *AuthService) Register(ctx context.Context, name, email, password, role, shopName string) (*models.User, string, error) {
	if role != models.RoleCustomer && role != models.RoleVendor {
		return nil, "", fmt.Errorf("role %q not allowed at registration", role)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}

	if role == models.RoleVendor {
		if shopName == "" {
			shopName = fmt.Sprintf("%s's shop", name)
		}
		shop := &models.Shop{Name: shopName, Status: models.ShopActive}
		if err := s.users.CreateVendor(ctx, user, shop); err != nil {
			return nil, "", err
		}
	} else {
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidPassword
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}
