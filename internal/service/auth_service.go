package service

import (
	"context"
	"log"

	"examengine/internal/database"
	"examengine/internal/models"
	"examengine/internal/repository"
	"examengine/internal/security"
	"examengine/internal/validation"
)

// AuthService handles registration, login and OAuth account resolution.
// Every path ends in the same place: a signed bearer token.
type AuthService struct {
	users  *repository.UserRepository
	tokens *security.TokenManager
	email  *EmailService
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, tokens *security.TokenManager, email *EmailService) *AuthService {
	return &AuthService{users: users, tokens: tokens, email: email}
}

// Register creates an account and returns the user with a fresh token
func (s *AuthService) Register(email, password string) (*models.User, string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.CreateUser(email, hash, models.RoleUser)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	// Best effort; registration does not fail on email trouble.
	go func() {
		if err := s.email.SendWelcomeEmail(context.Background(), user.Email); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}
	}()

	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !security.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser retrieves a user by id
func (s *AuthService) GetUser(userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ResolveOAuthUser finds or creates the account behind an OAuth login
// and returns it with a fresh token. An existing password account with
// the same email gets the provider linked instead of a duplicate.
func (s *AuthService) ResolveOAuthUser(provider, subject, email string) (*models.User, string, error) {
	user, err := s.users.GetUserByOAuth(provider, subject)
	if err != nil {
		return nil, "", err
	}

	if user == nil && email != "" {
		existing, err := s.users.GetUserByEmail(email)
		if err != nil {
			return nil, "", err
		}
		if existing != nil {
			if err := s.users.LinkOAuthProvider(existing.ID, provider, subject); err != nil {
				return nil, "", err
			}
			user = existing
		}
	}

	if user == nil {
		user, err = s.users.CreateOAuthUser(email, provider, subject, models.RoleUser)
		if err != nil {
			return nil, "", err
		}
		go func() {
			if err := s.email.SendWelcomeEmail(context.Background(), email); err != nil {
				log.Printf("welcome email to %s failed: %v", email, err)
			}
		}()
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// SeedAdmin creates the admin account from configuration when absent
func (s *AuthService) SeedAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := s.users.CreateUser(email, hash, models.RoleAdmin); err != nil {
		if database.IsUniqueViolation(err) {
			return nil
		}
		return err
	}

	log.Printf("Seeded admin account %s", email)
	return nil
}
