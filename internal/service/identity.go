package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/store"
	"spicemart-backend/pkg/auth"
)

var (
	emailRe = regexp.MustCompile(`^[\w\-.]+@([\w-]+\.)+[\w-]{2,4}$`)
	phoneRe = regexp.MustCompile(`^\d{10}$`)

	// One shared value for every login failure so a missing user and a
	// wrong password are indistinguishable to the caller.
	errInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
)

const minPasswordLen = 8

// Identity handles registration, login and profile updates for end
// users, and the shared-secret admin login.
type Identity struct {
	users         store.UserStore
	tokens        *auth.Tokens
	adminEmail    string
	adminPassword string
}

func NewIdentity(users store.UserStore, tokens *auth.Tokens, adminEmail, adminPassword string) *Identity {
	return &Identity{
		users:         users,
		tokens:        tokens,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// classifyIdentifier splits a raw identifier into email or phone by
// format. Exactly one of the returned strings is non-empty on success.
func classifyIdentifier(identifier string) (email, phone string, ok bool) {
	switch {
	case emailRe.MatchString(identifier):
		return identifier, "", true
	case phoneRe.MatchString(identifier):
		return "", identifier, true
	}
	return "", "", false
}

func (s *Identity) Register(ctx context.Context, name, identifier, password string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	email, phone, ok := classifyIdentifier(identifier)
	if !ok {
		return "", fmt.Errorf("%w: enter a valid email or phone number", domain.ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
	}

	if taken, err := s.identifierTaken(ctx, email, phone); err != nil {
		return "", err
	} else if taken {
		return "", fmt.Errorf("%w: user already registered", domain.ErrConflict)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: string(hashed),
	}
	// The sparse unique indexes catch a concurrent registration the
	// pre-check above missed; the store reports it as ErrConflict.
	if err := s.users.Insert(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.IssueUser(user.ID.Hex())
}

func (s *Identity) identifierTaken(ctx context.Context, email, phone string) (bool, error) {
	var err error
	if email != "" {
		_, err = s.users.FindByEmail(ctx, email)
	} else {
		_, err = s.users.FindByPhone(ctx, phone)
	}
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *Identity) Login(ctx context.Context, identifier, password string) (string, error) {
	email, phone, ok := classifyIdentifier(identifier)
	if !ok {
		return "", errInvalidCredentials
	}

	var (
		user *domain.User
		err  error
	)
	if email != "" {
		user, err = s.users.FindByEmail(ctx, email)
	} else {
		user, err = s.users.FindByPhone(ctx, phone)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", errInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", errInvalidCredentials
	}
	return s.tokens.IssueUser(user.ID.Hex())
}

// AdminLogin checks the two process-configured constants and issues an
// admin token carrying their concatenation. There is no admin user
// record and the token has no subject.
func (s *Identity) AdminLogin(email, password string) (string, error) {
	if s.adminEmail == "" || email != s.adminEmail || password != s.adminPassword {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return s.tokens.IssueAdmin(s.adminEmail + s.adminPassword)
}

func (s *Identity) Profile(ctx context.Context, userID string) (*domain.User, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, uid)
}

// ProfileUpdate carries the optional profile changes; empty fields are
// left untouched. Changing the password requires the current one.
type ProfileUpdate struct {
	Name        string
	Email       string
	Phone       string
	Password    string
	NewPassword string
}

func (s *Identity) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (*domain.User, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	if upd.Email != "" {
		if !emailRe.MatchString(upd.Email) {
			return nil, fmt.Errorf("%w: enter a valid email", domain.ErrInvalidInput)
		}
		if err := s.checkFree(ctx, user, upd.Email, ""); err != nil {
			return nil, err
		}
	}
	if upd.Phone != "" {
		if !phoneRe.MatchString(upd.Phone) {
			return nil, fmt.Errorf("%w: phone number must be 10 digits", domain.ErrInvalidInput)
		}
		if err := s.checkFree(ctx, user, "", upd.Phone); err != nil {
			return nil, err
		}
	}

	change := store.UserUpdate{Name: upd.Name, Email: upd.Email, Phone: upd.Phone}

	if upd.NewPassword != "" || upd.Password != "" {
		if upd.Password == "" || upd.NewPassword == "" {
			return nil, fmt.Errorf("%w: current and new password are both required", domain.ErrInvalidInput)
		}
		if len(upd.NewPassword) < minPasswordLen {
			return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLen)
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(upd.Password)) != nil {
			return nil, fmt.Errorf("%w: invalid current password", domain.ErrUnauthorized)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(upd.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		change.Password = string(hashed)
	}

	if err := s.users.Update(ctx, uid, change); err != nil {
		return nil, err
	}

	if change.Name != "" {
		user.Name = change.Name
	}
	if change.Email != "" {
		user.Email = change.Email
	}
	if change.Phone != "" {
		user.Phone = change.Phone
	}
	return user, nil
}

func (s *Identity) checkFree(ctx context.Context, user *domain.User, email, phone string) error {
	var (
		other *domain.User
		err   error
	)
	if email != "" {
		other, err = s.users.FindByEmail(ctx, email)
	} else {
		other, err = s.users.FindByPhone(ctx, phone)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if other.ID != user.ID {
		return fmt.Errorf("%w: already in use", domain.ErrConflict)
	}
	return nil
}
