package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"spicemart-backend/internal/domain"
	"spicemart-backend/internal/store"
	"spicemart-backend/pkg/auth"
)

type memUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[primitive.ObjectID]*domain.User)}
}

func (s *memUserStore) Insert(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if (u.Email != "" && existing.Email == u.Email) || (u.Phone != "" && existing.Phone == u.Phone) {
			return domain.ErrConflict
		}
	}
	u.ID = primitive.NewObjectID()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memUserStore) FindByPhone(_ context.Context, phone string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memUserStore) Update(_ context.Context, id primitive.ObjectID, upd store.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	if upd.Password != "" {
		u.Password = upd.Password
	}
	return nil
}

func newTestIdentity(users store.UserStore) *Identity {
	return NewIdentity(users, auth.New("test-secret"), "admin@example.com", "hunter2pass")
}

func TestRegisterPasswordLength(t *testing.T) {
	svc := newTestIdentity(newMemUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "seven77")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	token, err := svc.Register(ctx, "Asha", "asha@example.com", "eight888")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterClassifiesIdentifier(t *testing.T) {
	users := newMemUserStore()
	svc := newTestIdentity(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)
	u, err := users.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Empty(t, u.Phone)

	_, err = svc.Register(ctx, "Ravi", "9876543210", "password1")
	require.NoError(t, err)
	u, err = users.FindByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Empty(t, u.Email)

	_, err = svc.Register(ctx, "Nobody", "not-an-identifier", "password1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nine digits is neither a phone nor an email.
	_, err = svc.Register(ctx, "Nobody", "987654321", "password1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterDuplicateIdentifier(t *testing.T) {
	svc := newTestIdentity(newMemUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Imposter", "asha@example.com", "password2")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Register(ctx, "Ravi", "9876543210", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Imposter", "9876543210", "password2")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	users := newMemUserStore()
	svc := newTestIdentity(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)

	u, err := users.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", u.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password1")))
}

func TestLoginDoesNotLeakWhichFactorFailed(t *testing.T) {
	svc := newTestIdentity(newMemUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "asha@example.com", "wrong-password")
	_, unknownUser := svc.Login(ctx, "ghost@example.com", "password1")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLoginByEmailAndPhone(t *testing.T) {
	svc := newTestIdentity(newMemUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Asha", "asha@example.com", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Ravi", "9876543210", "password2")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "asha@example.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = svc.Login(ctx, "9876543210", "password2")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAdminLogin(t *testing.T) {
	svc := newTestIdentity(newMemUserStore())

	token, err := svc.AdminLogin("admin@example.com", "hunter2pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.AdminLogin("admin@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.AdminLogin("other@example.com", "hunter2pass")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminLoginDisabledWithoutConfig(t *testing.T) {
	svc := NewIdentity(newMemUserStore(), auth.New("test-secret"), "", "")

	_, err := svc.AdminLogin("", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func registerTestUser(t *testing.T, svc *Identity, users *memUserStore, identifier string) *domain.User {
	t.Helper()
	_, err := svc.Register(context.Background(), "Asha", identifier, "password1")
	require.NoError(t, err)
	var user *domain.User
	for _, u := range users.users {
		if u.Email == identifier || u.Phone == identifier {
			cp := *u
			user = &cp
		}
	}
	require.NotNil(t, user)
	return user
}

func TestUpdateProfileFields(t *testing.T) {
	users := newMemUserStore()
	svc := newTestIdentity(users)
	ctx := context.Background()
	user := registerTestUser(t, svc, users, "asha@example.com")

	updated, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{
		Name:  "Asha R",
		Phone: "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.Name)
	assert.Equal(t, "9876543210", updated.Phone)
	assert.Equal(t, "asha@example.com", updated.Email)
}

func TestUpdateProfileValidatesFormats(t *testing.T) {
	users := newMemUserStore()
	svc := newTestIdentity(users)
	ctx := context.Background()
	user := registerTestUser(t, svc, users, "asha@example.com")

	_, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Email: "not-an-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Phone: "12345"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProfileRejectsTakenIdentifier(t *testing.T) {
	users := newMemUserStore()
	svc := newTestIdentity(users)
	ctx := context.Background()
	user := registerTestUser(t, svc, users, "asha@example.com")
	registerTestUser(t, svc, users, "ravi@example.com")

	_, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Email: "ravi@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Re-submitting your own email is not a conflict.
	_, err = svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Email: "asha@example.com"})
	assert.NoError(t, err)
}

func TestUpdateProfilePasswordChange(t *testing.T) {
	users := newMemUserStore()
	svc := newTestIdentity(users)
	ctx := context.Background()
	user := registerTestUser(t, svc, users, "asha@example.com")

	_, err := svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Password: "password1", NewPassword: "short77"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Password: "wrong-one", NewPassword: "password2"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{NewPassword: "password2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateProfile(ctx, user.ID.Hex(), ProfileUpdate{Password: "password1", NewPassword: "password2"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "asha@example.com", "password2")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "asha@example.com", "password1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProfileUnknownUser(t *testing.T) {
	svc := newTestIdentity(newMemUserStore())

	_, err := svc.Profile(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
