package service

import (
	"context"
	"errors"
	"testing"

	"github.com/clairelorenzo/app-backend-6104/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid input hashes the password", func(t *testing.T) {
		t.Parallel()
		var created *models.User
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, u *models.User) error {
			u.ID = 7
			created = u
			return nil
		}

		svc := NewUserService(repo)
		user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "Str0ng!password"})

		require.NoError(t, err)
		assert.Equal(t, uint(7), user.ID)
		require.NotNil(t, created)
		assert.NotEqual(t, "Str0ng!password", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Str0ng!password")))
	})

	t.Run("weak password is rejected before the repo is called", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("create should not be called")
			return nil
		}

		svc := NewUserService(repo)
		_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "short"})
		assertValidationError(t, err)
	})

	t.Run("bad username is rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.Register(ctx, RegisterInput{Username: "_alice", Password: "Str0ng!password"})
		assertValidationError(t, err)
	})

	t.Run("duplicate username propagates the repo error", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return models.NewValidationError("Username already taken")
		}

		svc := NewUserService(repo)
		_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "Str0ng!password"})
		assertValidationError(t, err)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hash := hashFor(t, "Str0ng!password")

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "alice" {
			return &models.User{ID: 1, Username: "alice", Password: hash}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo)

	t.Run("correct credentials", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Authenticate(ctx, "alice", "Str0ng!password")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(ctx, "alice", "wrong-password")
		assertUnauthorizedError(t, err)
	})

	t.Run("unknown username gets the same error as a wrong password", func(t *testing.T) {
		t.Parallel()
		_, errUnknown := svc.Authenticate(ctx, "ghost", "Str0ng!password")
		_, errWrong := svc.Authenticate(ctx, "alice", "wrong-password")
		assertUnauthorizedError(t, errUnknown)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})
}

func TestUserService_GetUserByUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := noopUserRepo()
	repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		if username == "alice" {
			return &models.User{ID: 1, Username: "alice"}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo)

	user, err := svc.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUserByUsername(ctx, "ghost")
	assertNotFoundError(t, err)
}

func TestUserService_UpdateUsername(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("renames and persists", func(t *testing.T) {
		t.Parallel()
		updated := false
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		}
		repo.updateFn = func(_ context.Context, u *models.User) error {
			updated = true
			assert.Equal(t, "alice2", u.Username)
			return nil
		}

		svc := NewUserService(repo)
		user, err := svc.UpdateUsername(ctx, UpdateUsernameInput{UserID: 1, NewUsername: "alice2"})
		require.NoError(t, err)
		assert.Equal(t, "alice2", user.Username)
		assert.True(t, updated)
	})

	t.Run("same name is a no-op", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		}
		repo.updateFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("update should not be called")
			return nil
		}

		svc := NewUserService(repo)
		user, err := svc.UpdateUsername(ctx, UpdateUsernameInput{UserID: 1, NewUsername: "alice"})
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("invalid new name is rejected", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice"}, nil
		}
		svc := NewUserService(repo)
		_, err := svc.UpdateUsername(ctx, UpdateUsernameInput{UserID: 1, NewUsername: "x"})
		assertValidationError(t, err)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	hash := hashFor(t, "Old!password123")

	newRepo := func() *userRepoStub {
		repo := noopUserRepo()
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", Password: hash}, nil
		}
		return repo
	}

	t.Run("wrong current password", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo())
		err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			UserID:          1,
			CurrentPassword: "not-the-password",
			NewPassword:     "NewStr0ng!pass",
		})
		assertUnauthorizedError(t, err)
	})

	t.Run("weak new password", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo())
		err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			UserID:          1,
			CurrentPassword: "Old!password123",
			NewPassword:     "weak",
		})
		assertValidationError(t, err)
	})

	t.Run("stores a new hash", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		var stored string
		repo.updateFn = func(_ context.Context, u *models.User) error {
			stored = u.Password
			return nil
		}

		svc := NewUserService(repo)
		err := svc.UpdatePassword(ctx, UpdatePasswordInput{
			UserID:          1,
			CurrentPassword: "Old!password123",
			NewPassword:     "NewStr0ng!pass",
		})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("NewStr0ng!pass")))
	})
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("boom")
	repo := noopUserRepo()
	repo.deleteFn = func(_ context.Context, id uint) error {
		assert.Equal(t, uint(3), id)
		return repoErr
	}

	svc := NewUserService(repo)
	err := svc.DeleteAccount(context.Background(), 3)
	assert.ErrorIs(t, err, repoErr)
}
