package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackside/scorekeeper-api/internal/domain"
	"github.com/trackside/scorekeeper-api/internal/repository"
)

type fakeOperatorRepo struct {
	operators map[string]domain.Operator
	nextID    uint
}

func newFakeOperatorRepo() *fakeOperatorRepo {
	return &fakeOperatorRepo{operators: make(map[string]domain.Operator)}
}

func (f *fakeOperatorRepo) Create(_ context.Context, operator domain.Operator) (domain.Operator, error) {
	f.nextID++
	operator.ID = f.nextID
	f.operators[operator.Email] = operator
	return operator, nil
}

func (f *fakeOperatorRepo) FindByEmail(_ context.Context, email string) (domain.Operator, error) {
	operator, ok := f.operators[email]
	if !ok {
		return domain.Operator{}, repository.ErrOperatorNotFound
	}
	return operator, nil
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(newFakeOperatorRepo())

	created, err := svc.Signup(ctx, domain.Operator{
		Email:    "judge@trackside.dev",
		Password: "pitlane42",
		Name:     "Head Judge",
		Role:     "judge",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "pitlane42", created.Password, "password must be stored hashed")

	t.Run("login with correct password", func(t *testing.T) {
		operator, err := svc.Login(ctx, "judge@trackside.dev", "pitlane42")
		require.NoError(t, err)
		assert.Equal(t, created.ID, operator.ID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "judge@trackside.dev", "wrong")
		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@trackside.dev", "pitlane42")
		assert.ErrorIs(t, err, ErrOperatorNotFound)
	})

	t.Run("duplicate signup", func(t *testing.T) {
		_, err := svc.Signup(ctx, domain.Operator{
			Email:    "judge@trackside.dev",
			Password: "other1234",
			Role:     "judge",
		})
		assert.ErrorIs(t, err, ErrOperatorEmailExists)
	})
}
