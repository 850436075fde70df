package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

func signUpInput() usecase.SignUpInput {
	return usecase.SignUpInput{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     "Jean.Dupont@Example.com",
		Phone:     "06 12 34 56 78",
		Password:  "motdepasse",
	}
}

func TestSignUpCreatesAgentAndProfile(t *testing.T) {
	agents := new(MockAgentRepository)
	agents.On("FindByEmail", mock.Anything, "jean.dupont@example.com").Return(nil, entity.ErrAgentNotFound)
	agents.On("Create", mock.Anything, mock.AnythingOfType("*entity.Agent")).Return(nil)

	profiles := new(MockProfileRepository)
	profiles.On("SaveProfile", mock.Anything, mock.Anything, mock.MatchedBy(func(p *entity.Profile) bool {
		return p.FirstName == "Jean" && p.Email == "jean.dupont@example.com"
	})).Return(nil)

	hasher := new(MockHasher)
	hasher.On("Hash", "motdepasse").Return("hashed", nil)

	exp := time.Now().Add(time.Hour)
	tokens := new(MockTokenIssuer)
	tokens.On("Issue", mock.Anything).Return("jwt-token", exp, nil)

	uc := usecase.NewAuthUseCase(agents, profiles, usecase.NewVerificationStore(statusMap{}), hasher, tokens)
	session, err := uc.SignUp(context.Background(), signUpInput())

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", session.Token)
	assert.Equal(t, entity.StatusWaitingForDoc, session.Status)
	assert.Equal(t, "jean.dupont@example.com", session.Email)
	agents.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSignUpRollsBackAgentWhenProfileFails(t *testing.T) {
	agents := new(MockAgentRepository)
	agents.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, entity.ErrAgentNotFound)
	agents.On("Create", mock.Anything, mock.Anything).Return(nil)
	agents.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	profiles := new(MockProfileRepository)
	profiles.On("SaveProfile", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("insert failed"))

	hasher := new(MockHasher)
	hasher.On("Hash", mock.Anything).Return("hashed", nil)
	tokens := new(MockTokenIssuer)

	uc := usecase.NewAuthUseCase(agents, profiles, usecase.NewVerificationStore(statusMap{}), hasher, tokens)
	_, err := uc.SignUp(context.Background(), signUpInput())

	assert.True(t, usecase.IsTechnicalError(err))
	agents.AssertExpectations(t)
	tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	agents := new(MockAgentRepository)
	agents.On("FindByEmail", mock.Anything, "jean.dupont@example.com").Return(&entity.Agent{ID: "agent-1"}, nil)

	uc := usecase.NewAuthUseCase(agents, new(MockProfileRepository), usecase.NewVerificationStore(statusMap{}), new(MockHasher), new(MockTokenIssuer))
	_, err := uc.SignUp(context.Background(), signUpInput())

	assert.Equal(t, usecase.KindConflict, usecase.KindOf(err))
	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)
}

func TestSignUpValidation(t *testing.T) {
	input := signUpInput()
	input.Password = "court"

	uc := usecase.NewAuthUseCase(new(MockAgentRepository), new(MockProfileRepository), usecase.NewVerificationStore(statusMap{}), new(MockHasher), new(MockTokenIssuer))
	_, err := uc.SignUp(context.Background(), input)

	var de *usecase.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "password", de.Fields[0].Field)
}

func TestSignIn(t *testing.T) {
	agent := &entity.Agent{ID: "agent-1", Email: "jean.dupont@example.com", PasswordHash: "hashed"}

	agents := new(MockAgentRepository)
	agents.On("FindByEmail", mock.Anything, "jean.dupont@example.com").Return(agent, nil)
	agents.On("FindByEmail", mock.Anything, "inconnu@example.com").Return(nil, entity.ErrAgentNotFound)

	hasher := new(MockHasher)
	hasher.On("Compare", "hashed", "bonmotdepasse").Return(nil)
	hasher.On("Compare", "hashed", "mauvais").Return(errors.New("mismatch"))

	tokens := new(MockTokenIssuer)
	tokens.On("Issue", "agent-1").Return("jwt-token", time.Now().Add(time.Hour), nil)

	store := usecase.NewVerificationStore(statusMap{"agent-1": entity.StatusValidated})
	uc := usecase.NewAuthUseCase(agents, new(MockProfileRepository), store, hasher, tokens)

	session, err := uc.SignIn(context.Background(), usecase.SignInInput{Email: "jean.dupont@example.com", Password: "bonmotdepasse"})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusValidated, session.Status)

	_, err = uc.SignIn(context.Background(), usecase.SignInInput{Email: "jean.dupont@example.com", Password: "mauvais"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	_, err = uc.SignIn(context.Background(), usecase.SignInInput{Email: "inconnu@example.com", Password: "x"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}
