package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignUpInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
}

type Session struct {
	Token     string                    `json:"token"`
	ExpiresAt time.Time                 `json:"expires_at"`
	AgentID   string                    `json:"agent_id"`
	Email     string                    `json:"email"`
	Status    entity.VerificationStatus `json:"verification_status"`
}

type AuthUseCase struct {
	Agents   entity.AgentRepositoryInterface
	Profiles entity.ProfileRepositoryInterface
	Store    *VerificationStore
	Hasher   PasswordHasher
	Tokens   TokenIssuer
}

func NewAuthUseCase(
	agents entity.AgentRepositoryInterface,
	profiles entity.ProfileRepositoryInterface,
	store *VerificationStore,
	hasher PasswordHasher,
	tokens TokenIssuer,
) *AuthUseCase {
	return &AuthUseCase{Agents: agents, Profiles: profiles, Store: store, Hasher: hasher, Tokens: tokens}
}

func (uc *AuthUseCase) SignIn(ctx context.Context, input SignInInput) (*Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := checkInput(input); err != nil {
		return nil, err
	}

	agent, err := uc.Agents.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, technicalError("SIGNIN_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	if err := uc.Hasher.Compare(agent.PasswordHash, input.Password); err != nil {
		logger.WithField("agent_id", agent.ID).Warn("🔒 senha incorreta")
		return nil, ErrInvalidCredentials
	}

	return uc.session(ctx, agent)
}

// SignUp cria o apporteur e o perfil; se o perfil falhar, o apporteur é removido.
func (uc *AuthUseCase) SignUp(ctx context.Context, input SignUpInput) (*Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := checkInput(input); err != nil {
		return nil, err
	}

	if _, err := uc.Agents.FindByEmail(ctx, input.Email); err == nil {
		return nil, &DomainError{Kind: KindConflict, Code: "EMAIL_TAKEN", Message: "Un compte existe déjà avec cet email.", Err: entity.ErrEmailAlreadyExists}
	} else if !errors.Is(err, entity.ErrAgentNotFound) {
		return nil, technicalError("SIGNUP_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}

	hash, err := uc.Hasher.Hash(input.Password)
	if err != nil {
		return nil, technicalError("SIGNUP_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	agent, err := entity.NewAgent(input.Email, hash)
	if err != nil {
		return nil, validationError("VALIDATION_ERROR", err.Error(), nil)
	}

	profile := &entity.Profile{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     input.Email,
		Phone:     strings.TrimSpace(input.Phone),
	}

	saga := NewSaga()
	saga.AddStep("create agent",
		func(ctx context.Context) error { return uc.Agents.Create(ctx, agent) },
		func(ctx context.Context) error { return uc.Agents.Delete(ctx, agent.ID) },
	)
	saga.AddStep("create profile",
		func(ctx context.Context) error { return uc.Profiles.SaveProfile(ctx, agent.ID, profile) },
		nil,
	)
	if err := saga.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			return nil, &DomainError{Kind: KindConflict, Code: "EMAIL_TAKEN", Message: "Un compte existe déjà avec cet email.", Err: err}
		}
		return nil, technicalError("SIGNUP_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}

	logger.WithField("agent_id", agent.ID).Info("✅ novo apporteur cadastrado")
	return uc.session(ctx, agent)
}

func (uc *AuthUseCase) session(ctx context.Context, agent *entity.Agent) (*Session, error) {
	status, err := uc.Store.Status(ctx, agent.ID)
	if err != nil {
		return nil, err
	}
	token, exp, err := uc.Tokens.Issue(agent.ID)
	if err != nil {
		return nil, technicalError("TOKEN_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	return &Session{Token: token, ExpiresAt: exp, AgentID: agent.ID, Email: agent.Email, Status: status}, nil
}
