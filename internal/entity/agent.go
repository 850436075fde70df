package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Agent é o apporteur d'affaires, usuário da aplicação.
type Agent struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Factory
func NewAgent(email, passwordHash string) (*Agent, error) {
	agent := &Agent{
		ID:                 uuid.New().String(),
		Email:              email,
		PasswordHash:       passwordHash,
		VerificationStatus: StatusWaitingForDoc,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := agent.Validate(); err != nil {
		return nil, err
	}
	return agent, nil
}

func (a *Agent) Validate() error {
	if a.Email == "" {
		return errors.New("email is required")
	}
	if a.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	if !a.VerificationStatus.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

type AgentRepositoryInterface interface {
	Create(ctx context.Context, a *Agent) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Agent, error)
	FindByEmail(ctx context.Context, email string) (*Agent, error)
}
