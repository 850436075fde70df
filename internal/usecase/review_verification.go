package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type ReviewVerificationInput struct {
	Status entity.VerificationStatus `json:"status" validate:"required"`
}

// ReviewVerificationUseCase é o controle manual de revisão de identidade.
type ReviewVerificationUseCase struct {
	Agents entity.AgentRepositoryInterface
	Store  *VerificationStore
}

func NewReviewVerificationUseCase(agents entity.AgentRepositoryInterface, store *VerificationStore) *ReviewVerificationUseCase {
	return &ReviewVerificationUseCase{Agents: agents, Store: store}
}

func (uc *ReviewVerificationUseCase) Execute(ctx context.Context, agentID string, input ReviewVerificationInput) (entity.VerificationStatus, error) {
	if err := checkInput(input); err != nil {
		return "", err
	}
	if _, err := uc.Agents.FindByID(ctx, agentID); err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			return "", &DomainError{Kind: KindNotFound, Code: "AGENT_NOT_FOUND", Message: "Apporteur introuvable.", Err: err}
		}
		return "", technicalError("AGENT_UNAVAILABLE", "Impossible de charger l'apporteur.", err)
	}
	if err := uc.Store.SetStatus(ctx, agentID, input.Status); err != nil {
		return "", err
	}
	return input.Status, nil
}
