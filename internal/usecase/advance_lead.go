package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
)

type AdvanceLeadInput struct {
	Status     entity.LeadStatus `json:"status" validate:"required"`
	Commission *decimal.Decimal  `json:"commission,omitempty"`
}

// AdvanceLeadUseCase é o controle de back-office que faz o lead avançar no funil.
// Um lead vendido gera a transação de comissão em espera.
type AdvanceLeadUseCase struct {
	Directory    LeadDirectory
	Transactions entity.TransactionRepositoryInterface
	Queue        QueueProducerInterface
	Now          func() time.Time
}

func NewAdvanceLeadUseCase(dir LeadDirectory, tx entity.TransactionRepositoryInterface, q QueueProducerInterface) *AdvanceLeadUseCase {
	return &AdvanceLeadUseCase{Directory: dir, Transactions: tx, Queue: q, Now: time.Now}
}

func (uc *AdvanceLeadUseCase) Execute(ctx context.Context, leadID string, input AdvanceLeadInput) (*entity.Lead, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	lead, err := uc.Directory.GetLead(ctx, "", leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Kind: KindNotFound, Code: "LEAD_NOT_FOUND", Message: "Lead non trouvé", Err: err}
		}
		return nil, technicalError("LEAD_UNAVAILABLE", "Impossible de charger le lead.", err)
	}

	previous := lead.Status
	if err := lead.Advance(input.Status, input.Commission); err != nil {
		return nil, &DomainError{Kind: KindValidation, Code: "INVALID_LEAD_TRANSITION", Message: err.Error(), Err: err}
	}

	if err := uc.Directory.UpdateLead(ctx, lead, previous); err != nil {
		if errors.Is(err, entity.ErrLeadStatusChanged) {
			return nil, &DomainError{Kind: KindConflict, Code: "LEAD_STATUS_CHANGED", Message: "Le statut du lead a changé entre-temps. Rechargez-le et réessayez.", Err: err}
		}
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{Kind: KindNotFound, Code: "LEAD_NOT_FOUND", Message: "Lead non trouvé", Err: err}
		}
		return nil, technicalError("LEAD_UPDATE_FAILED", "Impossible de mettre à jour le lead.", err)
	}

	if lead.Status == entity.LeadSold {
		tx := &entity.Transaction{
			AgentID:  lead.AgentID,
			Date:     uc.Now(),
			Amount:   *lead.Commission,
			Status:   entity.TransactionPending,
			LeadID:   lead.ID,
			Property: lead.Address,
		}
		if err := uc.Transactions.Create(ctx, tx); err != nil {
			// o lead já foi marcado como vendido; a comissão precisa ser lançada manualmente
			logger.WithError(err).WithField("lead_id", lead.ID).Error("❌ CRITICAL: comissão não registrada")
			return nil, technicalError("COMMISSION_NOT_RECORDED", "Le lead a été mis à jour mais la commission n'a pas été enregistrée.", err)
		}
	}

	publish(ctx, uc.Queue, queue.EventPayload{
		Event:          queue.EventLeadStatusChanged,
		AgentID:        lead.AgentID,
		LeadID:         lead.ID,
		Client:         lead.Client,
		Status:         string(lead.Status),
		PreviousStatus: string(previous),
	})
	return lead, nil
}
