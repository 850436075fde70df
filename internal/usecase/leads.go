package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type LeadsUseCase struct {
	Directory LeadDirectory
}

func NewLeadsUseCase(dir LeadDirectory) *LeadsUseCase {
	return &LeadsUseCase{Directory: dir}
}

// List devolve os leads do apporteur na ordem do diretório.
func (uc *LeadsUseCase) List(ctx context.Context, agentID string) ([]*entity.Lead, error) {
	leads, err := uc.Directory.ListLeads(ctx, agentID)
	if err != nil {
		return nil, technicalError("LEADS_UNAVAILABLE", "Impossible de charger vos leads. Veuillez réessayer plus tard.", err)
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	return leads, nil
}

func (uc *LeadsUseCase) Get(ctx context.Context, agentID, id string) (*entity.Lead, error) {
	lead, err := uc.Directory.GetLead(ctx, agentID, id)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, &DomainError{
				Kind:    KindNotFound,
				Code:    "LEAD_NOT_FOUND",
				Message: "Le lead que vous recherchez n'existe pas ou a été supprimé.",
				Err:     err,
			}
		}
		return nil, technicalError("LEAD_UNAVAILABLE", "Impossible de charger les détails du lead. Veuillez réessayer plus tard.", err)
	}
	return lead, nil
}
