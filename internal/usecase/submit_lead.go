package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
)

// LeadForm são os campos do formulário "Nouveau Lead".
type LeadForm struct {
	ClientFirstName string `json:"client_first_name" validate:"required"`
	ClientLastName  string `json:"client_last_name" validate:"required"`
	ClientEmail     string `json:"client_email" validate:"required,email"`
	ClientPhone     string `json:"client_phone" validate:"required"`
	PropertyAddress string `json:"property_address" validate:"required"`
	PropertyCity    string `json:"property_city" validate:"required"`
	PropertyZip     string `json:"property_zip" validate:"required"`
	PropertyType    string `json:"property_type" validate:"required,property_type"`
	PropertySize    int    `json:"property_size" validate:"required,gt=0"`
	Notes           string `json:"notes"`
}

func (f LeadForm) normalized() LeadForm {
	f.ClientFirstName = strings.TrimSpace(f.ClientFirstName)
	f.ClientLastName = strings.TrimSpace(f.ClientLastName)
	f.ClientEmail = strings.TrimSpace(f.ClientEmail)
	f.ClientPhone = strings.TrimSpace(f.ClientPhone)
	f.PropertyAddress = strings.TrimSpace(f.PropertyAddress)
	f.PropertyCity = strings.TrimSpace(f.PropertyCity)
	f.PropertyZip = strings.TrimSpace(f.PropertyZip)
	f.Notes = strings.TrimSpace(f.Notes)
	return f
}

type SubmitLeadOutput struct {
	ID   string   `json:"id"`
	Form LeadForm `json:"form"` // formulário limpo, pronto para o próximo lead
}

type SubmitLeadUseCase struct {
	Directory LeadDirectory
	Store     *VerificationStore
	Queue     QueueProducerInterface
	Now       func() time.Time
}

func NewSubmitLeadUseCase(dir LeadDirectory, store *VerificationStore, q QueueProducerInterface) *SubmitLeadUseCase {
	return &SubmitLeadUseCase{Directory: dir, Store: store, Queue: q, Now: time.Now}
}

func (uc *SubmitLeadUseCase) Execute(ctx context.Context, agentID string, form LeadForm) (*SubmitLeadOutput, error) {
	form = form.normalized()
	if err := checkInput(form); err != nil {
		return nil, err
	}

	status, err := uc.Store.Status(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if status != entity.StatusValidated {
		return nil, ErrVerificationRequired
	}

	lead := &entity.Lead{
		AgentID:      agentID,
		Client:       form.ClientFirstName + " " + form.ClientLastName,
		Address:      fmt.Sprintf("%s, %s %s", form.PropertyAddress, form.PropertyZip, form.PropertyCity),
		Status:       entity.LeadInContact,
		SubmittedAt:  uc.Now(),
		Description:  form.Notes,
		Email:        form.ClientEmail,
		Phone:        form.ClientPhone,
		PropertyType: form.PropertyType,
		PropertySize: form.PropertySize,
	}

	id, err := uc.Directory.SubmitLead(ctx, lead)
	if err != nil {
		return nil, technicalError("LEAD_SUBMIT_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}

	logger.WithFields(logrus.Fields{
		"agent_id": agentID,
		"lead_id":  id,
	}).Info("🏠 lead recebido")

	publish(ctx, uc.Queue, queue.EventPayload{
		Event:   queue.EventLeadSubmitted,
		AgentID: agentID,
		LeadID:  id,
		Client:  lead.Client,
		Status:  string(lead.Status),
	})

	return &SubmitLeadOutput{ID: id, Form: LeadForm{}}, nil
}
