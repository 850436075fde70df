package usecase

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
)

// UploadDocumentUseCase conduz um UploadFlow por requisição e impede dois
// envios simultâneos do mesmo apporteur.
type UploadDocumentUseCase struct {
	Storage DocumentStorage
	Store   *VerificationStore
	Queue   QueueProducerInterface

	inflight sync.Map
}

func NewUploadDocumentUseCase(storage DocumentStorage, store *VerificationStore, q QueueProducerInterface) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{Storage: storage, Store: store, Queue: q}
}

// Execute envia o documento. doc nil equivale a confirmar sem arquivo selecionado.
func (uc *UploadDocumentUseCase) Execute(ctx context.Context, agentID string, doc *IdentityDocument) (*UploadResult, error) {
	flow := NewUploadFlow(agentID, uc.Storage, uc.Store)
	if doc == nil {
		return flow.Confirm(ctx)
	}

	status, err := uc.Store.Status(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !status.CanUpload() {
		return nil, &DomainError{
			Kind:    KindConflict,
			Code:    "DOCUMENT_ALREADY_SUBMITTED",
			Message: "Votre document a déjà été envoyé (" + status.Label() + ").",
		}
	}

	if _, busy := uc.inflight.LoadOrStore(agentID, struct{}{}); busy {
		return nil, ErrUploadInProgress
	}
	defer uc.inflight.Delete(agentID)

	if err := flow.SelectFile(*doc); err != nil {
		return nil, err
	}
	result, err := flow.Confirm(ctx)
	if err != nil {
		logger.WithError(err).WithField("agent_id", agentID).Warn("⚠️ envio do documento falhou")
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"agent_id": agentID,
		"path":     result.StoragePath,
		"accepted": result.Accepted,
	}).Info("📄 documento de identidade recebido")

	publish(ctx, uc.Queue, queue.EventPayload{
		Event:       queue.EventDocumentUploaded,
		AgentID:     agentID,
		Status:      string(entity.StatusPending),
		StoragePath: result.StoragePath,
	})
	return result, nil
}
