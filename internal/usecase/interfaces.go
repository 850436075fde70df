package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
)

// LeadDirectory é a fonte dos leads de um apporteur. GetLead com agentID
// vazio procura em todos os apporteurs (uso administrativo). UpdateLead só
// grava se o status guardado ainda for previous; senão devolve
// entity.ErrLeadStatusChanged.
type LeadDirectory interface {
	ListLeads(ctx context.Context, agentID string) ([]*entity.Lead, error)
	GetLead(ctx context.Context, agentID, id string) (*entity.Lead, error)
	SubmitLead(ctx context.Context, lead *entity.Lead) (string, error)
	UpdateLead(ctx context.Context, lead *entity.Lead, previous entity.LeadStatus) error
}

// DocumentStorage guarda o documento de identidade e devolve o caminho no bucket.
type DocumentStorage interface {
	UploadIdentityDocument(ctx context.Context, agentID string, doc IdentityDocument) (string, error)
}

type QueueProducerInterface interface {
	PublishEvent(ctx context.Context, payload queue.EventPayload) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type TokenIssuer interface {
	Issue(agentID string) (token string, expiresAt time.Time, err error)
}

// publish envia o evento sem derrubar a operação que já foi concluída.
func publish(ctx context.Context, q QueueProducerInterface, payload queue.EventPayload) {
	if q == nil {
		return
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = time.Now()
	}
	if err := q.PublishEvent(ctx, payload); err != nil {
		logger.WithError(err).WithField("event", payload.Event).Error("❌ falha ao publicar evento")
	}
}
