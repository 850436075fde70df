package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

// StatusChange é entregue aos assinantes depois que a transição foi persistida.
type StatusChange struct {
	AgentID string
	From    entity.VerificationStatus
	To      entity.VerificationStatus
}

type StatusListener func(ctx context.Context, change StatusChange)

// VerificationStore é a fonte única do status de verificação. É criado na
// composição e injetado em quem lê ou altera o status.
type VerificationStore struct {
	repo entity.StatusRepository

	writeMu sync.Mutex // serializa leitura-checagem-escrita das transições

	mu        sync.RWMutex
	closed    bool
	nextID    int
	listeners map[int]StatusListener
}

func NewVerificationStore(repo entity.StatusRepository) *VerificationStore {
	return &VerificationStore{
		repo:      repo,
		listeners: make(map[int]StatusListener),
	}
}

func (s *VerificationStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Status lê o status atual. Sem registro persistido, o apporteur está em waiting_for_doc.
func (s *VerificationStore) Status(ctx context.Context, agentID string) (entity.VerificationStatus, error) {
	if s.isClosed() {
		return "", ErrStoreClosed
	}
	return s.read(ctx, agentID)
}

func (s *VerificationStore) read(ctx context.Context, agentID string) (entity.VerificationStatus, error) {
	status, err := s.repo.GetVerificationStatus(ctx, agentID)
	if err != nil {
		if errors.Is(err, entity.ErrAgentNotFound) {
			return "", &DomainError{Kind: KindNotFound, Code: "AGENT_NOT_FOUND", Message: "Apporteur introuvable.", Err: err}
		}
		return "", technicalError("STATUS_READ_FAILED", "Impossible de lire le statut de vérification.", err)
	}
	if status == "" {
		return entity.StatusWaitingForDoc, nil
	}
	return status, nil
}

// SetStatus valida a transição, persiste e avisa os assinantes de forma síncrona.
func (s *VerificationStore) SetStatus(ctx context.Context, agentID string, next entity.VerificationStatus) error {
	if s.isClosed() {
		return ErrStoreClosed
	}

	s.writeMu.Lock()
	from, err := s.read(ctx, agentID)
	if err != nil {
		s.writeMu.Unlock()
		return err
	}
	if err := entity.ValidateVerificationTransition(from, next); err != nil {
		s.writeMu.Unlock()
		return &DomainError{
			Kind:    KindValidation,
			Code:    "INVALID_STATUS_TRANSITION",
			Message: "Changement de statut impossible : " + from.Label() + " → " + next.Label() + ".",
			Err:     err,
		}
	}
	if err := s.repo.UpdateVerificationStatus(ctx, agentID, next); err != nil {
		s.writeMu.Unlock()
		return technicalError("STATUS_WRITE_FAILED", "Impossible de mettre à jour le statut de vérification.", err)
	}
	s.writeMu.Unlock()

	logger.WithFields(logrus.Fields{
		"agent_id": agentID,
		"from":     from,
		"to":       next,
	}).Info("🔄 status de verificação alterado")

	change := StatusChange{AgentID: agentID, From: from, To: next}
	for _, fn := range s.snapshotListeners() {
		fn(ctx, change)
	}
	return nil
}

func (s *VerificationStore) snapshotListeners() []StatusListener {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids) // ordem de inscrição
	out := make([]StatusListener, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}

// Subscribe registra um assinante e devolve a função que o remove.
func (s *VerificationStore) Subscribe(fn StatusListener) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}, nil
}

// Close encerra o ciclo de vida do store; chamadas posteriores falham com ErrStoreClosed.
func (s *VerificationStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.listeners = make(map[int]StatusListener)
}
