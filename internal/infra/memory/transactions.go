package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type TransactionStore struct {
	Behavior

	mu   sync.RWMutex
	rows []*entity.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) ListByAgent(ctx context.Context, agentID string) ([]*entity.Transaction, error) {
	if err := s.simulate(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.Transaction, 0)
	for _, t := range s.rows {
		if t.AgentID == agentID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *TransactionStore) Create(ctx context.Context, t *entity.Transaction) error {
	if err := s.simulate(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = fmt.Sprintf("TRX-%03d", len(s.rows)+1)
	}
	cp := *t
	s.rows = append(s.rows, &cp)
	return nil
}
