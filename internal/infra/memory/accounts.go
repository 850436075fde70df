package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

// Accounts guarda apporteurs, status de verificação, perfis e dados bancários.
type Accounts struct {
	Behavior

	mu       sync.RWMutex
	agents   map[string]*entity.Agent
	statuses map[string]entity.VerificationStatus
	profiles map[string]entity.Profile
	banks    map[string]entity.BankDetails
}

func NewAccounts() *Accounts {
	return &Accounts{
		agents:   make(map[string]*entity.Agent),
		statuses: make(map[string]entity.VerificationStatus),
		profiles: make(map[string]entity.Profile),
		banks:    make(map[string]entity.BankDetails),
	}
}

func (a *Accounts) Create(ctx context.Context, agent *entity.Agent) error {
	if err := a.simulate(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.agents {
		if strings.EqualFold(existing.Email, agent.Email) {
			return entity.ErrEmailAlreadyExists
		}
	}
	cp := *agent
	a.agents[agent.ID] = &cp
	a.statuses[agent.ID] = agent.VerificationStatus
	return nil
}

func (a *Accounts) Delete(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.agents, id)
	delete(a.statuses, id)
	delete(a.profiles, id)
	delete(a.banks, id)
	return nil
}

func (a *Accounts) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	if err := a.simulate(ctx); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	agent, ok := a.agents[id]
	if !ok {
		return nil, entity.ErrAgentNotFound
	}
	return a.withStatus(agent), nil
}

func (a *Accounts) FindByEmail(ctx context.Context, email string) (*entity.Agent, error) {
	if err := a.simulate(ctx); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, agent := range a.agents {
		if strings.EqualFold(agent.Email, email) {
			return a.withStatus(agent), nil
		}
	}
	return nil, entity.ErrAgentNotFound
}

func (a *Accounts) withStatus(agent *entity.Agent) *entity.Agent {
	cp := *agent
	if st, ok := a.statuses[agent.ID]; ok {
		cp.VerificationStatus = st
	}
	return &cp
}

func (a *Accounts) GetVerificationStatus(ctx context.Context, agentID string) (entity.VerificationStatus, error) {
	if err := a.simulate(ctx); err != nil {
		return "", err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.statuses[agentID], nil
}

func (a *Accounts) UpdateVerificationStatus(ctx context.Context, agentID string, status entity.VerificationStatus) error {
	if err := a.simulate(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.statuses[agentID] = status
	if agent, ok := a.agents[agentID]; ok {
		agent.VerificationStatus = status
		agent.UpdatedAt = time.Now()
	}
	return nil
}

func (a *Accounts) CountByVerificationStatus(ctx context.Context, status entity.VerificationStatus) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	n := 0
	for _, st := range a.statuses {
		if st == status {
			n++
		}
	}
	return n, nil
}

func (a *Accounts) GetProfile(ctx context.Context, agentID string) (*entity.Profile, error) {
	if err := a.simulate(ctx); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	p, ok := a.profiles[agentID]
	if !ok {
		return nil, entity.ErrAgentNotFound
	}
	return &p, nil
}

func (a *Accounts) SaveProfile(ctx context.Context, agentID string, p *entity.Profile) error {
	if err := a.simulate(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.profiles[agentID] = *p
	return nil
}

// GetBankDetails devolve um registro vazio quando o apporteur ainda não cadastrou o banco.
func (a *Accounts) GetBankDetails(ctx context.Context, agentID string) (*entity.BankDetails, error) {
	if err := a.simulate(ctx); err != nil {
		return nil, err
	}
	a.mu.RLock()
	defer a.mu.RUnlock()

	b := a.banks[agentID]
	return &b, nil
}

func (a *Accounts) SaveBankDetails(ctx context.Context, agentID string, b *entity.BankDetails) error {
	if err := a.simulate(ctx); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.banks[agentID] = *b
	return nil
}
