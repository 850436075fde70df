package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

// LeadDirectory mantém os leads em ordem de envio. Os identificadores seguem
// LD-YYYY-NNN, com sequência por ano.
type LeadDirectory struct {
	Behavior

	mu    sync.RWMutex
	leads []*entity.Lead
	seq   map[int]int
	now   func() time.Time
}

func NewLeadDirectory() *LeadDirectory {
	return &LeadDirectory{seq: make(map[int]int), now: time.Now}
}

func (d *LeadDirectory) ListLeads(ctx context.Context, agentID string) ([]*entity.Lead, error) {
	if err := d.simulate(ctx); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*entity.Lead, 0, len(d.leads))
	for _, l := range d.leads {
		if l.AgentID == agentID {
			out = append(out, cloneLead(l))
		}
	}
	return out, nil
}

func (d *LeadDirectory) GetLead(ctx context.Context, agentID, id string) (*entity.Lead, error) {
	if err := d.simulate(ctx); err != nil {
		return nil, err
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, l := range d.leads {
		if l.ID == id && (agentID == "" || l.AgentID == agentID) {
			return cloneLead(l), nil
		}
	}
	return nil, entity.ErrLeadNotFound
}

func (d *LeadDirectory) SubmitLead(ctx context.Context, lead *entity.Lead) (string, error) {
	if err := d.simulate(ctx); err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	stored := cloneLead(lead)
	if stored.SubmittedAt.IsZero() {
		stored.SubmittedAt = d.now()
	}
	if stored.ID == "" {
		year := stored.SubmittedAt.Year()
		d.seq[year]++
		stored.ID = entity.FormatLeadID(year, d.seq[year])
	}
	d.leads = append(d.leads, stored)
	return stored.ID, nil
}

func (d *LeadDirectory) UpdateLead(ctx context.Context, lead *entity.Lead, previous entity.LeadStatus) error {
	if err := d.simulate(ctx); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, l := range d.leads {
		if l.ID == lead.ID {
			if l.Status != previous {
				return entity.ErrLeadStatusChanged
			}
			d.leads[i] = cloneLead(lead)
			return nil
		}
	}
	return entity.ErrLeadNotFound
}

// seed insere um lead com id fixo e ajusta a sequência do ano.
func (d *LeadDirectory) seed(lead *entity.Lead, seq int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	year := lead.SubmittedAt.Year()
	if seq > d.seq[year] {
		d.seq[year] = seq
	}
	d.leads = append(d.leads, cloneLead(lead))
}

func cloneLead(l *entity.Lead) *entity.Lead {
	cp := *l
	if l.Commission != nil {
		c := *l.Commission
		cp.Commission = &c
	}
	return &cp
}
