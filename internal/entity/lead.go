package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type LeadStatus string

const (
	LeadInContact      LeadStatus = "En contact"
	LeadVisitScheduled LeadStatus = "Visite programmée"
	LeadOfferPending   LeadStatus = "Offre en cours"
	LeadSold           LeadStatus = "Vendu"
	LeadCancelled      LeadStatus = "Annulé"
)

var leadTransitions = map[LeadStatus]map[LeadStatus]bool{
	LeadInContact:      {LeadVisitScheduled: true, LeadCancelled: true},
	LeadVisitScheduled: {LeadOfferPending: true, LeadCancelled: true},
	LeadOfferPending:   {LeadSold: true, LeadCancelled: true},
	LeadSold:           {},
	LeadCancelled:      {},
}

func (s LeadStatus) IsValid() bool {
	_, ok := leadTransitions[s]
	return ok
}

// IsActive: lead ainda em andamento (nem vendido nem cancelado).
func (s LeadStatus) IsActive() bool {
	return s == LeadInContact || s == LeadVisitScheduled || s == LeadOfferPending
}

// Color devolve as classes do badge usadas pelo front.
func (s LeadStatus) Color() string {
	switch s {
	case LeadInContact:
		return "text-yellow-600 bg-yellow-50"
	case LeadVisitScheduled:
		return "text-blue-600 bg-blue-50"
	case LeadOfferPending:
		return "text-indigo-600 bg-indigo-50"
	case LeadSold:
		return "text-green-600 bg-green-50"
	case LeadCancelled:
		return "text-red-600 bg-red-50"
	default:
		return "text-gray-600 bg-gray-50"
	}
}

func (s LeadStatus) Icon() string {
	switch s {
	case LeadInContact:
		return "clock"
	case LeadVisitScheduled:
		return "users"
	case LeadOfferPending:
		return "file-text"
	case LeadSold:
		return "check-circle"
	case LeadCancelled:
		return "alert-circle"
	default:
		return "bar-chart-3"
	}
}

// StatusBadge é o badge de status desenhado nas listas e no detalhe do lead.
type StatusBadge struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (s LeadStatus) Badge() StatusBadge {
	return StatusBadge{Label: string(s), Color: s.Color(), Icon: s.Icon()}
}

// PropertyTypes são os tipos de bem aceitos no formulário de novo lead.
var PropertyTypes = []string{
	"Appartement",
	"Maison",
	"Villa",
	"Terrain",
	"Local commercial",
	"Immeuble",
	"Autre",
}

type Lead struct {
	ID           string           `json:"id"` // LD-YYYY-NNN
	AgentID      string           `json:"-"`
	Client       string           `json:"client"`
	Address      string           `json:"address"`
	Status       LeadStatus       `json:"status"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	Commission   *decimal.Decimal `json:"commission,omitempty"`
	Description  string           `json:"description,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	PropertyType string           `json:"property_type,omitempty"`
	PropertySize int              `json:"property_size,omitempty"`
}

// FormatLeadID monta o identificador LD-YYYY-NNN.
func FormatLeadID(year, seq int) string {
	return fmt.Sprintf("LD-%04d-%03d", year, seq)
}

// Advance aplica a transição de status do lead. Vendu exige comissão positiva;
// qualquer outro status recusa comissão.
func (l *Lead) Advance(to LeadStatus, commission *decimal.Decimal) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown lead status %q", ErrInvalidStatus, to)
	}
	if !leadTransitions[l.Status][to] {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, l.Status, to)
	}
	if to == LeadSold {
		if commission == nil || !commission.IsPositive() {
			return fmt.Errorf("%w: a sold lead needs a positive commission", ErrInvalidCommission)
		}
	} else if commission != nil {
		return fmt.Errorf("%w: commission only applies to %s", ErrInvalidCommission, LeadSold)
	}
	l.Status = to
	l.Commission = commission
	return nil
}
