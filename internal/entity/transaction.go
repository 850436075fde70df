package entity

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionPaid    TransactionStatus = "Payée"
	TransactionPending TransactionStatus = "En attente"
)

// Transaction é um pagamento de comissão ligado a um lead.
type Transaction struct {
	ID       string            `json:"id"`
	AgentID  string            `json:"-"`
	Date     time.Time         `json:"date"`
	Amount   decimal.Decimal   `json:"amount"`
	Status   TransactionStatus `json:"status"`
	LeadID   string            `json:"lead_id"`
	Property string            `json:"property"`
}

// TransactionTotal soma todas as linhas exibidas, pagas ou em espera.
func TransactionTotal(rows []*Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range rows {
		total = total.Add(t.Amount)
	}
	return total
}

type TransactionRepositoryInterface interface {
	ListByAgent(ctx context.Context, agentID string) ([]*Transaction, error)
	Create(ctx context.Context, t *Transaction) error
}
