package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type TransactionsView struct {
	Rows       []*entity.Transaction `json:"rows"`
	Total      decimal.Decimal       `json:"total"`
	TotalLabel string                `json:"total_label"`
}

type TransactionsUseCase struct {
	Repo entity.TransactionRepositoryInterface
}

func NewTransactionsUseCase(repo entity.TransactionRepositoryInterface) *TransactionsUseCase {
	return &TransactionsUseCase{Repo: repo}
}

func (uc *TransactionsUseCase) List(ctx context.Context, agentID string) (*TransactionsView, error) {
	rows, err := uc.Repo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, technicalError("TRANSACTIONS_UNAVAILABLE", "Impossible de charger vos transactions.", err)
	}
	if rows == nil {
		rows = []*entity.Transaction{}
	}
	total := entity.TransactionTotal(rows)
	return &TransactionsView{Rows: rows, Total: total, TotalLabel: FormatEuro(total)}, nil
}

// FormatEuro formata no padrão francês: "2 850 €", "1 234,50 €".
func FormatEuro(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs()

	intPart := d.Truncate(0)
	digits := intPart.String()

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if frac := d.Sub(intPart); !frac.IsZero() {
		cents := d.StringFixed(2)
		out += "," + cents[len(cents)-2:]
	}
	if neg {
		out = "-" + out
	}
	return out + " €"
}
