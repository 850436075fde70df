package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) ListByAgent(ctx context.Context, agentID string) ([]*entity.Transaction, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, agent_id, date, amount, status, lead_id, property
		FROM transactions WHERE agent_id = $1 ORDER BY date, id
	`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*entity.Transaction{}
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.AgentID, &t.Date, &t.Amount, &t.Status, &t.LeadID, &t.Property); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// Create grava a transação; sem id, gera TRX-NNN pela sequence.
func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	query := `
		INSERT INTO transactions (id, agent_id, date, amount, status, lead_id, property)
		VALUES (COALESCE($1, 'TRX-' || lpad(nextval('transaction_seq')::text, 3, '0')), $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		nullString(t.ID),
		t.AgentID,
		t.Date,
		t.Amount,
		t.Status,
		t.LeadID,
		t.Property,
	).Scan(&t.ID)
}
