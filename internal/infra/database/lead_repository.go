package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

// LeadRepository é o diretório de leads no Postgres.
type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `id, agent_id, client, address, status, submitted_at, commission,
	COALESCE(description, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(property_type, ''), COALESCE(property_size, 0)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		l          entity.Lead
		commission decimal.NullDecimal
	)
	err := row.Scan(
		&l.ID, &l.AgentID, &l.Client, &l.Address, &l.Status, &l.SubmittedAt, &commission,
		&l.Description, &l.Email, &l.Phone, &l.PropertyType, &l.PropertySize,
	)
	if err != nil {
		return nil, err
	}
	if commission.Valid {
		c := commission.Decimal
		l.Commission = &c
	}
	return &l, nil
}

func (r *LeadRepository) ListLeads(ctx context.Context, agentID string) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE agent_id = $1 ORDER BY submitted_at, id`, agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) GetLead(ctx context.Context, agentID, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND ($2 = '' OR agent_id = $2)`

	l, err := scanLead(r.DB.QueryRowContext(ctx, query, id, agentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}
	return l, nil
}

// SubmitLead reserva o próximo número do ano e grava o lead na mesma transação.
func (r *LeadRepository) SubmitLead(ctx context.Context, lead *entity.Lead) (string, error) {
	if lead.SubmittedAt.IsZero() {
		lead.SubmittedAt = time.Now()
	}
	year := lead.SubmittedAt.Year()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var seq int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO lead_sequences (year, last) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last = lead_sequences.last + 1
		RETURNING last
	`, year).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("sequência de leads: %w", err)
	}

	lead.ID = entity.FormatLeadID(year, seq)

	var commission decimal.NullDecimal
	if lead.Commission != nil {
		commission = decimal.NewNullDecimal(*lead.Commission)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO leads (id, agent_id, client, address, status, submitted_at, commission,
			description, email, phone, property_type, property_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		lead.ID,
		lead.AgentID,
		lead.Client,
		lead.Address,
		lead.Status,
		lead.SubmittedAt,
		commission,
		nullString(lead.Description),
		nullString(lead.Email),
		nullString(lead.Phone),
		nullString(lead.PropertyType),
		lead.PropertySize,
	)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return lead.ID, nil
}

func (r *LeadRepository) UpdateLead(ctx context.Context, lead *entity.Lead, previous entity.LeadStatus) error {
	var commission decimal.NullDecimal
	if lead.Commission != nil {
		commission = decimal.NewNullDecimal(*lead.Commission)
	}

	res, err := r.DB.ExecContext(ctx,
		`UPDATE leads SET status = $1, commission = $2 WHERE id = $3 AND status = $4`,
		lead.Status, commission, lead.ID, previous,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// nenhuma linha: o lead não existe ou outro update chegou antes
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM leads WHERE id = $1)`, lead.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return entity.ErrLeadNotFound
	}
	return entity.ErrLeadStatusChanged
}
