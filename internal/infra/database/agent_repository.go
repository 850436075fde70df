package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

// AgentRepository guarda os apporteurs e o status de verificação de cada um.
type AgentRepository struct {
	DB *sql.DB
}

func NewAgentRepository(db *sql.DB) *AgentRepository {
	return &AgentRepository{DB: db}
}

func (r *AgentRepository) Create(ctx context.Context, a *entity.Agent) error {
	query := `
		INSERT INTO agents (id, email, password_hash, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.Email,
		a.PasswordHash,
		a.VerificationStatus,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrEmailAlreadyExists
		}
		logrus.WithError(err).Error("erro crítico no banco ao criar apporteur")
		return err
	}
	return nil
}

func (r *AgentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	return err
}

const agentColumns = `id, email, password_hash, verification_status, created_at, updated_at`

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+agentColumns+` FROM agents WHERE id = $1`, id)
	return scanAgent(row)
}

func (r *AgentRepository) FindByEmail(ctx context.Context, email string) (*entity.Agent, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+agentColumns+` FROM agents WHERE lower(email) = lower($1)`, email)
	return scanAgent(row)
}

func scanAgent(row *sql.Row) (*entity.Agent, error) {
	var a entity.Agent
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.VerificationStatus, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAgentNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AgentRepository) GetVerificationStatus(ctx context.Context, agentID string) (entity.VerificationStatus, error) {
	var status entity.VerificationStatus
	err := r.DB.QueryRowContext(ctx, `SELECT verification_status FROM agents WHERE id = $1`, agentID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", entity.ErrAgentNotFound
		}
		return "", err
	}
	return status, nil
}

func (r *AgentRepository) UpdateVerificationStatus(ctx context.Context, agentID string, status entity.VerificationStatus) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE agents SET verification_status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), agentID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrAgentNotFound
	}
	return nil
}

func (r *AgentRepository) CountByVerificationStatus(ctx context.Context, status entity.VerificationStatus) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM agents WHERE verification_status = $1`, status).Scan(&n)
	return n, err
}
