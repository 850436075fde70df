package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, agentID string) (*entity.Profile, error) {
	query := `
		SELECT first_name, last_name, email, phone,
		       COALESCE(address, ''), COALESCE(city, ''), COALESCE(zip_code, '')
		FROM profiles WHERE agent_id = $1
	`
	var p entity.Profile
	err := r.DB.QueryRowContext(ctx, query, agentID).Scan(
		&p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Address, &p.City, &p.ZipCode,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrAgentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) SaveProfile(ctx context.Context, agentID string, p *entity.Profile) error {
	query := `
		INSERT INTO profiles (agent_id, first_name, last_name, email, phone, address, city, zip_code, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (agent_id)
		DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			zip_code = EXCLUDED.zip_code,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query,
		agentID,
		p.FirstName,
		p.LastName,
		p.Email,
		p.Phone,
		nullString(p.Address),
		nullString(p.City),
		nullString(p.ZipCode),
	)
	return err
}

// GetBankDetails devolve um registro vazio quando ainda não há dados bancários.
func (r *ProfileRepository) GetBankDetails(ctx context.Context, agentID string) (*entity.BankDetails, error) {
	query := `SELECT iban, bic_swift, bank_name, account_holder FROM bank_details WHERE agent_id = $1`

	var b entity.BankDetails
	err := r.DB.QueryRowContext(ctx, query, agentID).Scan(&b.IBAN, &b.BICSwift, &b.BankName, &b.AccountHolder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.BankDetails{}, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *ProfileRepository) SaveBankDetails(ctx context.Context, agentID string, b *entity.BankDetails) error {
	query := `
		INSERT INTO bank_details (agent_id, iban, bic_swift, bank_name, account_holder, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (agent_id)
		DO UPDATE SET
			iban = EXCLUDED.iban,
			bic_swift = EXCLUDED.bic_swift,
			bank_name = EXCLUDED.bank_name,
			account_holder = EXCLUDED.account_holder,
			updated_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, agentID, b.IBAN, b.BICSwift, b.BankName, b.AccountHolder)
	return err
}
