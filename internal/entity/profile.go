package entity

import (
	"context"
	"strings"
)

// Profile: dados pessoais do apporteur, editáveis na página Paramètres.
type Profile struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
}

func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// BankDetails: coordenadas bancárias para o pagamento das comissões.
type BankDetails struct {
	IBAN          string `json:"iban" validate:"required"`
	BICSwift      string `json:"bic_swift" validate:"required"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountHolder string `json:"account_holder" validate:"required"`
}

type ProfileRepositoryInterface interface {
	GetProfile(ctx context.Context, agentID string) (*Profile, error)
	SaveProfile(ctx context.Context, agentID string, p *Profile) error
	GetBankDetails(ctx context.Context, agentID string) (*BankDetails, error)
	SaveBankDetails(ctx context.Context, agentID string, b *BankDetails) error
}
