package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

const (
	DemoAgentID = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	DemoEmail   = "jean.dupont@example.com"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func amount(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DemoLeads são os leads de exemplo do apporteur de demonstração.
func DemoLeads() []*entity.Lead {
	return []*entity.Lead{
		{
			ID: "LD-2023-001", AgentID: DemoAgentID, Client: "Marie Dubois",
			Address: "123 Avenue des Champs-Élysées, Paris", Status: entity.LeadInContact,
			SubmittedAt: date(2023, time.June, 15), Description: "Appartement 3 pièces avec vue sur la Tour Eiffel",
			Email: "marie.dubois@example.com", Phone: "06 12 34 56 78", PropertyType: "Appartement",
		},
		{
			ID: "LD-2023-002", AgentID: DemoAgentID, Client: "Thomas Laurent",
			Address: "45 Rue de la République, Lyon", Status: entity.LeadVisitScheduled,
			SubmittedAt: date(2023, time.July, 8), Description: "Maison de ville avec jardin",
			Email: "thomas.laurent@example.com", Phone: "07 23 45 67 89", PropertyType: "Maison",
		},
		{
			ID: "LD-2023-003", AgentID: DemoAgentID, Client: "Sophie Martin",
			Address: "78 Boulevard Victor Hugo, Nice", Status: entity.LeadOfferPending,
			SubmittedAt: date(2023, time.July, 22), Description: "Studio proche de la plage",
			Email: "sophie.martin@example.com", Phone: "06 34 56 78 90", PropertyType: "Appartement",
		},
		{
			ID: "LD-2023-004", AgentID: DemoAgentID, Client: "Alexandre Petit",
			Address: "15 Place de la Comédie, Montpellier", Status: entity.LeadSold,
			SubmittedAt: date(2023, time.August, 4), Commission: amount(2500), Description: "Duplex en centre-ville",
			Email: "alexandre.petit@example.com", Phone: "07 45 67 89 01", PropertyType: "Appartement",
		},
		{
			ID: "LD-2023-005", AgentID: DemoAgentID, Client: "Camille Leroy",
			Address: "29 Rue des Carmes, Bordeaux", Status: entity.LeadCancelled,
			SubmittedAt: date(2023, time.August, 17), Description: "Le client a changé d'avis",
			Email: "camille.leroy@example.com", Phone: "06 56 78 90 12", PropertyType: "Maison",
		},
	}
}

func DemoTransactions() []*entity.Transaction {
	return []*entity.Transaction{
		{ID: "TRX-001", AgentID: DemoAgentID, Date: date(2023, time.August, 15), Amount: decimal.NewFromInt(850), Status: entity.TransactionPaid, LeadID: "LD-2023-001", Property: "123 Avenue des Champs-Élysées, Paris"},
		{ID: "TRX-002", AgentID: DemoAgentID, Date: date(2023, time.September, 22), Amount: decimal.NewFromInt(1200), Status: entity.TransactionPaid, LeadID: "LD-2023-004", Property: "15 Place de la Comédie, Montpellier"},
		{ID: "TRX-003", AgentID: DemoAgentID, Date: date(2023, time.October, 10), Amount: decimal.NewFromInt(800), Status: entity.TransactionPending, LeadID: "LD-2023-003", Property: "78 Boulevard Victor Hugo, Nice"},
	}
}

func DemoProfile() entity.Profile {
	return entity.Profile{
		FirstName: "Jean",
		LastName:  "Dupont",
		Email:     DemoEmail,
		Phone:     "06 12 34 56 78",
		Address:   "123 Rue de Paris",
		City:      "Paris",
		ZipCode:   "75001",
	}
}

func DemoBankDetails() entity.BankDetails {
	return entity.BankDetails{
		IBAN:          "FR76 3000 4000 0100 0000 0000 000",
		BICSwift:      "BNPAFRPP",
		BankName:      "BNP Paribas",
		AccountHolder: "Jean Dupont",
	}
}

// SeedDemo cria o apporteur de demonstração já validado, com perfil, banco,
// cinco leads e três transações.
func SeedDemo(ctx context.Context, accounts *Accounts, leads *LeadDirectory, txs *TransactionStore, passwordHash string) error {
	now := time.Now()
	agent := &entity.Agent{
		ID:                 DemoAgentID,
		Email:              DemoEmail,
		PasswordHash:       passwordHash,
		VerificationStatus: entity.StatusValidated,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := accounts.Create(ctx, agent); err != nil {
		return err
	}

	profile := DemoProfile()
	if err := accounts.SaveProfile(ctx, DemoAgentID, &profile); err != nil {
		return err
	}
	bank := DemoBankDetails()
	if err := accounts.SaveBankDetails(ctx, DemoAgentID, &bank); err != nil {
		return err
	}

	for i, l := range DemoLeads() {
		leads.seed(l, i+1)
	}
	for _, t := range DemoTransactions() {
		if err := txs.Create(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
