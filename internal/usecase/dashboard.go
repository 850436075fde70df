package usecase

import (
	"context"
	"sort"
	"strconv"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

const recentLeadsLimit = 4

type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

// VerificationCard é o bloco de verificação do painel: formulário de envio
// ou mensagem de status, conforme o estado.
type VerificationCard struct {
	Status     entity.VerificationStatus `json:"status"`
	Title      string                    `json:"title"`
	Message    string                    `json:"message"`
	ShowUpload bool                      `json:"show_upload"`
	Accept     string                    `json:"accept,omitempty"`
}

type Dashboard struct {
	Verification VerificationCard `json:"verification"`
	Stats        []StatCard       `json:"stats,omitempty"`
	RecentLeads  []*entity.Lead   `json:"recent_leads,omitempty"`
}

type DashboardUseCase struct {
	Store        *VerificationStore
	Directory    LeadDirectory
	Transactions entity.TransactionRepositoryInterface
}

func NewDashboardUseCase(store *VerificationStore, dir LeadDirectory, tx entity.TransactionRepositoryInterface) *DashboardUseCase {
	return &DashboardUseCase{Store: store, Directory: dir, Transactions: tx}
}

func NewVerificationCard(status entity.VerificationStatus) VerificationCard {
	card := VerificationCard{Status: status}
	switch status {
	case entity.StatusPending:
		card.Title = "En attente de validation"
		card.Message = "Votre document d'identité a été envoyé et est en cours d'examen. Vous serez notifié une fois la vérification terminée."
	case entity.StatusValidated:
		card.Title = "Compte vérifié"
		card.Message = "Votre compte a été vérifié avec succès. Vous pouvez maintenant soumettre des leads et accéder à toutes les fonctionnalités."
	case entity.StatusRejected:
		card.Title = "Vérification refusée"
		card.Message = "Votre document n'a pas pu être validé. Veuillez envoyer un nouveau document d'identité."
		card.ShowUpload = true
	default:
		card.Title = "Vérification d'identité requise"
		card.Message = "Pour pouvoir soumettre des leads, veuillez télécharger une pièce d'identité valide."
		card.ShowUpload = true
	}
	if card.ShowUpload {
		card.Accept = ".jpg,.jpeg,.png,.pdf"
	}
	return card
}

// Execute monta o painel. Se os leads ou as transações não carregarem, o painel
// é devolvido mesmo assim, sem estatísticas, junto com o erro.
func (uc *DashboardUseCase) Execute(ctx context.Context, agentID string) (*Dashboard, error) {
	status, err := uc.Store.Status(ctx, agentID)
	if err != nil {
		return nil, err
	}

	out := &Dashboard{Verification: NewVerificationCard(status)}
	if status != entity.StatusValidated {
		return out, nil
	}

	leads, err := uc.Directory.ListLeads(ctx, agentID)
	if err != nil {
		return out, technicalError("LEADS_UNAVAILABLE", "Impossible de charger vos leads. Veuillez réessayer plus tard.", err)
	}
	txs, err := uc.Transactions.ListByAgent(ctx, agentID)
	if err != nil {
		return out, technicalError("TRANSACTIONS_UNAVAILABLE", "Impossible de charger vos transactions.", err)
	}

	active, sold := 0, 0
	for _, l := range leads {
		if l.Status.IsActive() {
			active++
		}
		if l.Status == entity.LeadSold {
			sold++
		}
	}

	out.Stats = []StatCard{
		{Title: "Total des leads", Value: strconv.Itoa(len(leads)), Icon: "users"},
		{Title: "Leads actifs", Value: strconv.Itoa(active), Icon: "clock"},
		{Title: "Leads convertis", Value: strconv.Itoa(sold), Icon: "check-circle"},
		{Title: "Commissions gagnées", Value: FormatEuro(entity.TransactionTotal(txs)), Icon: "euro"},
	}
	out.RecentLeads = recentLeads(leads, recentLeadsLimit)
	return out, nil
}

func recentLeads(leads []*entity.Lead, n int) []*entity.Lead {
	sorted := make([]*entity.Lead, len(leads))
	copy(sorted, leads)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.After(sorted[j].SubmittedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
