package memory_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/memory"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

func seeded(t *testing.T) (*memory.Accounts, *memory.LeadDirectory, *memory.TransactionStore) {
	t.Helper()
	accounts := memory.NewAccounts()
	leads := memory.NewLeadDirectory()
	txs := memory.NewTransactionStore()
	require.NoError(t, memory.SeedDemo(context.Background(), accounts, leads, txs, "hash"))
	return accounts, leads, txs
}

func ids(leads []*entity.Lead) []string {
	out := make([]string, 0, len(leads))
	for _, l := range leads {
		out = append(out, l.ID)
	}
	return out
}

func TestListLeadsIsStable(t *testing.T) {
	_, leads, _ := seeded(t)
	want := []string{"LD-2023-001", "LD-2023-002", "LD-2023-003", "LD-2023-004", "LD-2023-005"}

	first, err := leads.ListLeads(context.Background(), memory.DemoAgentID)
	require.NoError(t, err)
	second, err := leads.ListLeads(context.Background(), memory.DemoAgentID)
	require.NoError(t, err)

	assert.Equal(t, want, ids(first))
	assert.Equal(t, want, ids(second))

	other, err := leads.ListLeads(context.Background(), "someone-else")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGetLead(t *testing.T) {
	_, leads, _ := seeded(t)

	lead, err := leads.GetLead(context.Background(), memory.DemoAgentID, "LD-2023-004")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadSold, lead.Status)
	require.NotNil(t, lead.Commission)
	assert.True(t, decimal.NewFromInt(2500).Equal(*lead.Commission))

	_, err = leads.GetLead(context.Background(), memory.DemoAgentID, "LD-9999-999")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	_, err = leads.GetLead(context.Background(), "someone-else", "LD-2023-004")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)

	admin, err := leads.GetLead(context.Background(), "", "LD-2023-004")
	require.NoError(t, err)
	assert.Equal(t, memory.DemoAgentID, admin.AgentID)
}

func TestGetLeadReturnsCopy(t *testing.T) {
	_, leads, _ := seeded(t)

	lead, _ := leads.GetLead(context.Background(), memory.DemoAgentID, "LD-2023-001")
	lead.Status = entity.LeadCancelled

	again, _ := leads.GetLead(context.Background(), memory.DemoAgentID, "LD-2023-001")
	assert.Equal(t, entity.LeadInContact, again.Status)
}

func TestSubmitLeadAssignsSequentialIDs(t *testing.T) {
	_, leads, _ := seeded(t)

	id, err := leads.SubmitLead(context.Background(), &entity.Lead{AgentID: memory.DemoAgentID, SubmittedAt: time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "LD-2023-006", id)

	id, err = leads.SubmitLead(context.Background(), &entity.Lead{AgentID: memory.DemoAgentID, SubmittedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, "LD-2026-001", id)

	all, _ := leads.ListLeads(context.Background(), memory.DemoAgentID)
	assert.Len(t, all, 7)
	assert.Equal(t, "LD-2026-001", all[6].ID)
}

func TestFailureInjection(t *testing.T) {
	_, leads, _ := seeded(t)
	leads.FailWith(errors.New("service indisponible"))

	_, err := leads.ListLeads(context.Background(), memory.DemoAgentID)
	assert.EqualError(t, err, "service indisponible")

	leads.FailWith(nil)
	_, err = leads.ListLeads(context.Background(), memory.DemoAgentID)
	assert.NoError(t, err)
}

func TestLatencyHonoursContext(t *testing.T) {
	storage := memory.NewDocumentStorage()
	storage.SetLatency(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := storage.UploadIdentityDocument(ctx, "agent-1", usecase.IdentityDocument{Filename: "cni.pdf"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDocumentStoragePath(t *testing.T) {
	storage := memory.NewDocumentStorage()
	doc := usecase.IdentityDocument{Filename: "../../passeport.png", Content: []byte("img")}

	key, err := storage.UploadIdentityDocument(context.Background(), "agent-1", doc)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "id_documents/agent-1/"))
	assert.True(t, strings.HasSuffix(key, "-passeport.png"))
	stored, ok := storage.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []byte("img"), stored.Content)
}

func TestAccountsStatusAndProfile(t *testing.T) {
	accounts, _, txs := seeded(t)
	ctx := context.Background()

	status, err := accounts.GetVerificationStatus(ctx, memory.DemoAgentID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusValidated, status)

	status, err = accounts.GetVerificationStatus(ctx, "new-agent")
	require.NoError(t, err)
	assert.Empty(t, status)

	n, err := accounts.CountByVerificationStatus(ctx, entity.StatusValidated)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	agent, err := accounts.FindByEmail(ctx, "JEAN.DUPONT@example.com")
	require.NoError(t, err)
	assert.Equal(t, memory.DemoAgentID, agent.ID)

	err = accounts.Create(ctx, &entity.Agent{ID: "x", Email: memory.DemoEmail})
	assert.ErrorIs(t, err, entity.ErrEmailAlreadyExists)

	profile, err := accounts.GetProfile(ctx, memory.DemoAgentID)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", profile.FullName())

	rows, err := txs.ListByAgent(ctx, memory.DemoAgentID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(2850).Equal(entity.TransactionTotal(rows)))
}

func TestUpdateLeadChecksPreviousStatus(t *testing.T) {
	_, leads, _ := seeded(t)
	ctx := context.Background()

	lead, err := leads.GetLead(ctx, "", "LD-2023-002")
	require.NoError(t, err)
	lead.Status = entity.LeadOfferPending

	err = leads.UpdateLead(ctx, lead, entity.LeadInContact)
	assert.ErrorIs(t, err, entity.ErrLeadStatusChanged)

	require.NoError(t, leads.UpdateLead(ctx, lead, entity.LeadVisitScheduled))
	stored, err := leads.GetLead(ctx, "", "LD-2023-002")
	require.NoError(t, err)
	assert.Equal(t, entity.LeadOfferPending, stored.Status)

	missing := &entity.Lead{ID: "LD-1999-001", Status: entity.LeadSold}
	assert.ErrorIs(t, leads.UpdateLead(ctx, missing, entity.LeadOfferPending), entity.ErrLeadNotFound)
}

func TestConcurrentAdvanceRecordsOneCommission(t *testing.T) {
	_, leads, txs := seeded(t)
	leads.SetLatency(20 * time.Millisecond)
	uc := usecase.NewAdvanceLeadUseCase(leads, txs, nil)

	commission := decimal.NewFromInt(3000)
	input := usecase.AdvanceLeadInput{Status: entity.LeadSold, Commission: &commission}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), "LD-2023-003", input)
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			assert.Equal(t, usecase.KindConflict, usecase.KindOf(err))
		}
	}
	assert.Equal(t, 1, failed)

	rows, err := txs.ListByAgent(context.Background(), memory.DemoAgentID)
	require.NoError(t, err)
	count := 0
	for _, tx := range rows {
		if tx.LeadID == "LD-2023-003" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
