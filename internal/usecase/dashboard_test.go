package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleLeads() []*entity.Lead {
	return []*entity.Lead{
		{ID: "LD-2023-001", Status: entity.LeadInContact, SubmittedAt: day(2023, 6, 15)},
		{ID: "LD-2023-002", Status: entity.LeadVisitScheduled, SubmittedAt: day(2023, 7, 8)},
		{ID: "LD-2023-003", Status: entity.LeadOfferPending, SubmittedAt: day(2023, 7, 22)},
		{ID: "LD-2023-004", Status: entity.LeadSold, SubmittedAt: day(2023, 8, 4)},
		{ID: "LD-2023-005", Status: entity.LeadCancelled, SubmittedAt: day(2023, 8, 17)},
	}
}

func sampleTransactions() []*entity.Transaction {
	return []*entity.Transaction{
		{ID: "TRX-001", Amount: decimal.NewFromInt(850), Status: entity.TransactionPaid},
		{ID: "TRX-002", Amount: decimal.NewFromInt(1200), Status: entity.TransactionPaid},
		{ID: "TRX-003", Amount: decimal.NewFromInt(800), Status: entity.TransactionPending},
	}
}

func TestDashboardValidatedAgent(t *testing.T) {
	dir := new(MockLeadDirectory)
	dir.On("ListLeads", mock.Anything, "agent-1").Return(sampleLeads(), nil)
	txs := new(MockTransactionRepository)
	txs.On("ListByAgent", mock.Anything, "agent-1").Return(sampleTransactions(), nil)

	uc := usecase.NewDashboardUseCase(usecase.NewVerificationStore(statusMap{"agent-1": entity.StatusValidated}), dir, txs)
	out, err := uc.Execute(context.Background(), "agent-1")

	require.NoError(t, err)
	assert.False(t, out.Verification.ShowUpload)
	assert.Equal(t, "Compte vérifié", out.Verification.Title)

	require.Len(t, out.Stats, 4)
	assert.Equal(t, "5", out.Stats[0].Value)
	assert.Equal(t, "3", out.Stats[1].Value)
	assert.Equal(t, "1", out.Stats[2].Value)
	assert.Equal(t, "2 850 €", out.Stats[3].Value)

	require.Len(t, out.RecentLeads, 4)
	assert.Equal(t, "LD-2023-005", out.RecentLeads[0].ID)
	assert.Equal(t, "LD-2023-002", out.RecentLeads[3].ID)
}

func TestDashboardUnverifiedAgentShowsUploadOnly(t *testing.T) {
	dir := new(MockLeadDirectory)
	txs := new(MockTransactionRepository)

	uc := usecase.NewDashboardUseCase(usecase.NewVerificationStore(statusMap{}), dir, txs)
	out, err := uc.Execute(context.Background(), "agent-1")

	require.NoError(t, err)
	assert.True(t, out.Verification.ShowUpload)
	assert.Equal(t, ".jpg,.jpeg,.png,.pdf", out.Verification.Accept)
	assert.Empty(t, out.Stats)
	dir.AssertNotCalled(t, "ListLeads", mock.Anything, mock.Anything)
}

func TestDashboardLeadFailureStillRenders(t *testing.T) {
	dir := new(MockLeadDirectory)
	dir.On("ListLeads", mock.Anything, "agent-1").Return(nil, errors.New("timeout"))

	uc := usecase.NewDashboardUseCase(usecase.NewVerificationStore(statusMap{"agent-1": entity.StatusValidated}), dir, new(MockTransactionRepository))
	out, err := uc.Execute(context.Background(), "agent-1")

	require.NotNil(t, out)
	assert.True(t, usecase.IsTechnicalError(err))
	assert.Empty(t, out.RecentLeads)
}

func TestTransactionsList(t *testing.T) {
	txs := new(MockTransactionRepository)
	txs.On("ListByAgent", mock.Anything, "agent-1").Return(sampleTransactions(), nil)

	view, err := usecase.NewTransactionsUseCase(txs).List(context.Background(), "agent-1")

	require.NoError(t, err)
	assert.Len(t, view.Rows, 3)
	assert.Equal(t, "2 850 €", view.TotalLabel)
}

func TestFormatEuro(t *testing.T) {
	assert.Equal(t, "850 €", usecase.FormatEuro(decimal.NewFromInt(850)))
	assert.Equal(t, "2 500 €", usecase.FormatEuro(decimal.NewFromInt(2500)))
	assert.Equal(t, "1 234 567 €", usecase.FormatEuro(decimal.NewFromInt(1234567)))
	assert.Equal(t, "1 234,50 €", usecase.FormatEuro(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "0 €", usecase.FormatEuro(decimal.Zero))
}

func TestReviewVerification(t *testing.T) {
	agents := new(MockAgentRepository)
	agents.On("FindByID", mock.Anything, "agent-1").Return(&entity.Agent{ID: "agent-1"}, nil)
	agents.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrAgentNotFound)

	repo := statusMap{"agent-1": entity.StatusPending}
	uc := usecase.NewReviewVerificationUseCase(agents, usecase.NewVerificationStore(repo))

	status, err := uc.Execute(context.Background(), "agent-1", usecase.ReviewVerificationInput{Status: entity.StatusValidated})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusValidated, status)
	assert.Equal(t, entity.StatusValidated, repo["agent-1"])

	_, err = uc.Execute(context.Background(), "agent-1", usecase.ReviewVerificationInput{Status: entity.StatusRejected})
	assert.Equal(t, usecase.KindValidation, usecase.KindOf(err))

	_, err = uc.Execute(context.Background(), "ghost", usecase.ReviewVerificationInput{Status: entity.StatusValidated})
	assert.Equal(t, usecase.KindNotFound, usecase.KindOf(err))
}
