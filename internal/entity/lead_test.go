package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

func TestFormatLeadID(t *testing.T) {
	assert.Equal(t, "LD-2023-004", entity.FormatLeadID(2023, 4))
	assert.Equal(t, "LD-2026-120", entity.FormatLeadID(2026, 120))
}

func TestLeadAdvanceHappyPath(t *testing.T) {
	lead := &entity.Lead{ID: "LD-2023-001", Status: entity.LeadInContact}

	require.NoError(t, lead.Advance(entity.LeadVisitScheduled, nil))
	require.NoError(t, lead.Advance(entity.LeadOfferPending, nil))

	commission := decimal.NewFromInt(2500)
	require.NoError(t, lead.Advance(entity.LeadSold, &commission))

	assert.Equal(t, entity.LeadSold, lead.Status)
	assert.True(t, lead.Commission.Equal(commission))
}

func TestLeadAdvanceRejectsSkippingSteps(t *testing.T) {
	lead := &entity.Lead{Status: entity.LeadInContact}
	commission := decimal.NewFromInt(100)

	err := lead.Advance(entity.LeadSold, &commission)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
	assert.Equal(t, entity.LeadInContact, lead.Status)
}

func TestLeadAdvanceTerminalStatuses(t *testing.T) {
	for _, status := range []entity.LeadStatus{entity.LeadSold, entity.LeadCancelled} {
		lead := &entity.Lead{Status: status}
		assert.ErrorIs(t, lead.Advance(entity.LeadInContact, nil), entity.ErrInvalidTransition)
	}
}

func TestLeadAdvanceCommissionRules(t *testing.T) {
	lead := &entity.Lead{Status: entity.LeadOfferPending}
	assert.ErrorIs(t, lead.Advance(entity.LeadSold, nil), entity.ErrInvalidCommission)

	zero := decimal.Zero
	assert.ErrorIs(t, lead.Advance(entity.LeadSold, &zero), entity.ErrInvalidCommission)

	some := decimal.NewFromInt(10)
	assert.ErrorIs(t, lead.Advance(entity.LeadCancelled, &some), entity.ErrInvalidCommission)
	assert.Equal(t, entity.LeadOfferPending, lead.Status)
}

func TestLeadStatusPresentation(t *testing.T) {
	assert.Equal(t, "text-green-600 bg-green-50", entity.LeadSold.Color())
	assert.Equal(t, "text-gray-600 bg-gray-50", entity.LeadStatus("?").Color())
	assert.True(t, entity.LeadOfferPending.IsActive())
	assert.False(t, entity.LeadCancelled.IsActive())
	assert.Len(t, entity.PropertyTypes, 7)
}

func TestLeadStatusBadge(t *testing.T) {
	badge := entity.LeadCancelled.Badge()
	assert.Equal(t, "Annulé", badge.Label)
	assert.Equal(t, "text-red-600 bg-red-50", badge.Color)
	assert.Equal(t, "alert-circle", badge.Icon)

	assert.Equal(t, "clock", entity.LeadInContact.Badge().Icon)
	assert.Equal(t, "bar-chart-3", entity.LeadStatus("?").Badge().Icon)
}

func TestTransactionTotal(t *testing.T) {
	rows := []*entity.Transaction{
		{ID: "TRX-001", Amount: decimal.NewFromInt(850), Status: entity.TransactionPaid},
		{ID: "TRX-002", Amount: decimal.NewFromInt(1200), Status: entity.TransactionPaid},
		{ID: "TRX-003", Amount: decimal.NewFromInt(800), Status: entity.TransactionPending},
	}
	assert.True(t, decimal.NewFromInt(2850).Equal(entity.TransactionTotal(rows)))
	assert.True(t, decimal.Zero.Equal(entity.TransactionTotal(nil)))
}
