package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/infra/export"
	"github.com/xavierca1/mapeo-rewards/internal/infra/http/middleware"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type TransactionHandler struct {
	Transactions *usecase.TransactionsUseCase
	Now          func() time.Time
}

func NewTransactionHandler(transactions *usecase.TransactionsUseCase) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Now: time.Now}
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.Transactions.List(r.Context(), middleware.AgentID(r.Context()))
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}
	writeJSON(w, http.StatusOK, Response{Data: view})
}

// Export gera a planilha em memória antes de escrever, para que um erro ainda vire JSON.
func (h *TransactionHandler) Export(w http.ResponseWriter, r *http.Request) {
	view, err := h.Transactions.List(r.Context(), middleware.AgentID(r.Context()))
	if err != nil {
		writeError(w, r, err, "Erreur")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteTransactions(&buf, view.Rows); err != nil {
		writeError(w, r, err, "Erreur")
		return
	}

	filename := "commissions-" + h.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
