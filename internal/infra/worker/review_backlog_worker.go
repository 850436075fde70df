package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type StatusCounter interface {
	CountByVerificationStatus(ctx context.Context, status entity.VerificationStatus) (int, error)
}

// ReviewBacklogWorker mede periodicamente quantos documentos aguardam revisão.
type ReviewBacklogWorker struct {
	counter      StatusCounter
	report       func(int)
	tickInterval time.Duration
}

func NewReviewBacklogWorker(counter StatusCounter, report func(int)) *ReviewBacklogWorker {
	return &ReviewBacklogWorker{
		counter:      counter,
		report:       report,
		tickInterval: 1 * time.Minute,
	}
}

func (w *ReviewBacklogWorker) Start(ctx context.Context) {
	logrus.Info("🕒 Review Backlog Worker iniciado")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.measure(ctx)

	for {
		select {
		case <-ctx.Done():
			logrus.Info("⚠️ Review Backlog Worker encerrado")
			return
		case <-ticker.C:
			w.measure(ctx)
		}
	}
}

func (w *ReviewBacklogWorker) measure(ctx context.Context) {
	pending, err := w.counter.CountByVerificationStatus(ctx, entity.StatusPending)
	if err != nil {
		logrus.WithError(err).Error("❌ erro ao contar documentos pendentes")
		return
	}

	if w.report != nil {
		w.report(pending)
	}
	if pending > 0 {
		logrus.WithField("pending", pending).Info("⏱️ documentos aguardando revisão")
	}
}
