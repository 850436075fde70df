package memory

import (
	"context"
	"sync"
	"time"
)

// Behavior simula a latência e as falhas de um serviço remoto.
type Behavior struct {
	mu      sync.RWMutex
	latency time.Duration
	failure error
}

func (b *Behavior) SetLatency(d time.Duration) {
	b.mu.Lock()
	b.latency = d
	b.mu.Unlock()
}

// FailWith faz todas as chamadas seguintes falharem com err; nil volta ao normal.
func (b *Behavior) FailWith(err error) {
	b.mu.Lock()
	b.failure = err
	b.mu.Unlock()
}

func (b *Behavior) simulate(ctx context.Context) error {
	b.mu.RLock()
	latency, failure := b.latency, b.failure
	b.mu.RUnlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return failure
}
