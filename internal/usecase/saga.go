package usecase

import (
	"context"
	"fmt"
)

// Saga executa operações em sequência; se uma falhar, as compensações
// das operações já executadas rodam em ordem inversa.
type Saga struct {
	operations    []Operation
	compensations []Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewSaga() *Saga {
	return &Saga{}
}

// AddStep registra uma operação e sua compensação. compensate pode ser nil.
func (s *Saga) AddStep(name string, fn, compensate func(context.Context) error) {
	s.operations = append(s.operations, Operation{Name: name, Fn: fn})
	if compensate == nil {
		compensate = func(context.Context) error { return nil }
	}
	s.compensations = append(s.compensations, Compensation{Name: name, Fn: compensate})
}

func (s *Saga) Execute(ctx context.Context) error {
	for i, op := range s.operations {
		if err := op.Fn(ctx); err != nil {
			s.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (s *Saga) rollback(ctx context.Context, failedAt int) {
	for i := failedAt - 1; i >= 0; i-- {
		comp := s.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			logger.WithError(err).WithField("step", comp.Name).Warn("⚠️ compensação falhou, risco de inconsistência")
		}
	}
}
