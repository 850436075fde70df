package usecase

import (
	"context"
	"sync"
)

// EditSession guarda o modo de edição de um formulário: o snapshot tirado
// ao entrar em edição e o rascunho atual.
type EditSession[T any] struct {
	mu       sync.Mutex
	editing  bool
	saving   bool
	original T
	draft    T
}

// Begin entra em edição a partir de current. Se já está editando, mantém o rascunho.
func (s *EditSession[T]) Begin(current T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		s.editing = true
		s.original = current
		s.draft = current
	}
	return s.draft
}

func (s *EditSession[T]) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

func (s *EditSession[T]) Draft() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft, s.editing
}

func (s *EditSession[T]) Update(draft T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editing {
		return ErrNotEditing
	}
	if s.saving {
		return ErrSaveInProgress
	}
	s.draft = draft
	return nil
}

// Commit salva o rascunho. Se save falhar, continua em edição com o rascunho intacto.
func (s *EditSession[T]) Commit(ctx context.Context, save func(context.Context, T) error) (T, error) {
	s.mu.Lock()
	if !s.editing {
		s.mu.Unlock()
		var zero T
		return zero, ErrNotEditing
	}
	if s.saving {
		s.mu.Unlock()
		var zero T
		return zero, ErrSaveInProgress
	}
	s.saving = true
	draft := s.draft
	s.mu.Unlock()

	err := save(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		return draft, err
	}
	s.editing = false
	s.original = draft
	return draft, nil
}

// Cancel sai da edição e devolve o snapshot de antes do Begin.
func (s *EditSession[T]) Cancel() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		var zero T
		return zero, ErrSaveInProgress
	}
	if !s.editing {
		var zero T
		return zero, ErrNotEditing
	}
	s.editing = false
	s.draft = s.original
	return s.original, nil
}

// EditSessions mantém uma sessão por apporteur enquanto ele está editando.
// Sessões ociosas saem do mapa no Commit ou no Cancel.
type EditSessions[T any] struct {
	mu       sync.Mutex
	sessions map[string]*EditSession[T]
}

func NewEditSessions[T any]() *EditSessions[T] {
	return &EditSessions[T]{sessions: make(map[string]*EditSession[T])}
}

// Begin cria a sessão do apporteur, se preciso, e entra em edição.
func (r *EditSessions[T]) Begin(agentID string, current T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[agentID]
	if !ok {
		s = &EditSession[T]{}
		r.sessions[agentID] = s
	}
	return s.Begin(current)
}

// Lookup devolve a sessão existente sem criar uma nova.
func (r *EditSessions[T]) Lookup(agentID string) (*EditSession[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[agentID]
	return s, ok
}

// Release descarta a sessão se ela não está em edição nem salvando.
func (r *EditSessions[T]) Release(agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[agentID]
	if !ok {
		return
	}
	s.mu.Lock()
	idle := !s.editing && !s.saving
	s.mu.Unlock()
	if idle {
		delete(r.sessions, agentID)
	}
}

func (r *EditSessions[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
