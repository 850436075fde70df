package usecase

import (
	"context"

	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

// Settings é o conteúdo da página Paramètres.
type Settings struct {
	Profile      entity.Profile     `json:"profile"`
	Bank         entity.BankDetails `json:"bank"`
	Copyable     []string           `json:"copyable"`
	Editing      EditingFlags       `json:"editing"`
	Transactions *TransactionsView  `json:"transactions,omitempty"`
}

type EditingFlags struct {
	Profile bool `json:"profile"`
	Bank    bool `json:"bank"`
}

// FormEditor liga uma EditSession à leitura e gravação do registro.
type FormEditor[T any] struct {
	sessions *EditSessions[T]
	load     func(ctx context.Context, agentID string) (*T, error)
	save     func(ctx context.Context, agentID string, v *T) error
}

func (e *FormEditor[T]) Begin(ctx context.Context, agentID string) (T, error) {
	if session, ok := e.sessions.Lookup(agentID); ok {
		if draft, editing := session.Draft(); editing {
			return draft, nil
		}
	}
	current, err := e.load(ctx, agentID)
	if err != nil {
		var zero T
		return zero, technicalError("LOAD_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	return e.sessions.Begin(agentID, *current), nil
}

func (e *FormEditor[T]) Update(agentID string, draft T) (T, error) {
	var zero T
	session, ok := e.sessions.Lookup(agentID)
	if !ok {
		return zero, ErrNotEditing
	}
	if err := session.Update(draft); err != nil {
		return zero, err
	}
	return draft, nil
}

// Commit valida e grava o rascunho; desligar o modo de edição confirma o que foi digitado.
func (e *FormEditor[T]) Commit(ctx context.Context, agentID string) (T, error) {
	session, ok := e.sessions.Lookup(agentID)
	if !ok {
		var zero T
		return zero, ErrNotEditing
	}
	saved, err := session.Commit(ctx, func(ctx context.Context, v T) error {
		if err := checkInput(v); err != nil {
			return err
		}
		if err := e.save(ctx, agentID, &v); err != nil {
			return technicalError("SAVE_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
		}
		return nil
	})
	if err == nil {
		e.sessions.Release(agentID)
	}
	return saved, err
}

func (e *FormEditor[T]) Cancel(agentID string) (T, error) {
	session, ok := e.sessions.Lookup(agentID)
	if !ok {
		var zero T
		return zero, ErrNotEditing
	}
	restored, err := session.Cancel()
	if err == nil {
		e.sessions.Release(agentID)
	}
	return restored, err
}

func (e *FormEditor[T]) Editing(agentID string) bool {
	_, editing := e.draft(agentID)
	return editing
}

// Active conta os apporteurs com uma sessão aberta.
func (e *FormEditor[T]) Active() int {
	return e.sessions.Len()
}

func (e *FormEditor[T]) draft(agentID string) (T, bool) {
	session, ok := e.sessions.Lookup(agentID)
	if !ok {
		var zero T
		return zero, false
	}
	return session.Draft()
}

type ProfileUseCase struct {
	Repo    entity.ProfileRepositoryInterface
	Profile *FormEditor[entity.Profile]
	Bank    *FormEditor[entity.BankDetails]
}

func NewProfileUseCase(repo entity.ProfileRepositoryInterface) *ProfileUseCase {
	return &ProfileUseCase{
		Repo: repo,
		Profile: &FormEditor[entity.Profile]{
			sessions: NewEditSessions[entity.Profile](),
			load:     repo.GetProfile,
			save:     repo.SaveProfile,
		},
		Bank: &FormEditor[entity.BankDetails]{
			sessions: NewEditSessions[entity.BankDetails](),
			load:     repo.GetBankDetails,
			save:     repo.SaveBankDetails,
		},
	}
}

// Settings devolve o registro salvo, ou o rascunho quando o formulário está em edição.
func (uc *ProfileUseCase) Settings(ctx context.Context, agentID string) (*Settings, error) {
	profile, err := uc.Repo.GetProfile(ctx, agentID)
	if err != nil {
		return nil, technicalError("PROFILE_UNAVAILABLE", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	bank, err := uc.Repo.GetBankDetails(ctx, agentID)
	if err != nil {
		return nil, technicalError("BANK_UNAVAILABLE", "Une erreur s'est produite. Veuillez réessayer.", err)
	}

	out := &Settings{Profile: *profile, Bank: *bank, Copyable: []string{"iban"}}
	if draft, editing := uc.Profile.draft(agentID); editing {
		out.Profile = draft
		out.Editing.Profile = true
	}
	if draft, editing := uc.Bank.draft(agentID); editing {
		out.Bank = draft
		out.Editing.Bank = true
	}
	return out, nil
}

func (uc *ProfileUseCase) SaveProfile(ctx context.Context, agentID string, p entity.Profile) error {
	if err := checkInput(p); err != nil {
		return err
	}
	if err := uc.Repo.SaveProfile(ctx, agentID, &p); err != nil {
		return technicalError("SAVE_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	logger.WithField("agent_id", agentID).Info("👤 perfil atualizado")
	return nil
}

func (uc *ProfileUseCase) SaveBankDetails(ctx context.Context, agentID string, b entity.BankDetails) error {
	if err := checkInput(b); err != nil {
		return err
	}
	if err := uc.Repo.SaveBankDetails(ctx, agentID, &b); err != nil {
		return technicalError("SAVE_FAILED", "Une erreur s'est produite. Veuillez réessayer.", err)
	}
	logger.WithField("agent_id", agentID).Info("🏦 dados bancários atualizados")
	return nil
}
