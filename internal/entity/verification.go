package entity

import (
	"context"
	"fmt"
)

// VerificationStatus é o estado da verificação de identidade do apporteur.
type VerificationStatus string

const (
	StatusWaitingForDoc VerificationStatus = "waiting_for_doc"
	StatusPending       VerificationStatus = "pending"
	StatusValidated     VerificationStatus = "validated"
	StatusRejected      VerificationStatus = "rejected"
)

// VerificationStatuses lista todos os estados, na ordem do ciclo de vida.
var VerificationStatuses = []VerificationStatus{
	StatusWaitingForDoc,
	StatusPending,
	StatusValidated,
	StatusRejected,
}

// Transições permitidas. validated é final.
var verificationTransitions = map[VerificationStatus]map[VerificationStatus]bool{
	StatusWaitingForDoc: {StatusPending: true},
	StatusPending:       {StatusValidated: true, StatusRejected: true},
	StatusRejected:      {StatusPending: true}, // reenvio de documento
	StatusValidated:     {},
}

func (s VerificationStatus) IsValid() bool {
	_, ok := verificationTransitions[s]
	return ok
}

// Label devolve o texto exibido na interface.
func (s VerificationStatus) Label() string {
	switch s {
	case StatusWaitingForDoc:
		return "En attente de document"
	case StatusPending:
		return "En attente de validation"
	case StatusValidated:
		return "Compte vérifié"
	case StatusRejected:
		return "Vérification refusée"
	default:
		return string(s)
	}
}

// CanUpload indica se um documento de identidade pode ser enviado neste estado.
func (s VerificationStatus) CanUpload() bool {
	return s == StatusWaitingForDoc || s == StatusRejected
}

// CanTransitionVerification verifica a tabela de transições.
func CanTransitionVerification(from, to VerificationStatus) bool {
	nexts, ok := verificationTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// ValidateVerificationTransition devolve ErrInvalidTransition quando from → to não é permitido.
func ValidateVerificationTransition(from, to VerificationStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown verification status %q", ErrInvalidStatus, to)
	}
	if !CanTransitionVerification(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// StatusRepository persiste o status de verificação por apporteur.
type StatusRepository interface {
	GetVerificationStatus(ctx context.Context, agentID string) (VerificationStatus, error)
	UpdateVerificationStatus(ctx context.Context, agentID string, status VerificationStatus) error
	CountByVerificationStatus(ctx context.Context, status VerificationStatus) (int, error)
}
