package entity

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead introuvable")
	ErrAgentNotFound      = errors.New("apporteur introuvable")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidCommission  = errors.New("invalid commission")
	ErrLeadStatusChanged  = errors.New("lead status changed concurrently")
)
