package usecase

import "errors"

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
	KindTechnical    ErrorKind = "technical"
)

// FieldError aponta o campo do formulário que falhou na validação.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError é um erro de regra de negócio: entrada inválida, recurso
// inexistente, transição proibida. Nunca é fatal.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é a falha de uma chamada externa (banco, storage, fila).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// KindOf classifica qualquer erro; erros desconhecidos contam como técnicos.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindTechnical
}

func validationError(code, message string, fields []FieldError) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func technicalError(code, message string, err error) *TechnicalError {
	return &TechnicalError{Code: code, Message: message, Err: err}
}

var (
	ErrStoreClosed = errors.New("verification store must be used within its provider")

	ErrUploadInProgress = &DomainError{
		Kind:    KindConflict,
		Code:    "UPLOAD_IN_PROGRESS",
		Message: "Un envoi de document est déjà en cours.",
	}
	ErrNoFileSelected = &DomainError{
		Kind:    KindValidation,
		Code:    "NO_FILE_SELECTED",
		Message: "Veuillez sélectionner un document d'identité à télécharger.",
	}
	ErrNotEditing = &DomainError{
		Kind:    KindConflict,
		Code:    "NOT_EDITING",
		Message: "Le formulaire n'est pas en mode édition.",
	}
	ErrSaveInProgress = &DomainError{
		Kind:    KindConflict,
		Code:    "SAVE_IN_PROGRESS",
		Message: "Un enregistrement est déjà en cours.",
	}
	ErrInvalidCredentials = &DomainError{
		Kind:    KindUnauthorized,
		Code:    "INVALID_CREDENTIALS",
		Message: "Email ou mot de passe incorrect.",
	}
	ErrVerificationRequired = &DomainError{
		Kind:    KindForbidden,
		Code:    "VERIFICATION_REQUIRED",
		Message: "Votre identité doit être vérifiée pour soumettre des leads.",
	}
)
