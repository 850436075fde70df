package usecase

import (
	"context"
	"errors"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
)

type UploadState string

const (
	UploadNoFileSelected UploadState = "no_file_selected"
	UploadFileSelected   UploadState = "file_selected"
	UploadUploading      UploadState = "uploading"
	UploadUploaded       UploadState = "uploaded"
)

const (
	RecommendedMaxDocumentBytes = 5 << 20
	genericUploadMessage        = "Une erreur est survenue lors de l'envoi du document."
)

// RecommendedDocumentExtensions é a dica de tipos aceitos exibida no formulário.
var RecommendedDocumentExtensions = []string{".jpg", ".jpeg", ".png", ".pdf"}

// IdentityDocument é o arquivo escolhido pelo apporteur.
type IdentityDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

func (d IdentityDocument) Size() int64 {
	return int64(len(d.Content))
}

// MeetsRecommendations compara o arquivo com a dica de tipo e tamanho. Não bloqueia o envio.
func (d IdentityDocument) MeetsRecommendations() bool {
	if d.Size() > RecommendedMaxDocumentBytes {
		return false
	}
	ext := strings.ToLower(filepath.Ext(d.Filename))
	for _, allowed := range RecommendedDocumentExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

type UploadResult struct {
	StoragePath string                    `json:"storage_path"`
	Status      entity.VerificationStatus `json:"status"`
	Accepted    bool                      `json:"accepted"`
}

// UploadFlow é a máquina de estados do envio do documento de identidade de um apporteur.
type UploadFlow struct {
	agentID string
	storage DocumentStorage
	store   *VerificationStore

	mu    sync.Mutex
	state UploadState
	doc   *IdentityDocument
}

func NewUploadFlow(agentID string, storage DocumentStorage, store *VerificationStore) *UploadFlow {
	return &UploadFlow{
		agentID: agentID,
		storage: storage,
		store:   store,
		state:   UploadNoFileSelected,
	}
}

func (f *UploadFlow) State() UploadState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *UploadFlow) SelectFile(doc IdentityDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case UploadUploading:
		return ErrUploadInProgress
	case UploadUploaded:
		return &DomainError{Kind: KindConflict, Code: "ALREADY_UPLOADED", Message: "Le document a déjà été envoyé."}
	}
	f.doc = &doc
	f.state = UploadFileSelected
	return nil
}

// Confirm envia o arquivo selecionado e move o status para pending.
// Em caso de falha o fluxo volta para FileSelected com o mesmo arquivo.
func (f *UploadFlow) Confirm(ctx context.Context) (*UploadResult, error) {
	f.mu.Lock()
	switch {
	case f.state == UploadUploading:
		f.mu.Unlock()
		return nil, ErrUploadInProgress
	case f.state == UploadUploaded:
		f.mu.Unlock()
		return nil, &DomainError{Kind: KindConflict, Code: "ALREADY_UPLOADED", Message: "Le document a déjà été envoyé."}
	case f.doc == nil:
		f.mu.Unlock()
		return nil, ErrNoFileSelected
	}
	doc := *f.doc
	f.state = UploadUploading
	f.mu.Unlock()

	storagePath, err := f.storage.UploadIdentityDocument(ctx, f.agentID, doc)
	if err != nil {
		f.setState(UploadFileSelected)
		return nil, technicalError("UPLOAD_FAILED", messageOr(err, genericUploadMessage), err)
	}

	if err := f.store.SetStatus(ctx, f.agentID, entity.StatusPending); err != nil {
		f.setState(UploadFileSelected)
		if IsDomainError(err) {
			return nil, err
		}
		return nil, technicalError("UPLOAD_FAILED", messageOr(err, genericUploadMessage), err)
	}

	f.setState(UploadUploaded)
	return &UploadResult{
		StoragePath: storagePath,
		Status:      entity.StatusPending,
		Accepted:    doc.MeetsRecommendations(),
	}, nil
}

func (f *UploadFlow) setState(s UploadState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

func messageOr(err error, fallback string) string {
	var te *TechnicalError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}

// DocumentObjectPath monta id_documents/<agentID>/<uuid>-<arquivo>. O nome do
// arquivo é reduzido a letras ASCII, dígitos, ponto, hífen e sublinhado para
// que a chave gravada seja a mesma que vai na URL.
func DocumentObjectPath(agentID, filename string) string {
	name := sanitizeFilename(path.Base(filepath.ToSlash(filename)))
	return path.Join("id_documents", agentID, uuid.NewString()+"-"+name)
}

func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	name = strings.TrimLeft(name, ".")
	if strings.Trim(name, "_") == "" {
		return "document"
	}
	return name
}
