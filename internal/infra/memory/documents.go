package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

const DefaultUploadLatency = 1500 * time.Millisecond

// DocumentStorage guarda os documentos em memória, com a mesma convenção de caminho do bucket.
type DocumentStorage struct {
	Behavior

	mu    sync.RWMutex
	files map[string]usecase.IdentityDocument
}

func NewDocumentStorage() *DocumentStorage {
	return &DocumentStorage{files: make(map[string]usecase.IdentityDocument)}
}

func (s *DocumentStorage) UploadIdentityDocument(ctx context.Context, agentID string, doc usecase.IdentityDocument) (string, error) {
	if err := s.simulate(ctx); err != nil {
		return "", err
	}

	key := usecase.DocumentObjectPath(agentID, doc.Filename)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = doc
	return key, nil
}

// Get devolve um documento guardado.
func (s *DocumentStorage) Get(key string) (usecase.IdentityDocument, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.files[key]
	return doc, ok
}

func (s *DocumentStorage) Ping(ctx context.Context) error {
	return nil
}
