package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

var idCard = usecase.IdentityDocument{Filename: "cni.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.4")}

func TestUploadFlowWithoutFile(t *testing.T) {
	storage := new(MockDocumentStorage)
	repo := statusMap{}
	flow := usecase.NewUploadFlow("agent-1", storage, usecase.NewVerificationStore(repo))

	_, err := flow.Confirm(context.Background())

	assert.ErrorIs(t, err, usecase.ErrNoFileSelected)
	assert.Equal(t, usecase.UploadNoFileSelected, flow.State())
	storage.AssertNotCalled(t, "UploadIdentityDocument", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, repo)
}

func TestUploadFlowMovesStatusToPendingOnce(t *testing.T) {
	storage := new(MockDocumentStorage)
	storage.On("UploadIdentityDocument", mock.Anything, "agent-1", idCard).Return("id_documents/agent-1/x-cni.pdf", nil).Once()

	store := usecase.NewVerificationStore(statusMap{})
	var transitions int32
	_, err := store.Subscribe(func(context.Context, usecase.StatusChange) { atomic.AddInt32(&transitions, 1) })
	require.NoError(t, err)

	flow := usecase.NewUploadFlow("agent-1", storage, store)
	require.NoError(t, flow.SelectFile(idCard))
	assert.Equal(t, usecase.UploadFileSelected, flow.State())

	result, err := flow.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, usecase.UploadUploaded, flow.State())
	assert.Equal(t, entity.StatusPending, result.Status)
	assert.True(t, result.Accepted)
	assert.Equal(t, int32(1), atomic.LoadInt32(&transitions))
	storage.AssertExpectations(t)

	status, _ := store.Status(context.Background(), "agent-1")
	assert.Equal(t, entity.StatusPending, status)
}

func TestUploadFlowFailureReturnsToFileSelected(t *testing.T) {
	storage := new(MockDocumentStorage)
	storage.On("UploadIdentityDocument", mock.Anything, "agent-1", mock.Anything).Return("", errors.New("bucket indisponible")).Once()

	repo := statusMap{}
	flow := usecase.NewUploadFlow("agent-1", storage, usecase.NewVerificationStore(repo))
	require.NoError(t, flow.SelectFile(idCard))

	_, err := flow.Confirm(context.Background())

	require.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	assert.Equal(t, "bucket indisponible", err.Error())
	assert.Equal(t, usecase.UploadFileSelected, flow.State())
	assert.Empty(t, repo)
}

func TestUploadFlowGenericMessage(t *testing.T) {
	storage := new(MockDocumentStorage)
	storage.On("UploadIdentityDocument", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New(""))

	flow := usecase.NewUploadFlow("agent-1", storage, usecase.NewVerificationStore(statusMap{}))
	require.NoError(t, flow.SelectFile(idCard))

	_, err := flow.Confirm(context.Background())
	assert.EqualError(t, err, "Une erreur est survenue lors de l'envoi du document.")
}

// blockingStorage segura o upload até release ser fechado.
type blockingStorage struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingStorage) UploadIdentityDocument(ctx context.Context, agentID string, doc usecase.IdentityDocument) (string, error) {
	close(b.started)
	<-b.release
	return "id_documents/" + agentID + "/" + doc.Filename, nil
}

func TestUploadFlowRejectsSecondConfirmWhileUploading(t *testing.T) {
	storage := &blockingStorage{started: make(chan struct{}), release: make(chan struct{})}
	flow := usecase.NewUploadFlow("agent-1", storage, usecase.NewVerificationStore(statusMap{}))
	require.NoError(t, flow.SelectFile(idCard))

	done := make(chan error, 1)
	go func() {
		_, err := flow.Confirm(context.Background())
		done <- err
	}()

	<-storage.started
	assert.Equal(t, usecase.UploadUploading, flow.State())
	_, err := flow.Confirm(context.Background())
	assert.ErrorIs(t, err, usecase.ErrUploadInProgress)
	assert.ErrorIs(t, flow.SelectFile(idCard), usecase.ErrUploadInProgress)

	close(storage.release)
	require.NoError(t, <-done)
	assert.Equal(t, usecase.UploadUploaded, flow.State())
}

func TestIdentityDocumentRecommendations(t *testing.T) {
	assert.True(t, usecase.IdentityDocument{Filename: "photo.JPG", Content: []byte("x")}.MeetsRecommendations())
	assert.False(t, usecase.IdentityDocument{Filename: "scan.tiff", Content: []byte("x")}.MeetsRecommendations())
	big := make([]byte, usecase.RecommendedMaxDocumentBytes+1)
	assert.False(t, usecase.IdentityDocument{Filename: "scan.pdf", Content: big}.MeetsRecommendations())
}

func TestUploadDocumentUseCase(t *testing.T) {
	t.Run("publishes event on success", func(t *testing.T) {
		storage := new(MockDocumentStorage)
		storage.On("UploadIdentityDocument", mock.Anything, "agent-1", idCard).Return("id_documents/agent-1/a-cni.pdf", nil)
		q := new(MockQueueProducer)
		q.On("PublishEvent", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewUploadDocumentUseCase(storage, usecase.NewVerificationStore(statusMap{}), q)
		result, err := uc.Execute(context.Background(), "agent-1", &idCard)

		require.NoError(t, err)
		assert.Equal(t, "id_documents/agent-1/a-cni.pdf", result.StoragePath)
		q.AssertNumberOfCalls(t, "PublishEvent", 1)
	})

	t.Run("refuses when already pending", func(t *testing.T) {
		storage := new(MockDocumentStorage)
		uc := usecase.NewUploadDocumentUseCase(storage, usecase.NewVerificationStore(statusMap{"agent-1": entity.StatusPending}), nil)

		_, err := uc.Execute(context.Background(), "agent-1", &idCard)

		assert.Equal(t, usecase.KindConflict, usecase.KindOf(err))
		storage.AssertNotCalled(t, "UploadIdentityDocument", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("allows re-upload after rejection", func(t *testing.T) {
		storage := new(MockDocumentStorage)
		storage.On("UploadIdentityDocument", mock.Anything, "agent-1", idCard).Return("p", nil)
		repo := statusMap{"agent-1": entity.StatusRejected}
		uc := usecase.NewUploadDocumentUseCase(storage, usecase.NewVerificationStore(repo), nil)

		_, err := uc.Execute(context.Background(), "agent-1", &idCard)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, repo["agent-1"])
	})

	t.Run("no file", func(t *testing.T) {
		storage := new(MockDocumentStorage)
		repo := statusMap{}
		uc := usecase.NewUploadDocumentUseCase(storage, usecase.NewVerificationStore(repo), nil)

		_, err := uc.Execute(context.Background(), "agent-1", nil)

		assert.ErrorIs(t, err, usecase.ErrNoFileSelected)
		storage.AssertNotCalled(t, "UploadIdentityDocument", mock.Anything, mock.Anything, mock.Anything)
		assert.Empty(t, repo)
	})
}

func TestDocumentObjectPathSanitizesFilename(t *testing.T) {
	cases := map[string]string{
		"cni.pdf":               "-cni.pdf",
		"carte#1 recto?v=2.pdf": "-carte_1_recto_v_2.pdf",
		"../../passeport.png":   "-passeport.png",
		"pièce d'identité.jpg":  "-pi_ce_d_identit_.jpg",
		"..":                    "-document",
		"":                      "-document",
	}
	for filename, suffix := range cases {
		got := usecase.DocumentObjectPath("agent-1", filename)
		assert.True(t, strings.HasPrefix(got, "id_documents/agent-1/"), got)
		assert.True(t, strings.HasSuffix(got, suffix), "%q -> %q", filename, got)
		assert.NotContains(t, got, "#")
		assert.NotContains(t, got, "?")
	}
}
