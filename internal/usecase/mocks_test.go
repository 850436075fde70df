package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/mapeo-rewards/internal/entity"
	"github.com/xavierca1/mapeo-rewards/internal/infra/queue"
	"github.com/xavierca1/mapeo-rewards/internal/usecase"
)

// MockStatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) GetVerificationStatus(ctx context.Context, agentID string) (entity.VerificationStatus, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).(entity.VerificationStatus), args.Error(1)
}

func (m *MockStatusRepository) UpdateVerificationStatus(ctx context.Context, agentID string, status entity.VerificationStatus) error {
	args := m.Called(ctx, agentID, status)
	return args.Error(0)
}

func (m *MockStatusRepository) CountByVerificationStatus(ctx context.Context, status entity.VerificationStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// statusMap é um StatusRepository simples para testes que precisam de estado real.
type statusMap map[string]entity.VerificationStatus

func (s statusMap) GetVerificationStatus(_ context.Context, agentID string) (entity.VerificationStatus, error) {
	return s[agentID], nil
}

func (s statusMap) UpdateVerificationStatus(_ context.Context, agentID string, status entity.VerificationStatus) error {
	s[agentID] = status
	return nil
}

func (s statusMap) CountByVerificationStatus(_ context.Context, status entity.VerificationStatus) (int, error) {
	n := 0
	for _, st := range s {
		if st == status {
			n++
		}
	}
	return n, nil
}

// MockLeadDirectory
type MockLeadDirectory struct {
	mock.Mock
}

func (m *MockLeadDirectory) ListLeads(ctx context.Context, agentID string) ([]*entity.Lead, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadDirectory) GetLead(ctx context.Context, agentID, id string) (*entity.Lead, error) {
	args := m.Called(ctx, agentID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadDirectory) SubmitLead(ctx context.Context, lead *entity.Lead) (string, error) {
	args := m.Called(ctx, lead)
	return args.String(0), args.Error(1)
}

func (m *MockLeadDirectory) UpdateLead(ctx context.Context, lead *entity.Lead, previous entity.LeadStatus) error {
	args := m.Called(ctx, lead, previous)
	return args.Error(0)
}

// MockDocumentStorage
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) UploadIdentityDocument(ctx context.Context, agentID string, doc usecase.IdentityDocument) (string, error) {
	args := m.Called(ctx, agentID, doc)
	return args.String(0), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishEvent(ctx context.Context, payload queue.EventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockAgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Create(ctx context.Context, a *entity.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id string) (*entity.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindByEmail(ctx context.Context, email string) (*entity.Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Agent), args.Error(1)
}

// MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, agentID string) (*entity.Profile, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) SaveProfile(ctx context.Context, agentID string, p *entity.Profile) error {
	args := m.Called(ctx, agentID, p)
	return args.Error(0)
}

func (m *MockProfileRepository) GetBankDetails(ctx context.Context, agentID string) (*entity.BankDetails, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BankDetails), args.Error(1)
}

func (m *MockProfileRepository) SaveBankDetails(ctx context.Context, agentID string, b *entity.BankDetails) error {
	args := m.Called(ctx, agentID, b)
	return args.Error(0)
}

// MockTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListByAgent(ctx context.Context, agentID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

// MockHasher
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(agentID string) (string, time.Time, error) {
	args := m.Called(agentID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
