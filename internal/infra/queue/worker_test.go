package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, payload EventPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

type fakeDelivery struct {
	acked, nacked, requeued bool
}

func (d *fakeDelivery) Ack(bool) error {
	d.acked = true
	return nil
}

func (d *fakeDelivery) Nack(_ bool, requeue bool) error {
	d.nacked = true
	d.requeued = requeue
	return nil
}

func TestWorkerAcksDeliveredNotification(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.MatchedBy(func(p EventPayload) bool {
		return p.Event == EventLeadSubmitted && p.LeadID == "LD-2026-001"
	})).Return(nil)

	body, err := json.Marshal(EventPayload{Event: EventLeadSubmitted, AgentID: "agent-1", LeadID: "LD-2026-001"})
	require.NoError(t, err)

	d := &fakeDelivery{}
	NewWorker(nil, notifier).Handle(context.Background(), body, d)

	assert.True(t, d.acked)
	assert.False(t, d.nacked)
	notifier.AssertExpectations(t)
}

func TestWorkerDeadLettersMalformedMessage(t *testing.T) {
	notifier := new(MockNotifier)
	d := &fakeDelivery{}

	NewWorker(nil, notifier).Handle(context.Background(), []byte("{not json"), d)

	assert.True(t, d.nacked)
	assert.False(t, d.requeued)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestWorkerDeadLettersFailedNotification(t *testing.T) {
	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	body, _ := json.Marshal(EventPayload{Event: EventDocumentUploaded, AgentID: "agent-1"})
	d := &fakeDelivery{}
	NewWorker(nil, notifier).Handle(context.Background(), body, d)

	assert.True(t, d.nacked)
	assert.False(t, d.requeued)
}

func TestLogProducerRecordsEvents(t *testing.T) {
	p := NewLogProducer()
	require.NoError(t, p.PublishEvent(context.Background(), EventPayload{Event: EventVerificationChanged, AgentID: "agent-1", Status: "validated"}))

	events := p.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "validated", events[0].Status)
}
