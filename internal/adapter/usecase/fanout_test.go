package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port/mocks"
)

// TestBroadcastAll ensures every registered connection receives the event.
func TestBroadcastAll(t *testing.T) {
	connections := new(mocks.MockConnectionRepository)
	pusher := new(mocks.MockConnectionPusher)
	f := NewFanout(connections, pusher, discardLogger())

	conns := []domain.Connection{
		{ID: "c1", UserPhoneID: "phone-1"},
		{ID: "c2", UserPhoneID: "phone-1"},
		{ID: "c3", UserPhoneID: "phone-1"},
	}
	connections.On("ListBySender", mock.Anything, "phone-1").Return(conns, nil)
	pusher.On("Push", mock.Anything, mock.AnythingOfType("domain.Connection"), mock.Anything).Return(nil)

	event := domain.Event{ID: "e1", Type: "client_renamed", Sender: "phone-1"}
	if err := f.Broadcast(context.Background(), "phone-1", event); err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	pusher.AssertNumberOfCalls(t, "Push", 3)
	connections.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestBroadcastEvictsGone ensures a connection the transport reports gone
// is deleted while the others still get the event.
func TestBroadcastEvictsGone(t *testing.T) {
	connections := new(mocks.MockConnectionRepository)
	pusher := new(mocks.MockConnectionPusher)
	f := NewFanout(connections, pusher, discardLogger())

	conns := []domain.Connection{
		{ID: "c1", UserPhoneID: "phone-1"},
		{ID: "c2", UserPhoneID: "phone-1"},
		{ID: "c3", UserPhoneID: "phone-1"},
	}
	connections.On("ListBySender", mock.Anything, "phone-1").Return(conns, nil)
	connections.On("Delete", mock.Anything, "c2").Return(nil)

	pusher.On("Push", mock.Anything, mock.MatchedBy(func(c domain.Connection) bool {
		return c.ID == "c2"
	}), mock.Anything).Return(domain.ErrConnectionGone)
	pusher.On("Push", mock.Anything, mock.MatchedBy(func(c domain.Connection) bool {
		return c.ID != "c2"
	}), mock.Anything).Return(nil)

	if err := f.Broadcast(context.Background(), "phone-1", domain.Event{ID: "e1"}); err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	pusher.AssertNumberOfCalls(t, "Push", 3)
	connections.AssertCalled(t, "Delete", mock.Anything, "c2")
	connections.AssertNumberOfCalls(t, "Delete", 1)
}

// TestBroadcastPushFailureIsNotFatal ensures an ordinary push error is
// swallowed and does not evict the connection.
func TestBroadcastPushFailureIsNotFatal(t *testing.T) {
	connections := new(mocks.MockConnectionRepository)
	pusher := new(mocks.MockConnectionPusher)
	f := NewFanout(connections, pusher, discardLogger())

	connections.On("ListBySender", mock.Anything, "phone-1").
		Return([]domain.Connection{{ID: "c1", UserPhoneID: "phone-1"}}, nil)
	pusher.On("Push", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout"))

	if err := f.Broadcast(context.Background(), "phone-1", domain.Event{ID: "e1"}); err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	connections.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

// TestBroadcastPayload ensures the pushed payload is the JSON encoding of
// the event.
func TestBroadcastPayload(t *testing.T) {
	connections := new(mocks.MockConnectionRepository)
	pusher := new(mocks.MockConnectionPusher)
	f := NewFanout(connections, pusher, discardLogger())

	connections.On("ListBySender", mock.Anything, "phone-1").
		Return([]domain.Connection{{ID: "c1", UserPhoneID: "phone-1"}}, nil)
	pusher.On("Push", mock.Anything, mock.Anything, mock.MatchedBy(func(payload []byte) bool {
		var e domain.Event
		if err := json.Unmarshal(payload, &e); err != nil {
			return false
		}
		return e.ID == "e1" && e.Type == "client_renamed" && e.Data["name"] == "Ana"
	})).Return(nil)

	event := domain.Event{
		ID:     "e1",
		Type:   "client_renamed",
		Sender: "phone-1",
		Data:   map[string]string{"name": "Ana"},
	}
	if err := f.Broadcast(context.Background(), "phone-1", event); err != nil {
		t.Fatalf("Broadcast error: %v", err)
	}
	pusher.AssertExpectations(t)
}
