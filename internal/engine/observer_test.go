package engine

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockObserver is a test observer that records events
type MockObserver struct {
	Events []Event
}

func (m *MockObserver) OnEvent(event Event) {
	m.Events = append(m.Events, event)
}

func TestAddObserver(t *testing.T) {
	var n Notifier
	n.AddObserver(&MockObserver{})

	assert.Len(t, n.Observers(), 1)
}

func TestRemoveObserver(t *testing.T) {
	var n Notifier
	observer := &MockObserver{}

	n.AddObserver(observer)
	n.RemoveObserver(observer)

	assert.Empty(t, n.Observers())
}

func TestNotifyWithNoObservers(t *testing.T) {
	var n Notifier

	// Should not panic
	n.Notify(Event{Type: EventRowAdded, TableID: uuid.New()})
}

func TestNotifyWithMultipleObservers(t *testing.T) {
	var n Notifier
	observer1 := &MockObserver{}
	observer2 := &MockObserver{}

	n.AddObserver(observer1)
	n.AddObserver(observer2)

	n.Notify(Event{Type: EventColumnAdded, Table: "users", Data: "email"})

	require.Len(t, observer1.Events, 1)
	require.Len(t, observer2.Events, 1)
	assert.Equal(t, EventColumnAdded, observer1.Events[0].Type)
	assert.Equal(t, "email", observer2.Events[0].Data)
}

func TestEventTimestamp(t *testing.T) {
	observer := &MockObserver{}
	Dispatch([]Observer{observer}, Event{Type: EventRowAdded})

	require.Len(t, observer.Events, 1)
	assert.False(t, observer.Events[0].Timestamp.IsZero(), "expected timestamp to be set")
}

func TestLoggingObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	id := uuid.New()

	lo := NewLoggingObserver(logger, slog.LevelDebug)
	lo.OnEvent(Event{Type: EventRowRemoved, TableID: id, Table: "users", Data: 2})

	out := buf.String()
	assert.True(t, strings.Contains(out, "table_mutation"))
	assert.Contains(t, out, "event=row_removed")
	assert.Contains(t, out, "table_id="+id.String())
	assert.Contains(t, out, "data=2")
}

func TestLoggingObserverRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	NewLoggingObserver(logger, slog.LevelDebug).OnEvent(Event{Type: EventRowAdded})

	assert.Empty(t, buf.String())
}
