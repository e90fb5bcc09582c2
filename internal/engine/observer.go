package engine

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kind of mutation a table went through
type EventType string

const (
	EventColumnAdded    EventType = "column_added"
	EventColumnRenamed  EventType = "column_renamed"
	EventColumnRemoved  EventType = "column_removed"
	EventColumnsCleared EventType = "columns_cleared"
	EventRowAdded       EventType = "row_added"
	EventRowInserted    EventType = "row_inserted"
	EventRowUpdated     EventType = "row_updated"
	EventRowRemoved     EventType = "row_removed"
	EventRowsCompacted  EventType = "rows_compacted"
	EventRowsCleared    EventType = "rows_cleared"
	EventRowsLoaded     EventType = "rows_loaded"
	EventCellUpdated    EventType = "cell_updated"
	EventTableDisposed  EventType = "table_disposed"
)

// Event represents a successful mutation of a table
type Event struct {
	Type      EventType   // Type of event
	TableID   uuid.UUID   // Instance ID of the table, for tracing
	Table     string      // Table name at the time of the event
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Event-specific data (column name, row index, ...)
}

// Observer interface for event subscribers
// Observers are called synchronously, after the mutation has been applied
type Observer interface {
	OnEvent(event Event)
}

// Notifier fans events out to registered observers.
// The zero value is ready to use.
type Notifier struct {
	observers []Observer
}

// AddObserver registers an observer to receive events
func (n *Notifier) AddObserver(observer Observer) {
	n.observers = append(n.observers, observer)
}

// RemoveObserver unregisters an observer
func (n *Notifier) RemoveObserver(observer Observer) {
	for i, o := range n.observers {
		if o == observer {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// Observers returns the registered observers
func (n *Notifier) Observers() []Observer {
	out := make([]Observer, len(n.observers))
	copy(out, n.observers)
	return out
}

// Notify stamps the event and sends it to all registered observers
func (n *Notifier) Notify(event Event) {
	Dispatch(n.observers, event)
}

// Dispatch stamps the event and sends it to each observer in order
func Dispatch(observers []Observer, event Event) {
	if len(observers) == 0 {
		return
	}
	event.Timestamp = time.Now()
	for _, observer := range observers {
		observer.OnEvent(event)
	}
}
