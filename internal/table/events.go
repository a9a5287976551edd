package table

// Event identifies a table state transition. Events carry no payload beyond
// the tag; subscribers re-query the table's accessors for current state.
type Event string

const (
	// EventHandStarted fires after hole cards are dealt and blinds posted.
	EventHandStarted Event = "hand-started"
	// EventActorChanged fires after every processed action.
	EventActorChanged Event = "actor-changed"
	// EventStreetRevealed fires when board cards are turned.
	EventStreetRevealed Event = "street-revealed"
	// EventHandOver fires once settlement has completed.
	EventHandOver Event = "hand-over"
)

// Notifier receives table events. One notifier is injected per table
// instance; the table never blocks on it and never reads it back.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify implements Notifier.
func (f NotifierFunc) Notify(e Event) { f(e) }

func (t *Table) notify(e Event) {
	if t.notifier != nil {
		t.notifier.Notify(e)
	}
}
