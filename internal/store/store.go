package store

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/spec-kit/soporte-service/internal/domain"
)

// ChangeOp discriminates journal entries.
type ChangeOp string

const (
	OpPut    ChangeOp = "put"
	OpDelete ChangeOp = "delete"
)

// Change describes one committed mutation, handed to the durable writer.
// Doc is the JSON snapshot serialized at commit time; the writer never sees
// the live item, so later in-place edits cannot tear the persisted document.
type Change struct {
	Collection domain.Kind
	Op         ChangeOp
	ID         string
	Doc        []byte // nil for deletes
}

// Collection is an in-memory work-item collection. It is the system's source
// of truth: reads never wait on durable storage. Every committed mutation is
// offered to the journal without blocking; a full journal drops the record,
// which matches the fire-and-forget durability policy.
type Collection[T domain.WorkItem] struct {
	kind    domain.Kind
	mu      sync.RWMutex
	items   map[string]T
	journal chan<- Change
}

func newCollection[T domain.WorkItem](kind domain.Kind, journal chan<- Change) *Collection[T] {
	return &Collection[T]{
		kind:    kind,
		items:   make(map[string]T),
		journal: journal,
	}
}

// Get returns the item by id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Put stores the item and journals the mutation. The snapshot is serialized
// here, on the mutating goroutine, before the caller can touch the item again.
func (c *Collection[T]) Put(item T) {
	id := item.Core().ID
	doc, err := json.Marshal(item)
	c.mu.Lock()
	c.items[id] = item
	c.mu.Unlock()
	if err != nil {
		return
	}
	c.emit(Change{Collection: c.kind, Op: OpPut, ID: id, Doc: doc})
}

// Delete removes the item by id, reporting whether it existed.
func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	_, ok := c.items[id]
	if ok {
		delete(c.items, id)
	}
	c.mu.Unlock()
	if ok {
		c.emit(Change{Collection: c.kind, Op: OpDelete, ID: id})
	}
	return ok
}

// IDs returns every identifier in the collection; the allocator derives the
// next id from this snapshot.
func (c *Collection[T]) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	return ids
}

// List returns every item ordered by id.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]T, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Core().ID < items[j].Core().ID
	})
	return items
}

// Len returns the collection size.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Seed loads items without journaling, used for warm starts from snapshots.
func (c *Collection[T]) Seed(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		c.items[item.Core().ID] = item
	}
}

func (c *Collection[T]) emit(change Change) {
	if c.journal == nil {
		return
	}
	select {
	case c.journal <- change:
	default:
		// journal full; the mutation stays in memory only
	}
}

// Store bundles the six work-item collections over one shared journal.
type Store struct {
	journal chan Change

	Tickets      *Collection[*domain.Ticket]
	Averias      *Collection[*domain.Averia]
	Visitas      *Collection[*domain.Visita]
	Derivaciones *Collection[*domain.Derivacion]
	Sesiones     *Collection[*domain.SesionRemota]
	PostVentas   *Collection[*domain.PostVenta]
}

// New builds a store whose mutations are journaled into a buffer of the given
// size. A non-positive size disables journaling (used in tests).
func New(journalBuffer int) *Store {
	var journal chan Change
	if journalBuffer > 0 {
		journal = make(chan Change, journalBuffer)
	}
	return &Store{
		journal:      journal,
		Tickets:      newCollection[*domain.Ticket](domain.KindTicket, journal),
		Averias:      newCollection[*domain.Averia](domain.KindAveria, journal),
		Visitas:      newCollection[*domain.Visita](domain.KindVisita, journal),
		Derivaciones: newCollection[*domain.Derivacion](domain.KindDerivacion, journal),
		Sesiones:     newCollection[*domain.SesionRemota](domain.KindSesionRemota, journal),
		PostVentas:   newCollection[*domain.PostVenta](domain.KindPostVenta, journal),
	}
}

// Changes exposes the journal for the durable writer. Nil when journaling is
// disabled.
func (s *Store) Changes() <-chan Change {
	return s.journal
}
