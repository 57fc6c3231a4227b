package worker

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/soporte-service/internal/domain"
	"github.com/spec-kit/soporte-service/internal/store"
)

type fakeWorkItemRepo struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
	docs    map[domain.Kind]map[string][]byte
}

func newFakeWorkItemRepo() *fakeWorkItemRepo {
	return &fakeWorkItemRepo{
		saved: make(map[string][]byte),
		docs:  make(map[domain.Kind]map[string][]byte),
	}
}

func (f *fakeWorkItemRepo) Save(ctx context.Context, collection domain.Kind, id string, doc []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[string(collection)+"/"+id] = doc
	return nil
}

func (f *fakeWorkItemRepo) Delete(ctx context.Context, collection domain.Kind, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, string(collection)+"/"+id)
	return nil
}

func (f *fakeWorkItemRepo) LoadAll(ctx context.Context, collection domain.Kind) (map[string][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docs[collection], nil
}

func (f *fakeWorkItemRepo) savedDoc(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.saved[key]
	return doc, ok
}

func (f *fakeWorkItemRepo) deletedKeys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestDurableWriterPersistsJournaledMutations(t *testing.T) {
	st := store.New(16)
	repo := newFakeWorkItemRepo()
	writer := NewDurableWriter(repo, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go writer.Run(ctx, st.Changes())

	ticket := &domain.Ticket{
		WorkItemCore: domain.WorkItemCore{ID: "TK-001", Estado: domain.TicketAbierto},
		Asunto:       "sin señal",
	}
	st.Tickets.Put(ticket)

	// edits after the commit belong to the next snapshot, never this one
	ticket.Estado = domain.TicketEnProceso
	ticket.Asunto = "editado tras el commit"

	waitFor(t, func() bool {
		_, ok := repo.savedDoc("tickets/TK-001")
		return ok
	})
	doc, _ := repo.savedDoc("tickets/TK-001")
	var decoded domain.Ticket
	require.NoError(t, json.Unmarshal(doc, &decoded))
	require.Equal(t, "TK-001", decoded.ID)
	require.Equal(t, domain.TicketAbierto, decoded.Estado)
	require.Equal(t, "sin señal", decoded.Asunto)

	st.Tickets.Delete("TK-001")
	waitFor(t, func() bool { return len(repo.deletedKeys()) == 1 })
	require.Equal(t, []string{"tickets/TK-001"}, repo.deletedKeys())
}

func TestWarmLoadSeedsStoreWithoutJournaling(t *testing.T) {
	repo := newFakeWorkItemRepo()
	ticket := &domain.Ticket{
		WorkItemCore: domain.WorkItemCore{ID: "TK-007", Estado: domain.TicketEnProceso},
		Asunto:       "intermitencia",
	}
	doc, err := json.Marshal(ticket)
	require.NoError(t, err)
	repo.docs[domain.KindTicket] = map[string][]byte{"TK-007": doc}
	repo.docs[domain.KindAveria] = map[string][]byte{"AV-001": []byte("{invalid")}

	st := store.New(16)
	require.NoError(t, WarmLoad(context.Background(), repo, st, zap.NewNop()))

	loaded, ok := st.Tickets.Get("TK-007")
	require.True(t, ok)
	require.Equal(t, domain.TicketEnProceso, loaded.Estado)
	require.Equal(t, "intermitencia", loaded.Asunto)

	// Undecodable snapshots are skipped, not fatal.
	require.Equal(t, 0, st.Averias.Len())

	select {
	case change := <-st.Changes():
		t.Fatalf("warm load should not journal, got %v", change)
	default:
	}
}
