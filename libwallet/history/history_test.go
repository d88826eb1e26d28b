package history_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"decred.org/dcrwallet/v2/errors"
	. "github.com/crypto-power/fediwallet/libwallet/history"
	"github.com/crypto-power/fediwallet/libwallet/txtypes"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func tx(id string, createdAt int64) *txtypes.Transaction {
	return &txtypes.Transaction{
		ID:        id,
		CreatedAt: createdAt,
		Amount:    1000,
		Kind:      txtypes.KindLnReceive,
		State:     txtypes.PlainState(txtypes.StateClaimed),
	}
}

func ids(txs []*txtypes.Transaction) []string {
	out := make([]string, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

type listCall struct {
	federationID string
	startTime    *int64
	limit        int
}

type notesCall struct {
	federationID, txID, notes string
}

type fakeBackend struct {
	mu        sync.Mutex
	pages     [][]*txtypes.Transaction
	listErr   error
	notesErr  error
	delay     time.Duration
	calls     []listCall
	notes     []notesCall
	inFlight  int32
	maxFlight int32
}

func (b *fakeBackend) ListTransactions(ctx context.Context, federationID string, startTime *int64, limit int) ([]*txtypes.Transaction, error) {
	n := atomic.AddInt32(&b.inFlight, 1)
	defer atomic.AddInt32(&b.inFlight, -1)
	for {
		max := atomic.LoadInt32(&b.maxFlight)
		if n <= max || atomic.CompareAndSwapInt32(&b.maxFlight, max, n) {
			break
		}
	}
	if b.delay > 0 {
		time.Sleep(b.delay)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, listCall{federationID, startTime, limit})
	if b.listErr != nil {
		return nil, b.listErr
	}
	if len(b.pages) == 0 {
		return nil, nil
	}
	page := b.pages[0]
	if len(b.pages) > 1 {
		b.pages = b.pages[1:]
	}
	return page, nil
}

func (b *fakeBackend) UpdateTransactionNotes(ctx context.Context, federationID, txID, notes string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.notes = append(b.notes, notesCall{federationID, txID, notes})
	return b.notesErr
}

// routedBackend fails the federations in failing at once and answers the
// others after delay, unless ctx is done first.
type routedBackend struct {
	failing map[string]bool
	delay   time.Duration
	page    []*txtypes.Transaction
}

func (b *routedBackend) ListTransactions(ctx context.Context, federationID string, startTime *int64, limit int) ([]*txtypes.Transaction, error) {
	if b.failing[federationID] {
		return nil, fmt.Errorf("federation %s unreachable", federationID)
	}
	select {
	case <-time.After(b.delay):
		return b.page, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *routedBackend) UpdateTransactionNotes(ctx context.Context, federationID, txID, notes string) error {
	return nil
}

type memStore struct {
	mu    sync.Mutex
	saved map[string][]*txtypes.Transaction
}

func (s *memStore) Read(federationID string, offset, limit int) ([]*txtypes.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[federationID], nil
}

func (s *memStore) ReplaceAll(federationID string, txs []*txtypes.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[federationID] = append([]*txtypes.Transaction(nil), txs...)
	return nil
}

type recordingListener struct {
	mu      sync.Mutex
	updates []int
	notes   []string
}

func (l *recordingListener) OnHistoryUpdated(federationID string, count int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.updates = append(l.updates, count)
}

func (l *recordingListener) OnNotesUpdated(federationID, txID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notes = append(l.notes, txID)
}

var _ = Describe("MergeTransactions", func() {
	It("orders newest first and keeps arrival order for equal timestamps", func() {
		merged := MergeTransactions(nil, []*txtypes.Transaction{tx("a", 5), tx("b", 3), tx("c", 5), tx("d", 1)})
		Expect(ids(merged)).To(Equal([]string{"a", "c", "b", "d"}))
	})

	It("is idempotent", func() {
		incoming := []*txtypes.Transaction{tx("a", 5), tx("b", 3), tx("c", 5), tx("d", 1)}
		once := MergeTransactions(nil, incoming)
		twice := MergeTransactions(once, incoming)
		Expect(ids(twice)).To(Equal(ids(once)))
	})

	It("replaces records with the same id", func() {
		old := tx("a", 5)
		updated := tx("a", 5)
		updated.Notes = "coffee"

		merged := MergeTransactions([]*txtypes.Transaction{old, tx("b", 4)}, []*txtypes.Transaction{updated})
		Expect(merged).To(HaveLen(2))
		Expect(merged[0]).To(BeIdenticalTo(updated))
	})

	It("skips nil records", func() {
		merged := MergeTransactions([]*txtypes.Transaction{nil}, []*txtypes.Transaction{tx("a", 1), nil})
		Expect(ids(merged)).To(Equal([]string{"a"}))
	})
})

var _ = Describe("Cache", func() {
	var (
		ctx     context.Context
		backend *fakeBackend
		cache   *Cache
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &fakeBackend{}
		cache = NewCache(backend, nil)
	})

	It("rejects an empty federation", func() {
		_, err := cache.Fetch(ctx, "", FetchOptions{})
		Expect(errors.Is(err, errors.Invalid)).To(BeTrue())
	})

	It("merges pages and paginates from the oldest record", func() {
		backend.pages = [][]*txtypes.Transaction{
			{tx("c", 30), tx("b", 20)},
			{tx("a", 10)},
		}

		list, err := cache.Fetch(ctx, "fed1", FetchOptions{Limit: 2})
		Expect(err).To(BeNil())
		Expect(ids(list)).To(Equal([]string{"c", "b"}))
		Expect(backend.calls[0].startTime).To(BeNil())
		Expect(backend.calls[0].limit).To(Equal(2))

		list, err = cache.Fetch(ctx, "fed1", FetchOptions{Limit: 2, PaginateFromLast: true})
		Expect(err).To(BeNil())
		Expect(ids(list)).To(Equal([]string{"c", "b", "a"}))
		Expect(*backend.calls[1].startTime).To(Equal(int64(20)))
	})

	It("uses the default page size", func() {
		_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
		Expect(err).To(BeNil())
		Expect(backend.calls[0].limit).To(Equal(20))
	})

	It("discards the cached list on refresh", func() {
		backend.pages = [][]*txtypes.Transaction{
			{tx("a", 10), tx("b", 5)},
			{tx("c", 12)},
		}
		_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
		Expect(err).To(BeNil())

		list, err := cache.Fetch(ctx, "fed1", FetchOptions{Refresh: true})
		Expect(err).To(BeNil())
		Expect(ids(list)).To(Equal([]string{"c"}))
		Expect(ids(cache.Transactions("fed1"))).To(Equal([]string{"c"}))
	})

	It("leaves the cache untouched when the backend fails", func() {
		backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}
		_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
		Expect(err).To(BeNil())

		backend.listErr = fmt.Errorf("connection refused")
		_, err = cache.Fetch(ctx, "fed1", FetchOptions{Refresh: true})
		Expect(errors.Is(err, errors.IO)).To(BeTrue())
		Expect(ids(cache.Transactions("fed1"))).To(Equal([]string{"a"}))
	})

	It("keeps federations apart", func() {
		backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}
		_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
		Expect(err).To(BeNil())
		Expect(cache.Transactions("fed2")).To(BeEmpty())
	})

	It("serializes fetches of one federation", func() {
		backend.delay = 10 * time.Millisecond
		backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
				Expect(err).To(BeNil())
			}()
		}
		wg.Wait()

		Expect(atomic.LoadInt32(&backend.maxFlight)).To(Equal(int32(1)))
		Expect(ids(cache.Transactions("fed1"))).To(Equal([]string{"a"}))
	})

	It("refreshes several federations", func() {
		backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}
		Expect(cache.RefreshAll(ctx, []string{"fed1", "fed2"}, 5)).To(Succeed())
		Expect(ids(cache.Transactions("fed1"))).To(Equal([]string{"a"}))
		Expect(ids(cache.Transactions("fed2"))).To(Equal([]string{"a"}))
		Expect(backend.calls).To(HaveLen(2))
	})

	It("refreshes distinct federations concurrently", func() {
		backend.delay = 20 * time.Millisecond
		backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}
		Expect(cache.RefreshAll(ctx, []string{"fed1", "fed2"}, 5)).To(Succeed())
		Expect(atomic.LoadInt32(&backend.maxFlight)).To(Equal(int32(2)))
	})

	It("keeps refreshing healthy federations when one fails", func() {
		routed := &routedBackend{
			failing: map[string]bool{"bad": true},
			delay:   50 * time.Millisecond,
			page:    []*txtypes.Transaction{tx("a", 10)},
		}
		cache = NewCache(routed, nil)

		err := cache.RefreshAll(ctx, []string{"bad", "good"}, 5)
		Expect(errors.Is(err, errors.IO)).To(BeTrue())
		Expect(ids(cache.Transactions("good"))).To(Equal([]string{"a"}))
		Expect(cache.Transactions("bad")).To(BeEmpty())
	})

	Context("notes", func() {
		It("defaults notes from the initial notes once", func() {
			withInitial := tx("a", 10)
			withInitial.FrontendMetadata = &txtypes.FrontendMetadata{InitialNotes: "lunch"}
			backend.pages = [][]*txtypes.Transaction{{withInitial}}

			list, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())
			Expect(list[0].Notes).To(Equal("lunch"))
			Expect(withInitial.Notes).To(BeEmpty())
			Expect(backend.notes).To(Equal([]notesCall{{"fed1", "a", "lunch"}}))

			_, err = cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())
			Expect(backend.notes).To(HaveLen(1))
		})

		It("keeps defaulted notes when the backend push fails", func() {
			withInitial := tx("a", 10)
			withInitial.FrontendMetadata = &txtypes.FrontendMetadata{InitialNotes: "lunch"}
			backend.pages = [][]*txtypes.Transaction{{withInitial}}
			backend.notesErr = fmt.Errorf("offline")

			list, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())
			Expect(list[0].Notes).To(Equal("lunch"))
		})

		It("updates notes of a cached record", func() {
			backend.pages = [][]*txtypes.Transaction{{tx("a", 10), tx("b", 5)}}
			_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())

			updated, err := cache.UpdateNotes(ctx, "fed1", "b", "rent")
			Expect(err).To(BeNil())
			Expect(updated.Notes).To(Equal("rent"))
			Expect(cache.Transaction("fed1", "b").Notes).To(Equal("rent"))
			Expect(ids(cache.Transactions("fed1"))).To(Equal([]string{"a", "b"}))
		})

		It("fails for an unknown record", func() {
			_, err := cache.UpdateNotes(ctx, "fed1", "missing", "x")
			Expect(errors.Is(err, errors.NotExist)).To(BeTrue())
			Expect(backend.notes).To(BeEmpty())
		})

		It("keeps the old notes when the backend rejects the update", func() {
			backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}
			_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())

			backend.notesErr = fmt.Errorf("offline")
			_, err = cache.UpdateNotes(ctx, "fed1", "a", "x")
			Expect(errors.Is(err, errors.IO)).To(BeTrue())
			Expect(cache.Transaction("fed1", "a").Notes).To(BeEmpty())
		})
	})

	Context("listeners", func() {
		It("notifies registered listeners", func() {
			l := &recordingListener{}
			Expect(cache.AddHistoryListener(l, "ui")).To(Succeed())
			Expect(cache.AddHistoryListener(l, "ui")).NotTo(Succeed())

			backend.pages = [][]*txtypes.Transaction{{tx("a", 10), tx("b", 5)}}
			_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())
			_, err = cache.UpdateNotes(ctx, "fed1", "a", "x")
			Expect(err).To(BeNil())

			Expect(l.updates).To(Equal([]int{2, 2}))
			Expect(l.notes).To(Equal([]string{"a"}))

			cache.RemoveHistoryListener("ui")
			_, err = cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())
			Expect(l.updates).To(HaveLen(2))
		})
	})

	Context("with a store", func() {
		var store *memStore

		BeforeEach(func() {
			store = &memStore{saved: make(map[string][]*txtypes.Transaction)}
			cache = NewCache(backend, store)
		})

		It("writes through and reloads", func() {
			backend.pages = [][]*txtypes.Transaction{{tx("a", 10), tx("b", 5)}}
			_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())
			Expect(ids(store.saved["fed1"])).To(Equal([]string{"a", "b"}))

			reloaded := NewCache(backend, store)
			Expect(reloaded.Load("fed1")).To(Succeed())
			Expect(ids(reloaded.Transactions("fed1"))).To(Equal([]string{"a", "b"}))
		})

		It("clears the cached history", func() {
			backend.pages = [][]*txtypes.Transaction{{tx("a", 10)}}
			_, err := cache.Fetch(ctx, "fed1", FetchOptions{})
			Expect(err).To(BeNil())

			cache.Clear("fed1")
			Expect(cache.Transactions("fed1")).To(BeEmpty())
		})
	})
})
