// Package conversion holds the per-collection conversion cache and the batch coordinator
// that fills it through the external conversion service.
package conversion

import (
	"sync"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// State is the lifecycle of one cache entry: Missing -> Pending -> Resolved.
// Entries only go back to Missing through InvalidateAll, a failed batch, or an edit of the record's
// amount or currency. Records a batch left unanswered stay Pending and keep showing their native amount.
type State int

const (
	Missing State = iota
	Pending
	Resolved
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Resolved:
		return "resolved"
	default:
		return "missing"
	}
}

// Key identifies one converted amount inside a cache.
type Key struct {
	RecordID string
	Target   domain.CurrencyCode
}

// Lookup is the answer of Cache.Get.
type Lookup struct {
	State  State
	Amount decimal.Decimal
	Native bool // record already in the target currency; Amount is the native amount
}

// Usable reports whether Amount is expressed in the target currency.
func (l Lookup) Usable() bool {
	return l.Native || l.State == Resolved
}

// AmountResolver returns the amount to show for a record and whether it is in the display currency.
type AmountResolver func(rec domain.Convertible) (decimal.Decimal, bool)

// flight is one dispatched batch. done is closed once its results were written or discarded.
type flight struct {
	done chan struct{}
}

type entry struct {
	state  State
	amount decimal.Decimal
	flight *flight // nil once settled, including Pending entries the service did not answer

	// what was converted; an entry for a different amount or currency is stale
	source   decimal.Decimal
	currency domain.CurrencyCode
}

func newEntry(rec domain.Convertible, state State, f *flight) *entry {
	return &entry{state: state, flight: f, source: rec.NativeAmount(), currency: rec.Currency()}
}

func (e *entry) converts(rec domain.Convertible) bool {
	return e.currency == rec.Currency() && e.source.Equal(rec.NativeAmount())
}

// Stats is a snapshot of a cache's contents.
type Stats struct {
	ScenarioID   string
	BaseCurrency domain.CurrencyCode
	Generation   uint64
	Pending      int
	Unanswered   int // Pending entries whose batch settled without a result
	Resolved     int
}

// Cache maps (record, target currency) to a converted amount for one collection of one scenario.
// For a given (scenario, base currency) it is append-only; a change of either discards every entry.
// No entry is ever created for a record already in the target currency.
type Cache struct {
	mu         sync.Mutex
	scenarioID string
	base       domain.CurrencyCode
	generation uint64
	entries    map[Key]*entry
}

// NewCache creates an empty cache owned by the given scenario.
func NewCache(scenarioID string, base domain.CurrencyCode) *Cache {
	return &Cache{
		scenarioID: scenarioID,
		base:       base,
		entries:    make(map[Key]*entry),
	}
}

// Get returns the state of rec's conversion to target. Same-currency records are reported as
// Native without ever touching the entry map. An entry made for another amount or currency of
// the record is reported as Missing.
func (c *Cache) Get(rec domain.Convertible, target domain.CurrencyCode) Lookup {
	if rec.Currency() == target {
		return Lookup{State: Missing, Amount: rec.NativeAmount(), Native: true}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[Key{RecordID: rec.RecordID(), Target: target}]
	if !ok || !e.converts(rec) {
		return Lookup{State: Missing}
	}
	return Lookup{State: e.state, Amount: e.amount}
}

// Amount is the single amount-resolution path used by aggregation: the native amount for
// same-currency records, the cached amount once resolved, and the native amount as an interim
// value otherwise. The boolean is false while the interim value is shown.
func (c *Cache) Amount(rec domain.Convertible, target domain.CurrencyCode) (decimal.Decimal, bool) {
	l := c.Get(rec, target)
	if l.Usable() {
		return l.Amount, true
	}
	return rec.NativeAmount(), false
}

// Resolver binds Amount to one target currency.
func (c *Cache) Resolver(target domain.CurrencyCode) AmountResolver {
	return func(rec domain.Convertible) (decimal.Decimal, bool) {
		return c.Amount(rec, target)
	}
}

// Contains reports whether an entry exists for the key, in any state.
func (c *Cache) Contains(recordID string, target domain.CurrencyCode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[Key{RecordID: recordID, Target: target}]
	return ok
}

// MarkPending marks records as awaiting conversion to target and returns the current generation.
// Records already present in any state and same-currency records are left alone, unless the
// entry was made for another amount or currency.
func (c *Cache) MarkPending(records []domain.Convertible, target domain.CurrencyCode) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range records {
		if rec.Currency() == target {
			continue
		}
		key := Key{RecordID: rec.RecordID(), Target: target}
		if e, ok := c.entries[key]; ok && e.converts(rec) {
			continue
		}
		c.entries[key] = newEntry(rec, Pending, nil)
	}
	return c.generation
}

// Resolve stores a converted amount. Writing a Missing key is accepted so results can be seeded directly.
func (c *Cache) Resolve(rec domain.Convertible, target domain.CurrencyCode, amount decimal.Decimal) {
	if rec.Currency() == target {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := newEntry(rec, Resolved, nil)
	e.amount = amount
	c.entries[Key{RecordID: rec.RecordID(), Target: target}] = e
}

// InvalidateAll discards every entry. Batches already in flight settle against a newer
// generation and their results are dropped.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidateLocked()
}

func (c *Cache) invalidateLocked() {
	c.generation++
	c.entries = make(map[Key]*entry)
}

// Reset rebinds the cache to a scenario and base currency, invalidating it when either changed.
// It reports whether an invalidation happened.
func (c *Cache) Reset(scenarioID string, base domain.CurrencyCode) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scenarioID == scenarioID && c.base == base {
		return false
	}
	c.scenarioID = scenarioID
	c.base = base
	c.invalidateLocked()
	return true
}

// Generation increases on every invalidation.
func (c *Cache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Stats returns counts per state.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Stats{ScenarioID: c.scenarioID, BaseCurrency: c.base, Generation: c.generation}
	for _, e := range c.entries {
		switch e.state {
		case Pending:
			s.Pending++
			if e.flight == nil {
				s.Unanswered++
			}
		case Resolved:
			s.Resolved++
		}
	}
	return s
}

// claim is the result of partitioning a request: what this caller must dispatch and which
// batches of other callers it has to wait for.
type claim struct {
	generation uint64
	flight     *flight
	dispatch   []domain.Convertible
	waits      []*flight
}

// claim partitions records and marks the ones needing dispatch Pending under a single lock,
// so overlapping concurrent calls never dispatch the same key twice. An entry made for another
// amount or currency of the record is replaced; a batch still carrying the old value will not
// overwrite it.
func (c *Cache) claim(records []domain.Convertible, target domain.CurrencyCode) claim {
	c.mu.Lock()
	defer c.mu.Unlock()

	cl := claim{generation: c.generation}
	waiting := make(map[*flight]struct{})
	for _, rec := range records {
		if rec.Currency() == target {
			continue
		}
		key := Key{RecordID: rec.RecordID(), Target: target}
		if e, ok := c.entries[key]; ok && e.converts(rec) {
			if e.state == Pending && e.flight != nil && e.flight != cl.flight {
				if _, seen := waiting[e.flight]; !seen {
					waiting[e.flight] = struct{}{}
					cl.waits = append(cl.waits, e.flight)
				}
			}
			continue
		}
		if cl.flight == nil {
			cl.flight = &flight{done: make(chan struct{})}
		}
		c.entries[key] = newEntry(rec, Pending, cl.flight)
		cl.dispatch = append(cl.dispatch, rec)
	}
	return cl
}

// settle writes the positional results of a claim. Dispatched keys without a result stay Pending
// with no flight: they are not dispatched again until the record changes or the cache is invalidated.
// When the cache was invalidated since the claim, nothing is written and stale is true.
// The claim's flight is always released.
func (c *Cache) settle(cl claim, target domain.CurrencyCode, results map[int]decimal.Decimal) (resolved int, missing []string, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(cl.flight.done)

	if cl.generation != c.generation {
		return 0, nil, true
	}
	for i, rec := range cl.dispatch {
		e, ok := c.entries[Key{RecordID: rec.RecordID(), Target: target}]
		if !ok || e.flight != cl.flight {
			// seeded through Resolve, or replaced after an edit, while the batch was in flight
			continue
		}
		e.flight = nil
		amount, ok := results[i]
		if !ok {
			missing = append(missing, rec.RecordID())
			continue
		}
		e.state = Resolved
		e.amount = amount
		resolved++
	}
	return resolved, missing, false
}

// release drops the entries of a claim whose batch failed or was abandoned, so a later call
// dispatches them again. The claim's flight is always released.
func (c *Cache) release(cl claim, target domain.CurrencyCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	defer close(cl.flight.done)

	if cl.generation != c.generation {
		return
	}
	for _, rec := range cl.dispatch {
		key := Key{RecordID: rec.RecordID(), Target: target}
		if e, ok := c.entries[key]; ok && e.flight == cl.flight {
			delete(c.entries, key)
		}
	}
}
