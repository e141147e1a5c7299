package conversion

import (
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	portssvc "github.com/SscSPs/budget_engine/internal/core/ports/services"
	"github.com/patrickmn/go-cache"
)

// DefaultIdleTTL is how long an unused collection is kept before its cache is dropped.
const DefaultIdleTTL = time.Hour

// Collection pairs the cache and coordinator owned by one domain of one scenario.
type Collection struct {
	ScenarioID  string
	Domain      domain.CollectionDomain
	Coordinator *Coordinator

	// LastUpdatedAt of the newest scenario version the cache was bound to
	version time.Time
}

// Cache returns the collection's cache.
func (c *Collection) Cache() *Cache {
	return c.Coordinator.Cache()
}

func collectionKey(scenarioID string, d domain.CollectionDomain) string {
	return scenarioID + "|" + string(d)
}

// Registry owns one Collection per (scenario, domain). Collections share nothing mutable.
// A collection nobody asked for during the idle TTL is forgotten.
type Registry struct {
	mu          sync.Mutex
	client      portssvc.ConversionClient
	logger      *slog.Logger
	options     []CoordinatorOption
	collections *cache.Cache
}

// NewRegistry creates a registry whose coordinators convert through client, expiring
// idle collections after DefaultIdleTTL. options are applied to every coordinator it creates.
func NewRegistry(client portssvc.ConversionClient, logger *slog.Logger, options ...CoordinatorOption) *Registry {
	return NewRegistryWithTTL(client, logger, DefaultIdleTTL, options...)
}

// NewRegistryWithTTL is NewRegistry with an explicit idle TTL. Zero or negative never expires.
func NewRegistryWithTTL(client portssvc.ConversionClient, logger *slog.Logger, idleTTL time.Duration, options ...CoordinatorOption) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	cleanup := idleTTL
	if idleTTL <= 0 {
		idleTTL = cache.NoExpiration
		cleanup = 0
	}
	return &Registry{
		client:      client,
		logger:      logger,
		options:     options,
		collections: cache.New(idleTTL, cleanup),
	}
}

// Collection returns the collection for a scenario domain, creating it on first use.
// When the scenario's base currency differs from the one the cache was built for, the cache is
// invalidated, unless s is older than the version the cache is already bound to.
func (r *Registry) Collection(s domain.Scenario, d domain.CollectionDomain) *Collection {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := collectionKey(s.ScenarioID, d)
	if v, ok := r.collections.Get(key); ok {
		c := v.(*Collection)
		r.collections.SetDefault(key, c)
		r.rebindLocked(c, s)
		return c
	}

	label := s.ScenarioID + "/" + string(d)
	options := make([]CoordinatorOption, 0, len(r.options)+2)
	options = append(options, WithLogger(r.logger))
	options = append(options, r.options...)
	options = append(options, WithLabel(label))

	c := &Collection{
		ScenarioID:  s.ScenarioID,
		Domain:      d,
		Coordinator: NewCoordinator(NewCache(s.ScenarioID, s.BaseCurrency), r.client, options...),
		version:     s.LastUpdatedAt,
	}
	r.collections.SetDefault(key, c)
	return c
}

func (r *Registry) rebindLocked(c *Collection, s domain.Scenario) bool {
	if !s.LastUpdatedAt.IsZero() && s.LastUpdatedAt.Before(c.version) {
		r.logger.Debug("Ignoring outdated scenario version for conversion cache",
			slog.String("scenario_id", s.ScenarioID),
			slog.String("domain", string(c.Domain)),
			slog.String("base_currency", string(s.BaseCurrency)))
		return false
	}
	if s.LastUpdatedAt.After(c.version) {
		c.version = s.LastUpdatedAt
	}
	if !c.Cache().Reset(s.ScenarioID, s.BaseCurrency) {
		return false
	}
	r.logger.Info("Conversion cache invalidated after base currency change",
		slog.String("scenario_id", s.ScenarioID),
		slog.String("domain", string(c.Domain)),
		slog.String("base_currency", string(s.BaseCurrency)))
	return true
}

func (r *Registry) scenarioCollectionsLocked(scenarioID string) []*Collection {
	var out []*Collection
	for _, item := range r.collections.Items() {
		if c := item.Object.(*Collection); c.ScenarioID == scenarioID {
			out = append(out, c)
		}
	}
	return out
}

// Rebind binds every cache of the scenario to s, invalidating those built for another base currency.
// Requests still holding an older version of the scenario then leave the caches alone.
// It returns how many caches were invalidated.
func (r *Registry) Rebind(s domain.Scenario) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, c := range r.scenarioCollectionsLocked(s.ScenarioID) {
		if r.rebindLocked(c, s) {
			n++
		}
	}
	return n
}

// InvalidateScenario invalidates every cache belonging to the scenario and returns how many there were.
func (r *Registry) InvalidateScenario(scenarioID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	collections := r.scenarioCollectionsLocked(scenarioID)
	for _, c := range collections {
		c.Cache().InvalidateAll()
	}
	if len(collections) > 0 {
		r.logger.Info("Conversion caches invalidated", slog.String("scenario_id", scenarioID), slog.Int("collections", len(collections)))
	}
	return len(collections)
}

// Len returns the number of collections that have not expired.
func (r *Registry) Len() int {
	return len(r.collections.Items())
}

// Stats returns a snapshot of every cache of the scenario keyed by domain.
func (r *Registry) Stats(scenarioID string) map[domain.CollectionDomain]Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[domain.CollectionDomain]Stats)
	for _, c := range r.scenarioCollectionsLocked(scenarioID) {
		out[c.Domain] = c.Cache().Stats()
	}
	return out
}
