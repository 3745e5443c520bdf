package store

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The store calls them on hot paths.
type Hooks interface {
	// An entry was deleted on read.
	// reason is one of the Reason* constants.
	SelfHeal(storageKey, reason string)

	// A bulk read was rejected and fell back to singles.
	BulkRejected(namespace string, requested int, reason string)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string, isBulk bool)

	// GenStore errors (snapshot or bump).
	// count is number of keys involved (1 for Snapshot, N for SnapshotMany).
	GenSnapshotError(count int, err error)
	GenBumpError(storageKey string, err error)

	// Both gen bump and delete failed during Delete (likely backend outage).
	DeleteOutage(key string, bumpErr, delErr error)

	// Bulk is enabled with a local GenStore (stale bulks possible across replicas).
	LocalGenWithBulk()
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)           {}
func (NopHooks) BulkRejected(string, int, string)  {}
func (NopHooks) ProviderSetRejected(string, bool)  {}
func (NopHooks) GenSnapshotError(int, error)       {}
func (NopHooks) GenBumpError(string, error)        {}
func (NopHooks) DeleteOutage(string, error, error) {}
func (NopHooks) LocalGenWithBulk()                 {}
