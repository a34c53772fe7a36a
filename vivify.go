package switchboard

import (
	"sync"
	"time"
)

// Refresher hands out the current instance of one service and forces a
// rebuild once a validity window lapses. It suits services that go stale
// over the application's lifetime (expiring API sessions, leased
// credentials) while the configuration needed to rebuild them lives in
// the container, not in the object itself.
//
// Only this Refresher's view expires: other holders of the old instance
// keep using it until they ask the Refresher again.
type Refresher struct {
	container *Container
	name      string
	validity  time.Duration

	mu      sync.Mutex
	expires time.Time

	now func() time.Time // injectable for tests
}

// NewRefresher creates a refresher for the named service. A validity of
// zero or less means every Get evicts and rebuilds.
func NewRefresher(c *Container, name string, validity time.Duration) *Refresher {
	return &Refresher{
		container: c,
		name:      name,
		validity:  validity,
		now:       time.Now,
	}
}

// Get returns the current instance, rebuilding it first if the validity
// window has lapsed since the previous rebuild.
func (r *Refresher) Get() (any, error) {
	r.mu.Lock()
	now := r.now()
	switch {
	case r.expires.IsZero():
		r.expires = now.Add(r.validity)
	case !now.Before(r.expires):
		r.container.Forget(r.name)
		r.expires = now.Add(r.validity)
	}
	r.mu.Unlock()

	return r.container.Get(r.name)
}
