package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Counter names recorded by the service.
const (
	RequestsTotal   = "http_requests_total"
	RequestErrors   = "http_request_errors_total"
	RequestMillis   = "http_request_duration_ms_total"
	UploadsTotal    = "storage_uploads_total"
	UploadFailures  = "storage_upload_failures_total"
	DeletesTotal    = "storage_deletes_total"
	MailsSent       = "mail_sent_total"
	MailFailures    = "mail_failures_total"
	CartMutations   = "cart_mutations_total"
	WishlistToggles = "wishlist_toggles_total"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry hands out named counters. Safe for concurrent use; a nil Registry
// discards everything.
type Registry struct {
	started  time.Time
	mu       sync.RWMutex
	counters map[string]*Counter
}

func NewRegistry() *Registry {
	return &Registry{started: time.Now(), counters: make(map[string]*Counter)}
}

func (r *Registry) Counter(name string) *Counter {
	if r == nil {
		return &Counter{}
	}

	r.mu.RLock()
	c, ok := r.counters[name]
	r.mu.RUnlock()
	if ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok = r.counters[name]; !ok {
		c = &Counter{}
		r.counters[name] = c
	}
	return c
}

func (r *Registry) Inc(name string) {
	r.Counter(name).Inc()
}

type Snapshot struct {
	Uptime   string            `json:"uptime"`
	Counters map[string]uint64 `json:"counters"`
	Names    []string          `json:"-"`
}

func (r *Registry) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{Counters: map[string]uint64{}}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Snapshot{
		Uptime:   time.Since(r.started).Round(time.Second).String(),
		Counters: make(map[string]uint64, len(r.counters)),
		Names:    make([]string, 0, len(r.counters)),
	}
	for name, c := range r.counters {
		s.Counters[name] = c.Load()
		s.Names = append(s.Names, name)
	}
	sort.Strings(s.Names)
	return s
}
