package flight

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
	"weak"
)

// Cache coalesces concurrent work for the same key and keeps finished results
// for a while. After the retention window a result survives only as a weak
// pointer, so it is reused until the garbage collector reclaims it.
type Cache[K comparable, V any] struct {
	finished map[K]*entry[V]
	fmu      *sync.RWMutex

	pending map[K]*job[V]
	pmu     *sync.Mutex

	// ttl is the strong-hold duration in nanoseconds. <= 0 disables retention
	// and only in-flight work is shared.
	ttl *atomic.Int64
}

// ErrWorkPanicked is returned to callers that joined a call whose work panicked.
var ErrWorkPanicked = errors.New("flight: work panicked")

type entry[V any] struct {
	w        weak.Pointer[V]
	strong   *V // non-nil until deadline
	deadline time.Time
}

type job[V any] struct {
	val  V
	err  error
	done chan struct{}
}

func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		finished: make(map[K]*entry[V]),
		fmu:      new(sync.RWMutex),
		pending:  make(map[K]*job[V]),
		pmu:      new(sync.Mutex),
		ttl:      new(atomic.Int64),
	}
	c.Expiry(ttl)
	return c
}

// Expiry sets the retention window for future results.
func (c *Cache[K, V]) Expiry(d time.Duration) {
	c.ttl.Store(int64(max(d, 0)))
}

// Get returns the retained result for k, joins a running call for k, or runs
// work. Errors are shared with waiters but never retained.
func (c *Cache[K, V]) Get(k K, work func() (V, error)) (V, error) {
	c.pmu.Lock()

	if e, ok := c.loadEntry(k); ok {
		if vp := e.w.Value(); vp != nil {
			c.pmu.Unlock()
			return *vp, nil
		}
		c.fmu.Lock()
		if cur, ok := c.finished[k]; ok && cur == e {
			delete(c.finished, k)
		}
		c.fmu.Unlock()
	}

	if pending, ok := c.pending[k]; ok {
		c.pmu.Unlock()
		<-pending.done
		return pending.val, pending.err
	}

	j := &job[V]{done: make(chan struct{})}
	c.pending[k] = j
	c.pmu.Unlock()

	// Waiters are released even when work panics; the panic itself keeps
	// unwinding through this caller.
	finished := false
	defer func() {
		if !finished {
			var zero V
			j.val, j.err = zero, ErrWorkPanicked
		}
		c.pmu.Lock()
		close(j.done)
		delete(c.pending, k)
		c.pmu.Unlock()
	}()

	j.val, j.err = work()
	finished = true
	if j.err == nil {
		c.storeEntry(k, j.val)
	}
	return j.val, j.err
}

// Forget drops any retained result for k.
func (c *Cache[K, V]) Forget(k K) {
	c.fmu.Lock()
	delete(c.finished, k)
	c.fmu.Unlock()
}

// Len reports the number of retained entries, including weak ones.
func (c *Cache[K, V]) Len() int {
	c.fmu.RLock()
	defer c.fmu.RUnlock()
	return len(c.finished)
}

func (c *Cache[K, V]) loadEntry(k K) (*entry[V], bool) {
	c.fmu.RLock()
	e, ok := c.finished[k]
	c.fmu.RUnlock()
	if !ok {
		return nil, false
	}

	if time.Now().After(e.deadline) {
		c.fmu.Lock()
		if cur, ok := c.finished[k]; ok && cur == e && e.strong != nil {
			e.strong = nil
		}
		c.fmu.Unlock()
	}
	return e, true
}

func (c *Cache[K, V]) storeEntry(k K, val V) {
	d := time.Duration(c.ttl.Load())
	if d <= 0 {
		return
	}

	// dedicated heap cell so the weak pointer has a stable address
	v := new(V)
	*v = val

	e := &entry[V]{w: weak.Make(v), strong: v, deadline: time.Now().Add(d)}
	c.fmu.Lock()
	c.finished[k] = e
	c.fmu.Unlock()
}
