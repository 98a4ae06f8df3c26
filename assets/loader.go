package assets

import (
	"fmt"
	"log"
	"sync"
)

// Status is the lifecycle of one requested asset
type Status int

const (
	Pending Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// FetchFunc reads the raw asset. It runs on a worker goroutine.
type FetchFunc func(path string) ([]byte, error)

// DecodeFunc turns fetched bytes into a usable asset. It runs on the thread
// that calls Poll, which for GPU resources must be the render thread.
type DecodeFunc[T any] func(path string, data []byte) (T, error)

// Handle is shared by every requester of the same path. Its fields change
// only inside Poll, so readers on the polling thread need no locking.
type Handle[T any] struct {
	path   string
	status Status
	value  T
	err    error
}

func (h *Handle[T]) Path() string { return h.path }
func (h *Handle[T]) Status() Status { return h.status }
func (h *Handle[T]) Err() error { return h.err }

// Value returns the decoded asset once it is ready
func (h *Handle[T]) Value() (T, bool) {
	return h.value, h.status == Ready
}

type fetched[T any] struct {
	handle *Handle[T]
	data   []byte
	err    error
}

// Loader resolves paths to assets without blocking the render loop.
// Fetches run concurrently on at most `workers` goroutines; decodes happen
// in Poll, at most `perPoll` per call so one frame never absorbs every load.
type Loader[T any] struct {
	fetch   FetchFunc
	decode  DecodeFunc[T]
	perPoll int

	sem chan struct{}

	mu       sync.Mutex
	handles  map[string]*Handle[T]
	arrived  []fetched[T]
	inflight int
}

// NewLoader creates a loader. workers and perPoll below 1 are treated as 1.
func NewLoader[T any](fetch FetchFunc, decode DecodeFunc[T], workers, perPoll int) *Loader[T] {
	if workers < 1 {
		workers = 1
	}
	if perPoll < 1 {
		perPoll = 1
	}
	return &Loader[T]{
		fetch:   fetch,
		decode:  decode,
		perPoll: perPoll,
		sem:     make(chan struct{}, workers),
		handles: make(map[string]*Handle[T]),
	}
}

// Request starts loading path unless it is already known, and returns the
// handle every caller for that path shares
func (l *Loader[T]) Request(path string) *Handle[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.handles[path]; ok {
		return h
	}

	h := &Handle[T]{path: path}
	l.handles[path] = h
	l.inflight++

	go func() {
		l.sem <- struct{}{}
		data, err := l.fetch(path)
		<-l.sem

		l.mu.Lock()
		l.arrived = append(l.arrived, fetched[T]{handle: h, data: data, err: err})
		l.mu.Unlock()
	}()

	return h
}

// Poll finishes fetched assets and returns the handles whose status changed
func (l *Loader[T]) Poll() []*Handle[T] {
	l.mu.Lock()
	n := len(l.arrived)
	if n > l.perPoll {
		n = l.perPoll
	}
	batch := make([]fetched[T], n)
	copy(batch, l.arrived[:n])
	l.arrived = l.arrived[n:]
	l.inflight -= n
	l.mu.Unlock()

	if n == 0 {
		return nil
	}

	changed := make([]*Handle[T], 0, n)
	for _, f := range batch {
		h := f.handle
		if f.err != nil {
			h.status = Failed
			h.err = fmt.Errorf("fetch %s: %w", h.path, f.err)
			log.Printf("Asset %s failed to load: %v", h.path, f.err)
			changed = append(changed, h)
			continue
		}

		value, err := l.decode(h.path, f.data)
		if err != nil {
			h.status = Failed
			h.err = fmt.Errorf("decode %s: %w", h.path, err)
			log.Printf("Asset %s failed to decode: %v", h.path, err)
		} else {
			h.value = value
			h.status = Ready
		}
		changed = append(changed, h)
	}
	return changed
}

// Pending reports how many requested assets have not been finished by Poll
func (l *Loader[T]) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight
}

// Each calls fn for every handle ever requested
func (l *Loader[T]) Each(fn func(*Handle[T])) {
	l.mu.Lock()
	handles := make([]*Handle[T], 0, len(l.handles))
	for _, h := range l.handles {
		handles = append(handles, h)
	}
	l.mu.Unlock()

	for _, h := range handles {
		fn(h)
	}
}
