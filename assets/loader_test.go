package assets

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeSource struct {
	mu      sync.Mutex
	files   map[string]string
	fetches map[string]int
	gate    chan struct{}
}

func newFakeSource(files map[string]string) *fakeSource {
	return &fakeSource{files: files, fetches: make(map[string]int)}
}

func (f *fakeSource) fetch(path string) ([]byte, error) {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[path]++
	body, ok := f.files[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return []byte(body), nil
}

func (f *fakeSource) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[path]
}

func decodeString(path string, data []byte) (string, error) {
	if string(data) == "corrupt" {
		return "", errors.New("bad header")
	}
	return string(data), nil
}

// pollUntil drives the loader like a render loop until every request is done
func pollUntil[T any](t *testing.T, l *Loader[T]) (frames int, changed []*Handle[T]) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for l.Pending() > 0 {
		if time.Now().After(deadline) {
			t.Fatalf("loader still has %d pending after deadline", l.Pending())
		}
		got := l.Poll()
		if len(got) > 0 {
			frames++
			changed = append(changed, got...)
		}
		time.Sleep(time.Millisecond)
	}
	return frames, changed
}

func TestLoaderResolvesAssets(t *testing.T) {
	src := newFakeSource(map[string]string{"a.glb": "cake A", "b.glb": "cake B"})
	l := NewLoader(src.fetch, decodeString, 2, 4)

	a := l.Request("a.glb")
	b := l.Request("b.glb")
	if a.Status() != Pending || b.Status() != Pending {
		t.Fatalf("new handles not pending: %v %v", a.Status(), b.Status())
	}

	_, changed := pollUntil(t, l)
	if len(changed) != 2 {
		t.Errorf("got %d changed handles, want 2", len(changed))
	}
	if v, ok := a.Value(); !ok || v != "cake A" {
		t.Errorf("a = %q, %v", v, ok)
	}
	if v, ok := b.Value(); !ok || v != "cake B" {
		t.Errorf("b = %q, %v", v, ok)
	}
}

func TestLoaderDeduplicatesRequests(t *testing.T) {
	src := newFakeSource(map[string]string{"a.glb": "cake"})
	src.gate = make(chan struct{})
	l := NewLoader(src.fetch, decodeString, 4, 4)

	first := l.Request("a.glb")
	second := l.Request("a.glb")
	if first != second {
		t.Fatal("same path returned different handles")
	}
	close(src.gate)

	pollUntil(t, l)
	if n := src.count("a.glb"); n != 1 {
		t.Errorf("fetched %d times, want 1", n)
	}
	if third := l.Request("a.glb"); third != first || third.Status() != Ready {
		t.Errorf("request after load returned %p (%v), want cached %p", third, third.Status(), first)
	}
}

func TestLoaderFailuresStayFailed(t *testing.T) {
	src := newFakeSource(map[string]string{"corrupt.glb": "corrupt"})
	l := NewLoader(src.fetch, decodeString, 1, 1)

	missing := l.Request("missing.glb")
	corrupt := l.Request("corrupt.glb")
	pollUntil(t, l)

	for _, h := range []*Handle[string]{missing, corrupt} {
		if h.Status() != Failed {
			t.Errorf("%s: status %v, want failed", h.Path(), h.Status())
		}
		if h.Err() == nil {
			t.Errorf("%s: no error recorded", h.Path())
		}
		if _, ok := h.Value(); ok {
			t.Errorf("%s: failed handle reports a value", h.Path())
		}
	}

	// Failures are not retried
	l.Request("missing.glb")
	if l.Pending() != 0 {
		t.Error("failed path was requested again")
	}
}

func TestLoaderDecodeBudgetPerPoll(t *testing.T) {
	files := map[string]string{}
	for _, p := range []string{"1", "2", "3", "4", "5"} {
		files[p] = "cake " + p
	}
	src := newFakeSource(files)
	src.gate = make(chan struct{})
	l := NewLoader(src.fetch, decodeString, 5, 2)
	for p := range files {
		l.Request(p)
	}
	close(src.gate)

	// Wait until every fetch has landed so the budget is the only limit
	deadline := time.Now().Add(2 * time.Second)
	for {
		l.mu.Lock()
		n := len(l.arrived)
		l.mu.Unlock()
		if n == len(files) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("only %d fetches arrived", n)
		}
		time.Sleep(time.Millisecond)
	}

	sizes := []int{}
	for l.Pending() > 0 {
		sizes = append(sizes, len(l.Poll()))
	}
	want := []int{2, 2, 1}
	if len(sizes) != len(want) {
		t.Fatalf("poll sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Errorf("poll sizes = %v, want %v", sizes, want)
			break
		}
	}
}

func TestLoaderBoundsConcurrentFetches(t *testing.T) {
	var running, peak atomic.Int32
	release := make(chan struct{})
	fetch := func(path string) ([]byte, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		<-release
		running.Add(-1)
		return []byte(path), nil
	}

	l := NewLoader(fetch, decodeString, 2, 10)
	for _, p := range []string{"a", "b", "c", "d", "e", "f"} {
		l.Request(p)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	pollUntil(t, l)

	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrent fetches = %d, want at most 2", p)
	}
}

func TestStatusString(t *testing.T) {
	if Pending.String() != "pending" || Ready.String() != "ready" || Failed.String() != "failed" {
		t.Error("unexpected status names")
	}
}
