package practice

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/lumina/internal/dailykey"
	"github.com/yanizio/lumina/internal/ident"
	"github.com/yanizio/lumina/internal/upstream"
)

type fakeLookup struct {
	calls   atomic.Int32
	release chan struct{}
	ids     map[string]string
	err     error
}

func (f *fakeLookup) PracticeByCode(ctx context.Context, code string) (*upstream.Practice, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, errors.Join(upstream.ErrTimeout, ctx.Err())
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	id, ok := f.ids[code]
	if !ok {
		return nil, upstream.ErrNotFound
	}
	return &upstream.Practice{ID: upstream.Text(id), Name: "Practice " + code}, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestResolver(l Lookup, c *clock, static map[string]string) *Resolver {
	return NewResolver(l, Options{
		Static: static,
		Keys:   dailykey.NewSource(c.now),
		Logger: zap.NewNop(),
	})
}

func TestStaticCodesSkipNetwork(t *testing.T) {
	l := &fakeLookup{}
	r := newTestResolver(l, &clock{t: time.Now()}, nil)

	for code, want := range map[string]ID{"DEMO": "67", "-DEMO-": "67", "e007": "71", "R003": "173", "-d020-": "741"} {
		got, err := r.Resolve(context.Background(), code)
		if err != nil || got != want {
			t.Fatalf("Resolve(%q) = %q, %v; want %q", code, got, err, want)
		}
	}
	if n := l.calls.Load(); n != 0 {
		t.Fatalf("static codes made %d upstream calls", n)
	}
}

func TestConfiguredCodesOverrideBuiltins(t *testing.T) {
	l := &fakeLookup{}
	r := newTestResolver(l, &clock{t: time.Now()}, map[string]string{"demo": "99", "-new1-": "5"})

	if id, _ := r.Resolve(context.Background(), "DEMO"); id != "99" {
		t.Fatalf("DEMO = %q, want override 99", id)
	}
	if id, _ := r.Resolve(context.Background(), "NEW1"); id != "5" {
		t.Fatalf("NEW1 = %q, want 5", id)
	}
	if l.calls.Load() != 0 {
		t.Fatal("configured codes must not hit upstream")
	}
}

func TestLookupMemoisedPerWindow(t *testing.T) {
	l := &fakeLookup{ids: map[string]string{"ABC1": "900"}}
	c := &clock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	r := newTestResolver(l, c, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id, err := r.Resolve(ctx, "abc1")
		if err != nil || id != "900" {
			t.Fatalf("Resolve = %q, %v", id, err)
		}
	}
	if n := l.calls.Load(); n != 1 {
		t.Fatalf("upstream calls = %d, want 1", n)
	}

	c.t = c.t.Add(24 * time.Hour)
	if _, err := r.Resolve(ctx, "ABC1"); err != nil {
		t.Fatal(err)
	}
	if n := l.calls.Load(); n != 2 {
		t.Fatalf("upstream calls after rollover = %d, want 2", n)
	}
}

func TestConcurrentLookupsCollapse(t *testing.T) {
	l := &fakeLookup{ids: map[string]string{"ZZ9": "12"}, release: make(chan struct{})}
	r := newTestResolver(l, &clock{t: time.Now()}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if id, err := r.Resolve(context.Background(), "ZZ9"); err != nil || id != "12" {
				t.Errorf("Resolve = %q, %v", id, err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(l.release)
	wg.Wait()

	if n := l.calls.Load(); n != 1 {
		t.Fatalf("upstream calls = %d, want 1", n)
	}
}

func TestCancelledCallerDoesNotFailWaiters(t *testing.T) {
	l := &fakeLookup{ids: map[string]string{"ZZZ1": "31"}, release: make(chan struct{})}
	r := newTestResolver(l, &clock{t: time.Now()}, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	leader := make(chan error, 1)
	go func() {
		_, err := r.Resolve(ctxA, "ZZZ1")
		leader <- err
	}()
	for l.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	type result struct {
		id  ID
		err error
	}
	follower := make(chan result, 1)
	go func() {
		id, err := r.Resolve(context.Background(), "ZZZ1")
		follower <- result{id, err}
	}()
	time.Sleep(20 * time.Millisecond)
	cancelA()
	time.Sleep(20 * time.Millisecond)
	close(l.release)

	got := <-follower
	if got.err != nil || got.id != "31" {
		t.Fatalf("follower Resolve = %q, %v; want 31", got.id, got.err)
	}
	<-leader
}

func TestResolvePracticeReturnsFetchedRecord(t *testing.T) {
	l := &fakeLookup{ids: map[string]string{"NEW7": "88"}}
	r := newTestResolver(l, &clock{t: time.Now()}, nil)
	ctx := context.Background()

	id, p, err := r.ResolvePractice(ctx, "-new7-")
	if err != nil || id != "88" || p == nil || p.Name != "Practice NEW7" {
		t.Fatalf("ResolvePractice = %q, %+v, %v", id, p, err)
	}

	// Memoised and static hits carry no record.
	if id, p, err := r.ResolvePractice(ctx, "NEW7"); err != nil || id != "88" || p != nil {
		t.Fatalf("memo hit = %q, %+v, %v", id, p, err)
	}
	if id, p, err := r.ResolvePractice(ctx, "DEMO"); err != nil || id != "67" || p != nil {
		t.Fatalf("static hit = %q, %+v, %v", id, p, err)
	}
	if n := l.calls.Load(); n != 1 {
		t.Fatalf("upstream calls = %d, want 1", n)
	}
}

func TestResolveErrors(t *testing.T) {
	ctx := context.Background()

	r := newTestResolver(&fakeLookup{}, &clock{t: time.Now()}, nil)
	if _, err := r.Resolve(ctx, "NOPE"); !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := r.Resolve(ctx, "--"); !errors.Is(err, upstream.ErrNoIdentifier) {
		t.Fatalf("want ErrNoIdentifier, got %v", err)
	}

	ue := &upstream.UpstreamError{Service: "passport", Status: 500, Message: "boom"}
	r = newTestResolver(&fakeLookup{err: ue}, &clock{t: time.Now()}, nil)
	var got *upstream.UpstreamError
	if _, err := r.Resolve(ctx, "X1"); !errors.As(err, &got) || got.Status != 500 {
		t.Fatalf("want UpstreamError, got %v", err)
	}
}

func TestResolveIdentifier(t *testing.T) {
	l := &fakeLookup{}
	r := newTestResolver(l, &clock{t: time.Now()}, nil)
	ctx := context.Background()

	if id, err := r.ResolveIdentifier(ctx, ident.Classify("741")); err != nil || id != "741" {
		t.Fatalf("numeric = %q, %v", id, err)
	}
	if id, err := r.ResolveIdentifier(ctx, ident.Classify("-DEMO-")); err != nil || id != "67" {
		t.Fatalf("code = %q, %v", id, err)
	}
	if _, err := r.ResolveIdentifier(ctx, ident.Classify("a.b")); !errors.Is(err, ErrInvalidIdentifier) {
		t.Fatalf("invalid: want ErrInvalidIdentifier, got %v", err)
	}
	if l.calls.Load() != 0 {
		t.Fatal("unexpected upstream call")
	}
}
