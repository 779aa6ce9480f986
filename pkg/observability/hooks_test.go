package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Sort hooks
	s := NoopSortHooks{}
	s.OnSortStart(5)
	s.OnSortComplete(5, 20, 9, time.Millisecond, nil)

	// Bench hooks
	b := NoopBenchHooks{}
	b.OnRunStart(ctx, "run", 12)
	b.OnRowComplete(ctx, "run", 32, 180.5, time.Second)
	b.OnRunComplete(ctx, "run", 12, time.Minute, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "row")
	c.OnCacheMiss(ctx, "row")
	c.OnCacheSet(ctx, "row", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/sort")
	h.OnResponse(ctx, "POST", "/v1/sort", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Sort().(NoopSortHooks); !ok {
		t.Error("Sort() should return NoopSortHooks by default")
	}
	if _, ok := Bench().(NoopBenchHooks); !ok {
		t.Error("Bench() should return NoopBenchHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customSort := &testSortHooks{}
	SetSortHooks(customSort)
	if Sort() != customSort {
		t.Error("SetSortHooks should set custom hooks")
	}

	customBench := &testBenchHooks{}
	SetBenchHooks(customBench)
	if Bench() != customBench {
		t.Error("SetBenchHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Sort().(NoopSortHooks); !ok {
		t.Error("Reset() should restore NoopSortHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSortHooks{}
	SetSortHooks(custom)

	// Setting nil should be ignored
	SetSortHooks(nil)

	if Sort() != custom {
		t.Error("SetSortHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSortHooks struct{ NoopSortHooks }
type testBenchHooks struct{ NoopBenchHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
