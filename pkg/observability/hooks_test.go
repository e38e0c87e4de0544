package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Generate hooks
	g := NoopGenerateHooks{}
	g.OnBuildStart(ctx, "chip", "R_0402_1005Metric")
	g.OnBuildComplete(ctx, "chip", "R_0402_1005Metric", 24, time.Second, nil)
	g.OnWriteComplete(ctx, "out/R_0402_1005Metric.kicad_mod", 2048, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "part")
	c.OnCacheMiss(ctx, "preview")
	c.OnCacheSet(ctx, "part", 1024)

	// Serve hooks
	s := NoopServeHooks{}
	s.OnRequest(ctx, "GET", "/parts/chip/R_0402_1005Metric")
	s.OnResponse(ctx, "GET", "/parts/chip/R_0402_1005Metric", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Serve().(NoopServeHooks); !ok {
		t.Error("Serve() should return NoopServeHooks by default")
	}

	// Set custom hooks
	customGenerate := &testGenerateHooks{}
	SetGenerateHooks(customGenerate)
	if Generate() != customGenerate {
		t.Error("SetGenerateHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServe := &testServeHooks{}
	SetServeHooks(customServe)
	if Serve() != customServe {
		t.Error("SetServeHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Reset() should restore NoopGenerateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGenerateHooks{}
	SetGenerateHooks(custom)

	// Setting nil should be ignored
	SetGenerateHooks(nil)

	if Generate() != custom {
		t.Error("SetGenerateHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testGenerateHooks struct{ NoopGenerateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServeHooks struct{ NoopServeHooks }
