package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	NoopLayoutHooks{}.OnCompose(ctx, 10, 5, 3, time.Millisecond)

	e := NoopExportHooks{}
	e.OnExportStart(ctx, "gif")
	e.OnFrameCaptured(ctx, 0, 1024)
	e.OnExportComplete(ctx, "gif", 6, 4096, time.Second, nil)
	e.OnExportBusy(ctx)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should return NoopLayoutHooks by default")
	}
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Export() should return NoopExportHooks by default")
	}

	customLayout := &testLayoutHooks{}
	SetLayoutHooks(customLayout)
	if Layout() != customLayout {
		t.Error("SetLayoutHooks should set custom hooks")
	}

	customExport := &testExportHooks{}
	SetExportHooks(customExport)
	if Export() != customExport {
		t.Error("SetExportHooks should set custom hooks")
	}

	Reset()
	if _, ok := Export().(NoopExportHooks); !ok {
		t.Error("Reset() should restore NoopExportHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testExportHooks{}
	SetExportHooks(custom)
	SetExportHooks(nil)
	if Export() != custom {
		t.Error("SetExportHooks(nil) should not replace existing hooks")
	}

	SetLayoutHooks(nil)
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("SetLayoutHooks(nil) should keep the default")
	}
	Reset()
}

func TestHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testExportHooks{}
	SetExportHooks(h)

	ctx := context.Background()
	Export().OnExportStart(ctx, "png")
	Export().OnFrameCaptured(ctx, 0, 10)
	Export().OnExportComplete(ctx, "png", 1, 10, time.Millisecond, nil)
	Export().OnExportBusy(ctx)

	want := []string{"start:png", "frame", "complete:png", "busy"}
	if len(h.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, h.events[i], want[i])
		}
	}
}

func TestConcurrentAccess(t *testing.T) {
	Reset()
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetExportHooks(&testExportHooks{})
		}()
		go func() {
			defer wg.Done()
			_ = Export()
			_ = Layout()
		}()
	}
	wg.Wait()
}

type testLayoutHooks struct{ NoopLayoutHooks }

type testExportHooks struct {
	events []string
}

func (h *testExportHooks) OnExportStart(_ context.Context, format string) {
	h.events = append(h.events, "start:"+format)
}

func (h *testExportHooks) OnFrameCaptured(context.Context, int, int) {
	h.events = append(h.events, "frame")
}

func (h *testExportHooks) OnExportComplete(_ context.Context, format string, _, _ int, _ time.Duration, _ error) {
	h.events = append(h.events, "complete:"+format)
}

func (h *testExportHooks) OnExportBusy(context.Context) {
	h.events = append(h.events, "busy")
}
