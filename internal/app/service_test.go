package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type blockingService struct {
	name    string
	started atomic.Bool
	stopped atomic.Bool
}

func (s *blockingService) Name() string { return s.name }

func (s *blockingService) Start(ctx context.Context) error {
	s.started.Store(true)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

type failingService struct {
	err error
}

func (s failingService) Name() string                { return "failing" }
func (s failingService) Start(context.Context) error { return s.err }
func (s failingService) Stop(context.Context) error  { return nil }

func TestRunnerStopsAllServicesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	first := &blockingService{name: "http"}
	second := &blockingService{name: "sweeper"}
	runner := NewRunner(first, second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runner.Run(ctx, time.Second, zap.NewNop().Sugar())
	}()
	for !first.started.Load() || !second.started.Load() {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled run should return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
	if !first.stopped.Load() || !second.stopped.Load() {
		t.Fatalf("expected every service stopped")
	}
}

func TestRunnerReturnsFirstServiceError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("listen failed")
	other := &blockingService{name: "worker"}
	runner := NewRunner(failingService{err: boom}, other)

	err := runner.Run(context.Background(), time.Second, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
	if !other.stopped.Load() {
		t.Fatalf("expected remaining service stopped")
	}
}

func TestRunnerWithoutServices(t *testing.T) {
	if err := NewRunner().Run(context.Background(), time.Second, nil); err == nil {
		t.Fatalf("expected error without services")
	}
	if err := RunWithOptions(nil, Options{}); err == nil {
		t.Fatalf("expected error for nil runner")
	}
}

type quickService struct {
	stopped atomic.Bool
}

func (s *quickService) Name() string                { return "quick" }
func (s *quickService) Start(context.Context) error { return nil }
func (s *quickService) Stop(context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunnerStopsWhenServicesExitOnTheirOwn(t *testing.T) {
	defer goleak.VerifyNone(t)

	svc := &quickService{}
	if err := NewRunner(svc).Run(context.Background(), time.Second, nil); err != nil {
		t.Fatalf("clean exit should return nil, got %v", err)
	}
	if !svc.stopped.Load() {
		t.Fatalf("expected stop to be called")
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]string{
		"":        ModeAll,
		" API ":   ModeAPI,
		"worker":  ModeWorker,
		"all":     ModeAll,
		"cluster": "",
	}
	for raw, want := range cases {
		got, err := ParseMode(raw)
		if want == "" {
			if err == nil {
				t.Fatalf("mode %q should be rejected", raw)
			}
			continue
		}
		if err != nil || got != want {
			t.Fatalf("mode %q: want %s got %s (%v)", raw, want, got, err)
		}
	}
}

func TestHTTPServiceServesUntilStopped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	svc := NewHTTPService("127.0.0.1:0", handler)

	done := make(chan error, 1)
	go func() {
		done <- svc.Start(context.Background())
	}()

	var addr string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr = svc.Addr(); addr != "127.0.0.1:0" {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "ok" {
		t.Fatalf("unexpected body %q", body)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.Stop(stopCtx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start should return nil after stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("http service did not exit")
	}
}

func TestRunnerStopsOthersWhenOneServiceExitsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	long := &blockingService{name: "http"}
	short := &quickService{}
	done := make(chan error, 1)
	go func() {
		done <- NewRunner(long, short).Run(context.Background(), time.Second, nil)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("clean exit should return nil, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner kept running after a service returned")
	}
	if !long.started.Load() || !long.stopped.Load() || !short.stopped.Load() {
		t.Fatalf("expected every service stopped, http started=%v stopped=%v quick stopped=%v",
			long.started.Load(), long.stopped.Load(), short.stopped.Load())
	}
}
