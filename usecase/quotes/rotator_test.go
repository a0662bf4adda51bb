package quotes

import (
	"testing"
	"time"

	"github.com/tasksure/client/internal/schedule"
)

type fakeHandle struct {
	stopped int
}

func (h *fakeHandle) Stop() { h.stopped++ }

type fakeScheduler struct {
	fns     []func()
	handles []*fakeHandle
}

func (s *fakeScheduler) Every(d time.Duration, fn func()) (schedule.Handle, error) {
	s.fns = append(s.fns, fn)
	h := &fakeHandle{}
	s.handles = append(s.handles, h)
	return h, nil
}

func TestRotation_CyclesInOrder(t *testing.T) {
	sched := &fakeScheduler{}
	r := New(sched, "a", "b", "c")

	if err := r.Start(0); err != nil {
		t.Fatalf("Start() err=%v, want nil", err)
	}

	want := []string{"a", "b", "c", "a"}
	for i, expected := range want {
		if got := r.Current(); got != expected {
			t.Fatalf("Current() at step %d=%q, want %q", i, got, expected)
		}
		sched.fns[0]()
	}
}

func TestStart_Idempotent(t *testing.T) {
	sched := &fakeScheduler{}
	r := New(sched)

	if err := r.Start(0); err != nil {
		t.Fatalf("Start() err=%v, want nil", err)
	}
	if err := r.Start(0); err != nil {
		t.Fatalf("Start() err=%v, want nil", err)
	}
	if got := len(sched.fns); got != 1 {
		t.Fatalf("registered schedules=%d, want 1", got)
	}
}

func TestStop_CancelsSchedule(t *testing.T) {
	sched := &fakeScheduler{}
	r := New(sched, "a", "b")

	if err := r.Start(0); err != nil {
		t.Fatalf("Start() err=%v, want nil", err)
	}
	r.Stop()
	if sched.handles[0].stopped != 1 {
		t.Fatalf("handle stopped=%d, want 1", sched.handles[0].stopped)
	}

	// Stop again is harmless; a later Start gets a fresh handle.
	r.Stop()
	if err := r.Start(0); err != nil {
		t.Fatalf("Start() err=%v, want nil", err)
	}
	if got := len(sched.fns); got != 2 {
		t.Fatalf("registered schedules=%d, want 2", got)
	}
}
