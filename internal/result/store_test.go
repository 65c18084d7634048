package result

import (
	"sync"
	"testing"
	"time"

	"github.com/ytget/qr-generator/internal/model"
)

// fakeClock collects scheduled callbacks so tests can fire them explicitly
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, timer)
	return timer
}

// fireAll runs every scheduled callback, stopped ones included, the way a
// timer that already fired before Stop would.
func (c *fakeClock) fireAll() {
	c.mu.Lock()
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()
	for _, timer := range timers {
		timer.f()
	}
}

func (c *fakeClock) active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, timer := range c.timers {
		if !timer.stopped {
			n++
		}
	}
	return n
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{}
	return NewStore(WithAfterFunc(clock.AfterFunc)), clock
}

var testArtifact = model.Artifact{ID: "a1", Kind: model.KindLink, Caption: "AA==", NoCaption: "AQ=="}

func TestStore_SuccessfulRequest(t *testing.T) {
	store, _ := newTestStore()

	var phases []model.Phase
	store.SetUpdateCallback(func(s Snapshot) { phases = append(phases, s.Phase) })

	store.BeginRequest()
	store.Show(testArtifact)

	snap := store.Snapshot()
	if snap.Phase != model.PhaseVisible {
		t.Fatalf("Expected Visible, got %s", snap.Phase)
	}
	if snap.Artifact == nil || snap.Artifact.Caption != "AA==" {
		t.Fatalf("Expected artifact to be held, got %+v", snap.Artifact)
	}
	if !snap.CaptionVisible {
		t.Error("Caption variant should be selected after Show")
	}

	expected := []model.Phase{model.PhasePending, model.PhaseVisible}
	if len(phases) != len(expected) {
		t.Fatalf("Expected %d notifications, got %v", len(expected), phases)
	}
	for i := range expected {
		if phases[i] != expected[i] {
			t.Errorf("Notification %d = %s, expected %s", i, phases[i], expected[i])
		}
	}
}

func TestStore_FailedRequest(t *testing.T) {
	store, _ := newTestStore()

	store.BeginRequest()
	store.Fail()

	snap := store.Snapshot()
	if snap.Phase != model.PhaseHidden || snap.Artifact != nil {
		t.Errorf("Expected Hidden without payload, got %s %+v", snap.Phase, snap.Artifact)
	}
}

func TestStore_HideKeepsPayloadDuringExitWindow(t *testing.T) {
	store, clock := newTestStore()
	store.Show(testArtifact)

	store.Hide()

	snap := store.Snapshot()
	if snap.Phase != model.PhaseExiting {
		t.Fatalf("Expected Exiting, got %s", snap.Phase)
	}
	if snap.Artifact == nil {
		t.Fatal("Payload should be held during the exit window")
	}
	if clock.timers[0].d != DefaultExitWindow {
		t.Errorf("Expected exit window %v, got %v", DefaultExitWindow, clock.timers[0].d)
	}

	clock.fireAll()

	snap = store.Snapshot()
	if snap.Phase != model.PhaseHidden || snap.Artifact != nil {
		t.Errorf("Expected Hidden without payload after the window, got %s %+v", snap.Phase, snap.Artifact)
	}
}

func TestStore_RepeatedHideRestartsSingleTimer(t *testing.T) {
	store, clock := newTestStore()
	store.Show(testArtifact)

	store.Hide()
	store.Hide()
	store.Hide()

	if n := clock.active(); n != 1 {
		t.Errorf("Expected exactly one active exit timer, got %d", n)
	}

	clock.fireAll()
	if phase := store.Phase(); phase != model.PhaseHidden {
		t.Errorf("Expected Hidden, got %s", phase)
	}
}

func TestStore_StaleTimerDoesNotClearNewArtifact(t *testing.T) {
	store, clock := newTestStore()
	store.Show(testArtifact)
	store.Hide()

	newer := model.Artifact{ID: "a2", Caption: "QQ==", NoCaption: "Qg=="}
	store.Show(newer)

	// the old timer fires late anyway
	clock.fireAll()

	snap := store.Snapshot()
	if snap.Phase != model.PhaseVisible {
		t.Fatalf("Expected Visible, got %s", snap.Phase)
	}
	if snap.Artifact == nil || snap.Artifact.ID != "a2" {
		t.Errorf("Newer artifact must survive a stale timer, got %+v", snap.Artifact)
	}
}

func TestStore_BeginRequestWhileVisible(t *testing.T) {
	store, clock := newTestStore()
	store.Show(testArtifact)

	store.BeginRequest()
	if phase := store.Phase(); phase != model.PhaseExiting {
		t.Fatalf("Expected Exiting while the old artifact leaves, got %s", phase)
	}

	clock.fireAll()
	snap := store.Snapshot()
	if snap.Phase != model.PhasePending || snap.Artifact != nil {
		t.Errorf("Expected Pending without payload, got %s %+v", snap.Phase, snap.Artifact)
	}

	store.Show(model.Artifact{ID: "a2"})
	if phase := store.Phase(); phase != model.PhaseVisible {
		t.Errorf("Expected Visible, got %s", phase)
	}
}

func TestStore_FailWhileExitingDropsPendingMarker(t *testing.T) {
	store, clock := newTestStore()
	store.Show(testArtifact)
	store.BeginRequest()

	store.Fail()
	if phase := store.Phase(); phase != model.PhaseExiting {
		t.Fatalf("Exit should continue after a failure, got %s", phase)
	}

	clock.fireAll()
	if phase := store.Phase(); phase != model.PhaseHidden {
		t.Errorf("Expected Hidden once the exit finished, got %s", phase)
	}
}

func TestStore_HideWhilePending(t *testing.T) {
	store, _ := newTestStore()
	store.BeginRequest()
	store.Hide()

	if phase := store.Phase(); phase != model.PhaseHidden {
		t.Errorf("Expected Hidden, got %s", phase)
	}
}

func TestStore_NoOps(t *testing.T) {
	store, _ := newTestStore()

	calls := 0
	store.SetUpdateCallback(func(Snapshot) { calls++ })

	store.Hide()
	store.Fail()
	if store.ToggleCaption() {
		t.Error("ToggleCaption should be ignored while Hidden")
	}
	if calls != 0 {
		t.Errorf("Expected no notifications for no-op transitions, got %d", calls)
	}

	store.BeginRequest()
	store.BeginRequest()
	if calls != 1 {
		t.Errorf("Second BeginRequest should be a no-op, got %d notifications", calls)
	}
}

func TestStore_ToggleCaption(t *testing.T) {
	store, _ := newTestStore()
	store.Show(testArtifact)

	if !store.ToggleCaption() {
		t.Fatal("ToggleCaption should apply while Visible")
	}
	snap := store.Snapshot()
	if snap.CaptionVisible {
		t.Error("Expected bare variant after toggle")
	}
	if got := snap.Artifact.DataURI(snap.CaptionVisible); got != "data:image/png;base64,AQ==" {
		t.Errorf("Unexpected data URI after toggle: %s", got)
	}

	store.Show(testArtifact)
	if !store.Snapshot().CaptionVisible {
		t.Error("Show should reset the caption selection")
	}
}

func TestStore_RealTimer(t *testing.T) {
	store := NewStore(WithExitWindow(10 * time.Millisecond))

	done := make(chan Snapshot, 4)
	store.SetUpdateCallback(func(s Snapshot) { done <- s })

	store.Show(testArtifact)
	<-done
	store.Hide()
	<-done

	select {
	case snap := <-done:
		if snap.Phase != model.PhaseHidden {
			t.Errorf("Expected Hidden after the exit window, got %s", snap.Phase)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Exit timer never fired")
	}
}
