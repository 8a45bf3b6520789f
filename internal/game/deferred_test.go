package game

import (
	"testing"
	"time"
)

func TestDeferredFiresOnce(t *testing.T) {
	base := time.Unix(1700000000, 0)
	var d Deferred

	if d.Poll(base) {
		t.Fatal("unarmed timer must not fire")
	}

	d.Schedule(base.Add(time.Second))
	if !d.Pending() {
		t.Error("scheduled timer should be pending")
	}
	if d.Poll(base.Add(999 * time.Millisecond)) {
		t.Error("timer fired early")
	}
	if !d.Poll(base.Add(time.Second)) {
		t.Error("timer should fire at its due time")
	}
	if d.Poll(base.Add(2 * time.Second)) {
		t.Error("timer fired twice")
	}
	if !d.Fired() || d.Pending() {
		t.Errorf("after firing: Fired=%v Pending=%v", d.Fired(), d.Pending())
	}
}

func TestDeferredCancel(t *testing.T) {
	base := time.Unix(1700000000, 0)
	var d Deferred

	d.Schedule(base.Add(time.Second))
	d.Cancel()

	if d.Poll(base.Add(time.Hour)) {
		t.Error("cancelled timer must not fire")
	}

	d.Schedule(base)
	if d.Poll(base.Add(time.Hour)) {
		t.Error("cancelled timer must not be re-armed")
	}
}
