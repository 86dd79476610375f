package watcher

import (
	"testing"
	"time"
)

const testInterval = 50 * time.Millisecond

func receiveBatch(t *testing.T, d *Debouncer, timeout time.Duration) []Change {
	t.Helper()
	select {
	case batch := <-d.Output():
		return batch
	case <-time.After(timeout):
		t.Fatal("timed out waiting for debouncer batch")
		return nil
	}
}

func Test_Debouncer_SingleChange(t *testing.T) {
	d := NewDebouncer(testInterval)
	d.Add("intro.md", OpWrite)

	batch := receiveBatch(t, d, 500*time.Millisecond)
	if len(batch) != 1 {
		t.Fatalf("expected 1 change, got %d", len(batch))
	}
	if batch[0].Path != "intro.md" || batch[0].Op != OpWrite {
		t.Errorf("unexpected change %+v", batch[0])
	}
}

func Test_Debouncer_CollapsesSamePath(t *testing.T) {
	d := NewDebouncer(testInterval)
	d.Add("intro.md", OpCreate)
	d.Add("intro.md", OpWrite)

	batch := receiveBatch(t, d, 500*time.Millisecond)
	if len(batch) != 1 {
		t.Fatalf("expected 1 collapsed change, got %d", len(batch))
	}
	if batch[0].Op != OpWrite {
		t.Errorf("expected latest op %s, got %s", OpWrite, batch[0].Op)
	}
}

func Test_Debouncer_BatchSortedByPath(t *testing.T) {
	d := NewDebouncer(testInterval)
	d.Add("guides/setup.md", OpWrite)
	d.Add("cli/README.md", OpCreate)
	d.Add("adr/0001.md", OpRemove)

	batch := receiveBatch(t, d, 500*time.Millisecond)
	want := []string{"adr/0001.md", "cli/README.md", "guides/setup.md"}
	if len(batch) != len(want) {
		t.Fatalf("expected %d changes, got %d", len(want), len(batch))
	}
	for i, p := range want {
		if batch[i].Path != p {
			t.Errorf("change[%d]: expected %q, got %q", i, p, batch[i].Path)
		}
	}
}

func Test_Debouncer_TimerReset(t *testing.T) {
	d := NewDebouncer(testInterval)
	d.Add("a.md", OpWrite)
	time.Sleep(testInterval / 2)
	d.Add("b.md", OpWrite)

	batch := receiveBatch(t, d, 500*time.Millisecond)
	if len(batch) != 2 {
		t.Fatalf("expected both changes in one batch, got %v", batch)
	}
}

func Test_Debouncer_StopCancelsFlush(t *testing.T) {
	d := NewDebouncer(testInterval)
	d.Add("a.md", OpWrite)
	d.Stop()

	select {
	case batch := <-d.Output():
		t.Fatalf("expected no batch after Stop, got %v", batch)
	case <-time.After(3 * testInterval):
	}
}

func TestOpString(t *testing.T) {
	if OpRename.String() != "rename" || Op(42).String() != "unknown" {
		t.Fatal("unexpected op names")
	}
}

func Test_Debouncer_AddAfterStopDoesNotBlock(t *testing.T) {
	d := NewDebouncer(testInterval)
	d.Stop()
	d.Stop()

	done := make(chan struct{})
	go func() {
		d.Add("late.md", OpWrite)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Add blocked after Stop")
	}
}
