package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const fnUnit = `
[unit]
name = "%s"

[[decl]]
kind = "function"
name = "id"
visibility = "public"

[[decl.param]]
name = "x"

[[decl.body]]
op = "return"
expr = "x"
`

func writeUnit(t *testing.T, dir, base, unitName string) string {
	t.Helper()
	path := filepath.Join(dir, base)
	src := strings.Replace(fnUnit, "%s", unitName, 1)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLowerFile(t *testing.T) {
	dir := t.TempDir()
	path := writeUnit(t, dir, "a.unit.toml", "alpha")

	res, err := LowerFile(path, nil)
	if err != nil {
		t.Fatalf("LowerFile: %v", err)
	}
	if res.UnitName != "alpha" || res.Cached {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Stats.Funcs != 1 || res.Stats.Props != 0 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
	if !strings.Contains(res.Printed, "fn id(x)") {
		t.Errorf("printed output missing function:\n%s", res.Printed)
	}
}

func TestLowerFileServedFromCache(t *testing.T) {
	dir := t.TempDir()
	path := writeUnit(t, dir, "a.unit.toml", "alpha")

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := &Options{Cache: cache}

	first, err := LowerFile(path, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Cached {
		t.Fatal("first run must not be cached")
	}

	second, err := LowerFile(path, opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Cached {
		t.Fatal("second run must be served from the cache")
	}
	if second.Printed != first.Printed || second.Stats != first.Stats {
		t.Error("cached result diverged from the original")
	}
	if second.Module != nil {
		t.Error("cached results carry no in-memory module")
	}
}

func TestLowerFileEditedUnitBypassesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeUnit(t, dir, "a.unit.toml", "alpha")

	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := &Options{Cache: cache}
	if _, err := LowerFile(path, opts); err != nil {
		t.Fatal(err)
	}

	writeUnit(t, dir, "a.unit.toml", "beta")
	res, err := LowerFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached {
		t.Error("changed content must miss the cache")
	}
	if res.UnitName != "beta" {
		t.Errorf("expected updated unit name, got %q", res.UnitName)
	}
}

func TestLowerDirDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "c.unit.toml", "cc")
	writeUnit(t, dir, "a.unit.toml", "aa")
	writeUnit(t, dir, "b.unit.toml", "bb")

	results, err := LowerDir(context.Background(), dir, &Options{Jobs: 3})
	if err != nil {
		t.Fatalf("LowerDir: %v", err)
	}
	want := []string{"aa", "bb", "cc"}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, name := range want {
		if results[i].UnitName != name {
			t.Errorf("result %d: expected unit %q, got %q", i, name, results[i].UnitName)
		}
	}
}

func TestLowerDirEmpty(t *testing.T) {
	if _, err := LowerDir(context.Background(), t.TempDir(), nil); err == nil {
		t.Error("expected error for a directory with no unit files")
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) Publish(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func TestProgressEvents(t *testing.T) {
	dir := t.TempDir()
	path := writeUnit(t, dir, "a.unit.toml", "alpha")

	sink := &recordSink{}
	if _, err := LowerFile(path, &Options{Progress: sink}); err != nil {
		t.Fatal(err)
	}

	var stages []Stage
	for _, ev := range sink.events {
		if ev.Path != path {
			t.Errorf("event for unexpected path %q", ev.Path)
		}
		stages = append(stages, ev.Stage)
	}
	want := []Stage{StageLoad, StageLower, StageValidate, StageDone}
	if len(stages) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d: expected %v, got %v", i, want[i], stages[i])
		}
	}
}

func TestChannelSinkNeverBlocks(t *testing.T) {
	ch := make(chan Event, 1)
	sink := ChannelSink{Ch: ch}
	sink.Publish(Event{Stage: StageQueued})
	sink.Publish(Event{Stage: StageDone}) // full channel, dropped
	if len(ch) != 1 {
		t.Fatalf("expected 1 buffered event, got %d", len(ch))
	}
	if ev := <-ch; ev.Stage != StageQueued {
		t.Errorf("expected the first event to survive, got %v", ev.Stage)
	}
}

func TestListUnitFilesSorted(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeUnit(t, sub, "z.unit.toml", "zz")
	writeUnit(t, dir, "a.unit.toml", "aa")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ListUnitFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 unit files, got %v", files)
	}
	if !strings.HasSuffix(files[0], "a.unit.toml") || !strings.HasSuffix(files[1], filepath.Join("nested", "z.unit.toml")) {
		t.Errorf("unexpected order: %v", files)
	}
}
