package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"strhash"
	"strhash/internal/diag"
	"strhash/internal/driver"
	"strhash/internal/observ"
	"strhash/internal/project"
	"strhash/internal/testkit"
)

func writeSrc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fnvLit(s string) string {
	return strconv.FormatUint(uint64(strhash.FNV1a32(s)), 10)
}

func TestExpandFileRewritesOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeSrc(t, dir, "main.src", `on(str_hash_fnv1a("resize"), handler)`)

	res, err := driver.ExpandFile(path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Rewritten || res.Invocations != 1 {
		t.Fatalf("result: %+v", res)
	}
	if err := testkit.CheckEditInvariants(res.FileSet.Get(res.FileID), res.Edits); err != nil {
		t.Fatal(err)
	}

	got, _ := os.ReadFile(path)
	want := "on(" + fnvLit("resize") + ", handler)"
	if string(got) != want {
		t.Fatalf("on disk %q, want %q", got, want)
	}
}

func TestExpandFileCheckMode(t *testing.T) {
	dir := t.TempDir()
	orig := `str_hash_default("x")`
	path := writeSrc(t, dir, "main.src", orig)

	res, err := driver.ExpandFile(path, driver.Options{Check: true})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Rewritten || len(res.NewBytes) == 0 {
		t.Fatalf("check mode must still compute the rewrite: %+v", res)
	}

	got, _ := os.ReadFile(path)
	if string(got) != orig {
		t.Fatalf("check mode must not write: %q", got)
	}
}

func TestExpandFileErrorsBlockRewrite(t *testing.T) {
	dir := t.TempDir()
	orig := `str_hash_fnv1a(bad); str_hash_fnv1a("good")`
	path := writeSrc(t, dir, "main.src", orig)

	res, err := driver.ExpandFile(path, driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected diagnostics")
	}
	if res.Rewritten {
		t.Fatal("a file with errors must stay untouched")
	}

	got, _ := os.ReadFile(path)
	if string(got) != orig {
		t.Fatalf("file changed despite errors: %q", got)
	}
}

func TestExpandFileReadFailureIsDiagnosed(t *testing.T) {
	res, err := driver.ExpandFile(filepath.Join(t.TempDir(), "missing.src"), driver.Options{})
	if err != nil {
		t.Fatalf("a missing file must fail via diagnostics, got %v", err)
	}
	if !res.Bag.HasErrors() || res.Rewritten {
		t.Fatalf("result: %+v", res)
	}
	if got := res.Bag.Items()[0].Code; got != diag.IOReadFailed {
		t.Fatalf("code = %v, want IOReadFailed", got)
	}
}

func TestExpandVirtual(t *testing.T) {
	res, err := driver.ExpandVirtual("stdin", []byte(`str_hash_fnv1a("v")`), driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if string(res.NewBytes) != fnvLit("v") {
		t.Fatalf("NewBytes = %q", res.NewBytes)
	}
}

func TestExpandAll(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "a.src", `str_hash_fnv1a("a")`)
	writeSrc(t, dir, "sub/b.src", `str_hash_default("b")`)
	writeSrc(t, dir, "skip.txt", `str_hash_fnv1a("skipped")`)

	m := project.Default(dir)
	m.Expand.Extensions = []string{".src"}

	timer := observ.NewTimer()
	results, err := driver.ExpandAll(context.Background(), m, driver.Options{Jobs: 4, Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Sorted path order: a.src before sub/b.src.
	if filepath.Base(results[0].Path) != "a.src" || filepath.Base(results[1].Path) != "b.src" {
		t.Fatalf("order: %q, %q", results[0].Path, results[1].Path)
	}

	skipped, _ := os.ReadFile(filepath.Join(dir, "skip.txt"))
	if string(skipped) != `str_hash_fnv1a("skipped")` {
		t.Fatal("extension filter ignored")
	}

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected scan and expand phases, got %+v", report.Phases)
	}
	counters := map[string]int{}
	for _, c := range report.Counters {
		counters[c.Name] = c.Value
	}
	if counters["files"] != 2 || counters["invocations"] != 2 {
		t.Fatalf("unexpected counters: %+v", report.Counters)
	}
}

func TestExpandAllMatchesSerial(t *testing.T) {
	build := func(t *testing.T) (string, *project.Manifest) {
		dir := t.TempDir()
		for i := 0; i < 8; i++ {
			name := "f" + strconv.Itoa(i) + ".src"
			writeSrc(t, dir, name, `v := str_hash_fnv1a("key-`+strconv.Itoa(i)+`")`)
		}
		return dir, project.Default(dir)
	}

	dirA, mA := build(t)
	dirB, mB := build(t)

	if _, err := driver.ExpandAll(context.Background(), mA, driver.Options{Jobs: 8}); err != nil {
		t.Fatal(err)
	}
	if _, err := driver.ExpandAll(context.Background(), mB, driver.Options{Jobs: 1}); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 8; i++ {
		name := "f" + strconv.Itoa(i) + ".src"
		a, _ := os.ReadFile(filepath.Join(dirA, name))
		b, _ := os.ReadFile(filepath.Join(dirB, name))
		if string(a) != string(b) {
			t.Fatalf("%s: parallel %q vs serial %q", name, a, b)
		}
	}
}

func TestDiskCacheSkipsCleanFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSrc(t, dir, "clean.src", `nothing to expand here`)

	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache}

	first, err := driver.ExpandFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Fatal("first run cannot hit the cache")
	}

	second, err := driver.ExpandFile(path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Fatal("second run over unchanged clean file must hit the cache")
	}
}

func TestDiskCacheDoesNotSkipFilesWithInvocations(t *testing.T) {
	dir := t.TempDir()
	path := writeSrc(t, dir, "hot.src", `str_hash_fnv1a("hot")`)

	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := driver.Options{Cache: cache, Check: true}

	for i := 0; i < 2; i++ {
		res, err := driver.ExpandFile(path, opts)
		if err != nil {
			t.Fatal(err)
		}
		if res.CacheHit || res.Invocations != 1 {
			t.Fatalf("run %d: %+v", i, res)
		}
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	if err != nil {
		t.Fatal(err)
	}

	var key [32]byte
	key[0] = 0xAB

	var missed driver.CacheEntry
	hit, err := cache.Get(key, &missed)
	if err != nil || hit {
		t.Fatalf("expected miss, got hit=%v err=%v", hit, err)
	}

	if err := cache.Put(key, &driver.CacheEntry{NoInvocations: true}); err != nil {
		t.Fatal(err)
	}

	var got driver.CacheEntry
	hit, err = cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("expected hit, got hit=%v err=%v", hit, err)
	}
	if !got.NoInvocations {
		t.Fatal("entry lost its payload")
	}
}

func TestMaxDiagnosticsBound(t *testing.T) {
	src := ""
	for i := 0; i < 10; i++ {
		src += `str_hash_fnv1a(bad); `
	}
	res, err := driver.ExpandVirtual("many", []byte(src), driver.Options{MaxDiagnostics: 3})
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 3 {
		t.Fatalf("bag len = %d, want 3 (bounded)", res.Bag.Len())
	}
	if res.Bag.Cap() != 3 {
		t.Fatalf("bag cap = %d", res.Bag.Cap())
	}
}
