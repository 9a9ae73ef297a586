package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreAndGet(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	doc, err := r.Store("report.pdf", []byte("pdf bytes"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if doc.ID == "" || len(doc.ID) != 16 {
		t.Errorf("ID = %q, want 16 hex chars", doc.ID)
	}
	if doc.Name != "report.pdf" {
		t.Errorf("Name = %q", doc.Name)
	}
	if doc.Size != int64(len("pdf bytes")) {
		t.Errorf("Size = %d", doc.Size)
	}

	got, ok := r.Get(doc.ID)
	if !ok {
		t.Fatal("Get: not found")
	}
	if got.Name != doc.Name {
		t.Errorf("Get Name = %q", got.Name)
	}

	data, err := os.ReadFile(got.Path())
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "pdf bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestStoreDeduplicates(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	a, err := r.Store("one.txt", []byte("same content"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	b, err := r.Store("two.txt", []byte("same content"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if a.ID != b.ID {
		t.Errorf("IDs differ: %s vs %s", a.ID, b.ID)
	}
	// The first upload wins; identical content is not stored twice.
	if b.Name != "one.txt" {
		t.Errorf("dedup returned Name = %q, want one.txt", b.Name)
	}
	if len(r.List()) != 1 {
		t.Errorf("List() has %d docs, want 1", len(r.List()))
	}
}

func TestOpenRescansDirectory(t *testing.T) {
	dir := t.TempDir()
	r1, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	doc, err := r1.Store("guide.md", []byte("# hi"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	r2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, ok := r2.Get(doc.ID)
	if !ok {
		t.Fatal("document lost after reopen")
	}
	if got.Name != "guide.md" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestOpenIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "no-separator"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(r.List()) != 0 {
		t.Errorf("List() = %v, want empty", r.List())
	}
}

func TestDelete(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	doc, err := r.Store("gone.txt", []byte("bye"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := r.Delete(doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := r.Get(doc.ID); ok {
		t.Error("document still present after delete")
	}
	if _, err := os.Stat(doc.Path()); !os.IsNotExist(err) {
		t.Error("file still on disk after delete")
	}
	if err := r.Delete(doc.ID); err == nil {
		t.Error("expected error deleting missing document")
	}
}

func TestListSorted(t *testing.T) {
	r, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, name := range []string{"zeta.txt", "alpha.txt", "mid.txt"} {
		if _, err := r.Store(name, []byte(name)); err != nil {
			t.Fatalf("Store %s: %v", name, err)
		}
	}
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("List() has %d docs", len(list))
	}
	want := []string{"alpha.txt", "mid.txt", "zeta.txt"}
	for i, doc := range list {
		if doc.Name != want[i] {
			t.Errorf("list[%d] = %q, want %q", i, doc.Name, want[i])
		}
	}
}
