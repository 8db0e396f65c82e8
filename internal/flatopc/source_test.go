package flatopc

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFromFile_NotFound(t *testing.T) {
	src := FromFile(filepath.Join(t.TempDir(), "missing.xml"))
	_, err := src.Open()
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Open() error = %v, want ErrInputNotFound", err)
	}
}

func TestFromFile_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xml")
	content := flatDoc()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rc, err := FromFile(path).Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}
}

func TestFromReader_CallerOwnsStream(t *testing.T) {
	content := flatDoc()
	rc, err := FromReader(strings.NewReader(content)).Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}
