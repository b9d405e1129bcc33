package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/biznexus-ai/backend/internal/storage"
)

func TestUploadAccept(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(storage.NewLocalStore(dir), nil, nil)

	result, err := svc.Accept(context.Background(), "My Sales.CSV",
		[]byte("date,item_id,quantity,price\n2024-01-05,A,2,10\n"))
	if err != nil {
		t.Fatalf("accept: %v", err)
	}

	if result.Agent != "Data Processor" {
		t.Errorf("agent = %q", result.Agent)
	}
	if len(result.Suggestions) == 0 {
		t.Error("expected follow-up suggestions")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "my sales.csv" {
		t.Errorf("stored files = %v, want the sanitized upload only", entries)
	}
}

func TestUploadReplacesPreviousSession(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old.csv"), []byte("a\n1\n"), 0o644); err != nil {
		t.Fatalf("seed old file: %v", err)
	}

	svc := NewUploadService(storage.NewLocalStore(dir), nil, nil)
	if _, err := svc.Accept(context.Background(), "new.csv",
		[]byte("item_id,stock,reorder_point\nA,5,2\n")); err != nil {
		t.Fatalf("accept: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "new.csv" {
		t.Errorf("stored files = %v, want only the new upload", entries)
	}
}

func TestUploadRejectsUnparseable(t *testing.T) {
	svc := NewUploadService(storage.NewLocalStore(t.TempDir()), nil, nil)

	if _, err := svc.Accept(context.Background(), "notes.txt", []byte("hello")); err == nil {
		t.Fatal("expected error for an unsupported file type")
	}
}

func TestUploadRejectsBadName(t *testing.T) {
	svc := NewUploadService(storage.NewLocalStore(t.TempDir()), nil, nil)

	if _, err := svc.Accept(context.Background(), "..", []byte("a,b\n")); err == nil {
		t.Fatal("expected error for an empty sanitized name")
	}
}

func TestUploadAcceptAll(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old.csv"), []byte("a\n1\n"), 0o644); err != nil {
		t.Fatalf("seed old file: %v", err)
	}

	svc := NewUploadService(storage.NewLocalStore(dir), nil, nil)
	result, err := svc.AcceptAll(context.Background(), []NamedFile{
		{Name: "sales.csv", Data: []byte("date,item_id,quantity,price\n2024-01-05,A,2,10\n")},
		{Name: "inventory.csv", Data: []byte("item_id,stock,reorder_point\nA,5,2\n")},
		{Name: "notes.txt", Data: []byte("hello")},
	})
	if err != nil {
		t.Fatalf("accept all: %v", err)
	}

	if !strings.Contains(result.Response, "Could not process 'notes.txt'") {
		t.Errorf("response missing failure line: %q", result.Response)
	}
	if !strings.Contains(result.Response, "sales.csv") || !strings.Contains(result.Response, "inventory.csv") {
		t.Errorf("response missing per-file lines: %q", result.Response)
	}

	entries, _ := os.ReadDir(dir)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if len(names) != 2 {
		t.Errorf("stored files = %v, want the two parseable uploads", names)
	}
}

func TestUploadAcceptAllFailsWhenNothingParses(t *testing.T) {
	svc := NewUploadService(storage.NewLocalStore(t.TempDir()), nil, nil)

	if _, err := svc.AcceptAll(context.Background(), []NamedFile{
		{Name: "notes.txt", Data: []byte("hello")},
	}); err == nil {
		t.Fatal("expected error when no file can be processed")
	}
}
