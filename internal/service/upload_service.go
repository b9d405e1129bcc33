package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/biznexus-ai/backend/internal/dataset"
	"github.com/biznexus-ai/backend/internal/sqlstore"
	"github.com/biznexus-ai/backend/internal/storage"
	"github.com/rs/zerolog/log"
)

// UploadResult describes what happened to one uploaded file.
type UploadResult struct {
	Response    string   `json:"response"`
	Agent       string   `json:"agent"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// UploadService replaces the working dataset with a newly uploaded file,
// mirrors it into the SQL store and optionally into object storage.
type UploadService struct {
	local   *storage.LocalStore
	store   *sqlstore.Store
	archive storage.ObjectStorage
}

func NewUploadService(local *storage.LocalStore, store *sqlstore.Store, archive storage.ObjectStorage) *UploadService {
	return &UploadService{local: local, store: store, archive: archive}
}

// NamedFile is one uploaded file's name and contents.
type NamedFile struct {
	Name string
	Data []byte
}

// Accept ingests one uploaded file. Earlier session files are cleared
// first so the dashboard always reflects the latest upload.
func (s *UploadService) Accept(ctx context.Context, fileName string, data []byte) (*UploadResult, error) {
	if err := s.local.Clear(); err != nil {
		return nil, fmt.Errorf("clearing previous uploads: %w", err)
	}
	return s.ingest(ctx, fileName, data)
}

// AcceptAll ingests a batch of uploaded files as one new session. Files
// that fail to parse are reported inline without failing the batch, as long
// as at least one file succeeds.
func (s *UploadService) AcceptAll(ctx context.Context, files []NamedFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files supplied")
	}
	if err := s.local.Clear(); err != nil {
		return nil, fmt.Errorf("clearing previous uploads: %w", err)
	}

	var (
		lines       []string
		suggestions []string
		accepted    int
		firstErr    error
	)
	for _, f := range files {
		result, err := s.ingest(ctx, f.Name, f.Data)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			lines = append(lines, fmt.Sprintf("Could not process '%s': %v", f.Name, err))
			continue
		}
		accepted++
		lines = append(lines, result.Response)
		if len(suggestions) == 0 {
			suggestions = result.Suggestions
		}
	}

	if accepted == 0 {
		return nil, firstErr
	}
	return &UploadResult{
		Response:    strings.Join(lines, "\n"),
		Agent:       "Data Processor",
		Suggestions: suggestions,
	}, nil
}

// ingest stores and mirrors one file without touching the rest of the
// session directory.
func (s *UploadService) ingest(ctx context.Context, fileName string, data []byte) (*UploadResult, error) {
	name := storage.SanitizeFileName(fileName)
	if name == "" {
		return nil, fmt.Errorf("invalid file name %q", fileName)
	}

	path, err := s.local.Write(name, data)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	raw, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	table := dataset.Normalize(raw)
	kind := dataset.Classify(table.Columns)

	if s.store != nil {
		tableName := fmt.Sprintf("upload_%d_%s", time.Now().Unix(), tableBase(name))
		if err := s.store.LoadTable(ctx, tableName, table); err != nil {
			log.Warn().Err(err).Str("table", tableName).Msg("sql mirror failed")
		}
	}

	if s.archive != nil {
		if err := s.archive.UploadObject(ctx, name, data); err != nil {
			log.Warn().Err(err).Str("object", name).Msg("archive upload failed")
		}
	}

	return buildUploadResult(name, table, kind), nil
}

func buildUploadResult(name string, table *dataset.Table, kind dataset.Kind) *UploadResult {
	var what string
	var suggestions []string
	switch kind {
	case dataset.KindSales:
		what = "sales data"
		suggestions = []string{
			"What were my top selling products?",
			"Show me the revenue trend",
			"Which products should I promote?",
		}
	case dataset.KindInventory:
		what = "inventory data"
		suggestions = []string{
			"Which items are at risk of stockout?",
			"What should I reorder this week?",
			"How much capital is tied up in dead stock?",
		}
	default:
		what = "business data"
		suggestions = []string{
			"Give me an overview of this data",
			"What insights can you find here?",
		}
	}

	return &UploadResult{
		Response: fmt.Sprintf("I've processed '%s' and loaded %d rows of %s. The dashboard has been updated. What would you like to know?",
			name, table.Len(), what),
		Agent:       "Data Processor",
		Suggestions: suggestions,
	}
}

// tableBase makes a file name safe for use inside a SQL table name.
func tableBase(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return sqlstore.SanitizeIdent(base)
}
