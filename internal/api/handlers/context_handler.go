package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/biznexus-ai/backend/internal/sqlstore"
	"github.com/biznexus-ai/backend/internal/storage"
	"github.com/gin-gonic/gin"
)

// ContextProvider reports what data is currently available to the agents.
type ContextProvider struct {
	local *storage.LocalStore
	store *sqlstore.Store
}

func NewContextProvider(local *storage.LocalStore, store *sqlstore.Store) *ContextProvider {
	return &ContextProvider{local: local, store: store}
}

func (p *ContextProvider) GetContext(c *gin.Context) {
	files := []string{}
	if paths, err := p.local.List(); err == nil {
		for _, path := range paths {
			files = append(files, filepath.Base(path))
		}
	}

	schema := ""
	if p.store != nil {
		if info, err := p.store.SchemaInfo(c.Request.Context()); err == nil {
			schema = info
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"files":    files,
		"has_data": len(files) > 0,
		"schema":   schema,
	})
}
