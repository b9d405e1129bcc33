package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/biznexus-ai/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps a single uploaded file at 20 MiB.
const maxUploadBytes = 20 << 20

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(service *service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload accepts one or more files under the "files" multipart field. A
// single "file" field is also accepted for older clients.
func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "files field is required"})
		return
	}

	files := make([]service.NamedFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			status := http.StatusBadRequest
			if err == errTooLarge {
				status = http.StatusRequestEntityTooLarge
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		files = append(files, service.NamedFile{Name: fh.Filename, Data: data})
	}

	result, err := h.service.AcceptAll(c.Request.Context(), files)
	if err != nil {
		log.Error().Err(err).Int("files", len(files)).Msg("upload rejected")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

var errTooLarge = &uploadError{"file too large"}

type uploadError struct{ msg string }

func (e *uploadError) Error() string { return e.msg }

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size > maxUploadBytes {
		return nil, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &uploadError{"could not read upload"}
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return nil, &uploadError{"could not read upload"}
	}
	if len(data) > maxUploadBytes {
		return nil, errTooLarge
	}
	return data, nil
}
