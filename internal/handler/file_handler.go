package handler

import (
	"encoding/base64"
	"errors"
	"net/http"

	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/pkg/utils"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileStore *store.FileStore
}

func NewFileHandler(fileStore *store.FileStore) *FileHandler {
	return &FileHandler{fileStore: fileStore}
}

// GetFile serves a stored referral attachment with its original content type
// GET /api/v1/files/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	file, err := h.fileStore.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrFileNotFound) {
			utils.ErrorResponse(c, http.StatusNotFound, "File not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to load file")
		return
	}

	decoded, err := base64.StdEncoding.DecodeString(file.Data)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Stored file is corrupted")
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+file.FileName+`"`)
	c.Data(http.StatusOK, file.FileType, decoded)
}
