package api_files

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ShabarishMenon/TravelSocila1stDraft/internal/models/api_error"
)

// URLPrefix is the public path uploads are served under.
const URLPrefix = "/uploads"

// SaveUpload stores the multipart file from the given form field under
// dir with a generated name, keeping the original extension, and
// returns the public path. Returns "" when the field carries no file.
// A request the client got wrong surfaces as a validation failure, a
// disk failure as a store failure.
func SaveUpload(c *gin.Context, field, dir string) (string, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", api_error.Validation("invalid " + field + " upload")
	}

	ext := filepath.Ext(file.Filename)
	fileName := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", api_error.Store(err)
	}
	if err := c.SaveUploadedFile(file, filepath.Join(dir, fileName)); err != nil {
		return "", api_error.Store(err)
	}

	return fmt.Sprintf("%s/%s", URLPrefix, fileName), nil
}

// Remove deletes a previously uploaded file given its public path. Paths
// outside the upload prefix are ignored.
func Remove(publicPath, dir string) {
	if !strings.HasPrefix(publicPath, URLPrefix+"/") {
		return
	}

	name := filepath.Base(publicPath)
	if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).WithField("path", publicPath).Warn("remove upload")
	}
}
