package helpers

import (
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// PublicUploadPrefix is the URL prefix under which stored attachments are served.
const PublicUploadPrefix = "/uploads"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_")
}

// StoreAttachment saves an uploaded file under the attachment root with a
// timestamp-prefixed, sanitized name and returns its public path.
func StoreAttachment(c *gin.Context, fileHeader *multipart.FileHeader, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), SanitizeFilename(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadDir, filename)); err != nil {
		return "", err
	}

	return PublicUploadPrefix + "/" + filename, nil
}

// RemoveAttachment deletes the file behind a stored public path. A missing
// file counts as success; other failures are logged and swallowed, since the
// operation that triggered the cleanup has already committed.
func RemoveAttachment(uploadDir string, publicPath *string) {
	if publicPath == nil || *publicPath == "" {
		return
	}

	cleaned := strings.TrimPrefix(strings.TrimLeft(*publicPath, "/"), "uploads/")
	if cleaned == "" {
		return
	}

	err := os.Remove(filepath.Join(uploadDir, filepath.Base(cleaned)))
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to delete attachment %s: %v", cleaned, err)
	}
}
