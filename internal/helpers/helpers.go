package helpers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	EventsFolder = "events"
)

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasUpper && hasNumber
}

// UploadPoster pushes an event poster (file path, URL or data URI accepted by
// Cloudinary) and returns the hosted secure URL.
func UploadPoster(ctx context.Context, cld *cloudinary.Cloudinary, poster string) (string, error) {
	if strings.TrimSpace(poster) == "" {
		return "", nil
	}
	if cld == nil {
		return "", fmt.Errorf("cloudinary client is not initialized")
	}

	result, err := cld.Upload.Upload(ctx, poster, uploader.UploadParams{
		Folder: EventsFolder,
		Tags:   []string{"campushub"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload poster: %w", err)
	}
	return result.SecureURL, nil
}
