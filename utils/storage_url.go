package utils

import (
	"net/url"
	"os"
	"strings"
)

// BuildObjectAccessURL derives the public URL for a stored object. A custom
// base can be configured with STORAGE_ACCESS_BASE_URL (with an optional
// {objectKey} placeholder); otherwise the standard GCS public URL is used.
func BuildObjectAccessURL(bucket string, objectKey string) string {
	base := strings.TrimSpace(os.Getenv("STORAGE_ACCESS_BASE_URL"))
	if base != "" {
		key := bucket + "/" + objectKey
		if strings.Contains(base, "{objectKey}") {
			escaped := key
			if strings.Contains(base, "?") {
				escaped = url.QueryEscape(key)
			}
			return strings.ReplaceAll(base, "{objectKey}", escaped)
		}
		return strings.TrimRight(base, "/") + "/" + key
	}

	return "https://storage.googleapis.com/" + bucket + "/" + objectKey
}
