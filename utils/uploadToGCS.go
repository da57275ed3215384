package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"google.golang.org/api/option"
)

// Bucket names mirror the hosted-store layout: uploaded documents awaiting
// OCR land in "inbox", project files in "project_files".
const (
	BucketInbox        = "inbox"
	BucketProjectFiles = "project_files"
)

const thumbnailMaxWidth = 320

// getGoogleClient initializes a Google Cloud Storage client.
// Prefer ADC (Cloud Run service account / GOOGLE_APPLICATION_CREDENTIALS).
// If you need to provide explicit JSON (e.g. locally), set GCS_CREDENTIALS_JSON.
func getGoogleClient(ctx context.Context) (*storage.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return storage.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return storage.NewClient(ctx)
}

var allowedMimeTypes = map[string]bool{
	"application/pdf":          true,
	"application/msword":       true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadFileToGCS stores fileContent under bucket/objectName and returns the
// detected MIME type. Image uploads additionally get a resized thumbnail at
// thumbs/<objectName>.
func UploadFileToGCS(ctx context.Context, bucket string, objectName string, fileContent io.Reader) (string, error) {
	fileData, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %v", err)
	}

	mimeType := http.DetectContentType(fileData)

	// Manually set MIME type for .docx and .xlsx files
	if mimeType == "application/zip" {
		if strings.HasSuffix(objectName, ".docx") {
			mimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
		} else if strings.HasSuffix(objectName, ".xlsx") {
			mimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		}
	}

	if !allowedMimeTypes[mimeType] {
		return "", fmt.Errorf("unsupported file type: %s", mimeType)
	}

	client, err := getGoogleClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if err := writeObject(ctx, client, bucket, objectName, mimeType, fileData); err != nil {
		return "", err
	}

	if strings.HasPrefix(mimeType, "image/") {
		if thumb, thumbErr := buildThumbnail(fileData); thumbErr == nil {
			// Thumbnail failures must not fail the upload itself.
			_ = writeObject(ctx, client, bucket, "thumbs/"+objectName, "image/jpeg", thumb)
		}
	}

	return mimeType, nil
}

func writeObject(ctx context.Context, client *storage.Client, bucket string, objectName string, contentType string, data []byte) error {
	wc := client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		return err
	}
	return wc.Close()
}

func buildThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, thumbnailMaxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DownloadFileFromGCS reads an object back (used by the OCR flow to feed the
// stored file to the extraction model).
func DownloadFileFromGCS(ctx context.Context, bucket string, objectName string) ([]byte, error) {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// DeleteFileFromGCS removes an object (and its thumbnail, if any).
func DeleteFileFromGCS(ctx context.Context, bucket string, objectName string) error {
	client, err := getGoogleClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Bucket(bucket).Object(objectName).Delete(ctx); err != nil {
		return err
	}
	// best-effort; thumbnails only exist for images
	_ = client.Bucket(bucket).Object("thumbs/" + objectName).Delete(ctx)
	return nil
}
