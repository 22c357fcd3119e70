// file: internals/helpers/storage/cloudinary_client.go
package storage

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	"paperhub_backend/internals/configs"
)

// CloudinaryStorage talks to the Cloudinary upload API. Credentials come
// from ENV via configs.LoadEnv.
type CloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

var (
	defaultOnce    sync.Once
	defaultStorage *CloudinaryStorage
	defaultErr     error
)

// Default returns the process-wide client, initialized lazily so tests and
// offline tooling never dial out.
func Default() (*CloudinaryStorage, error) {
	defaultOnce.Do(func() {
		defaultStorage, defaultErr = NewCloudinaryStorage()
	})
	return defaultStorage, defaultErr
}

func NewCloudinaryStorage() (*CloudinaryStorage, error) {
	if configs.CloudinaryCloudName == "" {
		return nil, errors.New("cloudinary is not configured (CLOUDINARY_CLOUD_NAME empty)")
	}
	cld, err := cloudinary.NewFromParams(
		configs.CloudinaryCloudName,
		configs.CloudinaryAPIKey,
		configs.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStorage{cld: cld, folder: configs.CloudinaryFolder}, nil
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	publicID := publicIDFor(filename)

	res, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       s.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return nil, &StorageError{Op: "upload", Err: err}
	}
	// The SDK reports API-level rejections inside the result body.
	if res.Error.Message != "" {
		return nil, &StorageError{Op: "upload", Err: errors.New(res.Error.Message)}
	}

	url := res.SecureURL
	if url == "" {
		url = res.URL
	}
	return &UploadResult{
		PublicID:     res.PublicID,
		URL:          url,
		ResourceType: res.ResourceType,
		Format:       res.Format,
		Bytes:        int64(res.Bytes),
	}, nil
}

func (s *CloudinaryStorage) Delete(ctx context.Context, publicID, resourceType string) error {
	if resourceType == "" {
		resourceType = "raw"
	}
	res, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return &StorageError{Op: "destroy", Err: err}
	}
	if res.Result != "ok" && res.Result != "not found" {
		return &StorageError{Op: "destroy", Err: errors.New(res.Result)}
	}
	if res.Result == "not found" {
		log.Printf("[WARN] storage destroy: %s already gone", publicID)
	}
	return nil
}

// publicIDFor derives a collision-free public ID from the client file name.
func publicIDFor(filename string) string {
	base := strings.TrimSuffix(filename, "."+formatOf(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, base)
	if len(base) > 60 {
		base = base[:60]
	}
	return base + "_" + uuid.NewString()[:8]
}

func formatOf(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}
