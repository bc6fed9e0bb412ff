// Package storage wraps the Cloudinary blob store used for payment
// screenshots and product images.
package storage

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Uploader is the blob-store boundary handlers depend on.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(cloudURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload stores the file under publicID and returns its public URL.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{PublicID: publicID})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStore) Destroy(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
