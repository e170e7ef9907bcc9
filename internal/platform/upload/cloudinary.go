// Package upload implements the avatar uploader against cloudinary.
package upload

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Result is the outcome of an upload. An empty PublicID means the upload did
// not land.
type Result struct {
	PublicID string
	Version  string
}

// Cloudinary uploads base64 images under a caller-chosen public id so the
// CDN URL is predictable before the upload returns.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

// New creates a Cloudinary uploader from API credentials.
func New(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

// Upload sends the image, overwriting any previous asset under the same
// public id and invalidating cached copies.
func (u *Cloudinary) Upload(ctx context.Context, image, publicID string) (Result, error) {
	resp, err := u.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID:   publicID,
		Overwrite:  api.Bool(true),
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload image: %w", err)
	}

	return Result{
		PublicID: resp.PublicID,
		Version:  strconv.Itoa(resp.Version),
	}, nil
}
