// Package storage uploads screenshot images to Cloudinary.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/sahildeshmukh45/tl/internal/capture"
)

// CloudinaryUploader implements capture.Uploader against Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudinaryURL, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, img image.Image, name string) (*capture.UploadResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	size := int64(buf.Len())

	resp, err := u.cld.Upload.Upload(ctx, &buf, uploader.UploadParams{
		PublicID: strings.TrimSuffix(name, ".png"),
		Folder:   u.folder,
	})
	if err != nil {
		return nil, err
	}

	return &capture.UploadResult{
		URL:      resp.SecureURL,
		PublicID: resp.PublicID,
		Bytes:    size,
	}, nil
}

func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}
