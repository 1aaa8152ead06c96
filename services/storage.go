package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageStorage lưu file upload và trả về url public
type ImageStorage interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStorage(cld *cloudinary.Cloudinary) *CloudinaryStorage {
	return &CloudinaryStorage{cld: cld}
}

func (s *CloudinaryStorage) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if s.cld == nil {
		return "", fmt.Errorf("cloudinary chưa được cấu hình")
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resp, err := s.cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
