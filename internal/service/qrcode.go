package service

import (
	"context"
	"fmt"

	"github.com/Pranavipulluri/break-even/internal/storage"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrDefaultSize = 256
	qrMaxSize     = 1024
)

// QRService renders QR codes that link mini websites. When object storage
// is configured the PNG is uploaded and served by URL; otherwise callers
// get the raw image bytes.
type QRService struct {
	storage *storage.MinIOClient
}

func NewQRService(storage *storage.MinIOClient) *QRService {
	return &QRService{storage: storage}
}

func (s *QRService) HasStorage() bool {
	return s.storage != nil
}

// GeneratePNG renders the QR code for a URL at the requested pixel size.
func (s *QRService) GeneratePNG(url string, size int) ([]byte, error) {
	if size <= 0 {
		size = qrDefaultSize
	}
	if size > qrMaxSize {
		size = qrMaxSize
	}

	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// GenerateAndStore renders the QR code, uploads it and returns the public
// URL of the image.
func (s *QRService) GenerateAndStore(ctx context.Context, url string, size int) (string, error) {
	png, err := s.GeneratePNG(url, size)
	if err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("qr/%s.png", uuid.New().String())
	imageURL, err := s.storage.Upload(ctx, objectKey, png, "image/png")
	if err != nil {
		return "", err
	}
	return imageURL, nil
}
