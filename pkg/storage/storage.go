package storage

import "context"

type Storage interface {
	Upload(context.Context, *UploadObject) (*UploadResponse, error)
	Download(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type UploadObject struct {
	Key  string
	Mime string
	Data []byte
}

type UploadResponse struct {
	Url string
	Key string
}
