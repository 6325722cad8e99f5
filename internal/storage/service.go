package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ArchiveStore struct {
	client S3Client
}

func NewArchiveStore(client S3Client) *ArchiveStore {
	return &ArchiveStore{client: client}
}

// ObjectKey — путь в бакете, uuid исключает коллизии между вызовами
func (s *ArchiveStore) ObjectKey() string {
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("archives/%s/%s.zip", date, uuid.NewString())
}

func (s *ArchiveStore) SaveArchive(ctx context.Context, archive []byte, contentType string) (string, error) {
	key := s.ObjectKey()
	url, err := s.client.PutObject(ctx, key, bytes.NewReader(archive), int64(len(archive)), contentType)
	if err != nil {
		return "", fmt.Errorf("save archive: %w", err)
	}
	return url, nil
}
