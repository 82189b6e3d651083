package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devapi/internal/repository"
	"devapi/internal/storage"
)

const snapshotPrefix = "snapshots"

// SnapshotResult describes an uploaded developers snapshot.
type SnapshotResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// SnapshotService exports the developers table to object storage.
type SnapshotService interface {
	// Export uploads every developer as a JSON array and returns a presigned download URL.
	Export(ctx context.Context) (*SnapshotResult, error)
}

type snapshotService struct {
	store  storage.Storage
	repo   repository.DeveloperRepository
	expiry time.Duration
	now    func() time.Time
}

// NewSnapshotService constructs a SnapshotService whose URLs stay valid for expiry.
func NewSnapshotService(store storage.Storage, repo repository.DeveloperRepository, expiry time.Duration) SnapshotService {
	return &snapshotService{
		store:  store,
		repo:   repo,
		expiry: expiry,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *snapshotService) Export(ctx context.Context) (*SnapshotResult, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}

	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("%s/developers-%s.json", snapshotPrefix, s.now().Format("20060102T150405Z"))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata:    map[string]string{"record-count": fmt.Sprint(len(items))},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.expiry)
	if err != nil {
		// An unreachable object is useless; remove it.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign failed: %w", err)
	}

	return &SnapshotResult{Key: key, URL: url, Count: len(items)}, nil
}
