package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
)

// BlobStore is the slice of bucket behavior the app depends on; tests stub
// it.
type BlobStore interface {
	Exists(ctx context.Context, blobName string) (bool, error)
}

type StorageBucket struct {
	*storage.BucketHandle
}

var _ BlobStore = (*StorageBucket)(nil)

func NewStorageBucket(ctx context.Context, app *firebase.App, bucketName string) (*StorageBucket, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := client.Bucket(bucketName)
	if err != nil {
		return nil, err
	}

	return &StorageBucket{
		bucketHandle,
	}, nil
}

func (sb *StorageBucket) Exists(ctx context.Context, blobName string) (bool, error) {
	if len(blobName) == 0 {
		return false, nil
	}
	handle := sb.Object(blobName)
	if _, err := handle.Attrs(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewPostBlobName reserves a name under the post-images prefix. Clients
// upload the blob themselves and reference the name on create/edit; the
// server only ever verifies existence.
func NewPostBlobName() string {
	return fmt.Sprintf("posts/%v", uuid.New())
}
