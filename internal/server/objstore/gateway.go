// Package objstore wraps the S3-compatible object storage service behind a
// small Gateway interface: put/head/list/delete/copy plus URL signing.
// Higher layers emulate the directory namespace on top of these calls.
package objstore

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored object as reported by the service.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Page is one page of a prefix/delimiter listing. NextToken is empty on the
// final page.
type Page struct {
	Objects        []ObjectInfo
	CommonPrefixes []string
	NextToken      string
}

// Gateway is the set of object store operations the explorer consumes.
type Gateway interface {
	PutObject(ctx context.Context, key string, body io.Reader, contentType string) error
	HeadObject(ctx context.Context, key string) (*ObjectInfo, error)
	ListObjects(ctx context.Context, prefix, delimiter, continuationToken string) (*Page, error)
	DeleteObject(ctx context.Context, key string) error
	CopyObject(ctx context.Context, srcKey, dstKey string) error
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error)
	PresignGet(ctx context.Context, key string, expires time.Duration, contentDisposition string) (string, error)
}
