package explorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/pathx"
)

// CreateFolder writes a zero-byte marker object at parent/name/. The name
// must be a single path segment and the marker must not already exist.
func (s *Service) CreateFolder(ctx context.Context, parent, name string) (*StorageEntry, error) {
	if !pathx.ValidName(name) {
		return nil, fmt.Errorf("%w: invalid folder name %q", common.ErrorValidation, name)
	}

	key := pathx.Join(parent, name) + "/"

	_, err := s.gw.HeadObject(ctx, key)
	if err == nil {
		return nil, fmt.Errorf("%w: folder %q", common.ErrorAlreadyExists, key)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.wrapLookupErr(ctx, key, err)
	}

	if err := s.gw.PutObject(ctx, key, bytes.NewReader(nil), ""); err != nil {
		s.logger.Error(ctx, "marker write failed", "key", key, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	s.logger.Info(ctx, "folder created", "key", key)

	// The store does not echo a reliable timestamp back; "now" is close
	// enough for the UI.
	return &StorageEntry{
		Name:         name,
		Path:         key,
		IsDirectory:  true,
		LastModified: time.Now(),
	}, nil
}
