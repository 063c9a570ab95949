package explorer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/pathx"
)

// GenerateUploadURL mints a single-use, time-boxed signed URL scoped to a
// PUT on the target key. Overwrites are refused: the caller must delete the
// existing object first.
func (s *Service) GenerateUploadURL(ctx context.Context, filename, contentType, directory string) (*UploadTicket, error) {
	if !pathx.ValidName(filename) {
		return nil, fmt.Errorf("%w: invalid filename %q", common.ErrorValidation, filename)
	}

	key := pathx.Join(directory, filename)

	_, err := s.gw.HeadObject(ctx, key)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorAlreadyExists, key)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.wrapLookupErr(ctx, key, err)
	}

	url, err := s.gw.PresignPut(ctx, key, contentType, s.presignExpiry)
	if err != nil {
		s.logger.Error(ctx, "presign put failed", "key", key, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	s.logger.Info(ctx, "upload url issued", "key", key)
	return &UploadTicket{URL: url, Path: key}, nil
}

// GetDownloadURL resolves a link for a stored file. A permanent public URL
// is preferred when a public base is configured; forceDownload always mints
// a signed URL so the content-disposition hint can be attached.
func (s *Service) GetDownloadURL(ctx context.Context, path string, expires time.Duration, forceDownload bool) (string, error) {
	if pathx.IsDir(path) {
		return "", fmt.Errorf("%w: cannot download a directory", common.ErrorValidation)
	}

	if _, err := s.gw.HeadObject(ctx, path); err != nil {
		return "", s.wrapLookupErr(ctx, path, err)
	}

	if !forceDownload {
		if public := s.publicURL(path); public != "" {
			return public, nil
		}
	}

	if expires <= 0 {
		expires = s.presignExpiry
	}

	disposition := ""
	if forceDownload {
		disposition = fmt.Sprintf("attachment; filename=%q", pathx.BaseName(path))
	}

	url, err := s.gw.PresignGet(ctx, path, expires, disposition)
	if err != nil {
		s.logger.Error(ctx, "presign get failed", "key", path, "error", err.Error())
		return "", fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	return url, nil
}
