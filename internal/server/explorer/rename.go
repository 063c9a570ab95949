package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/pathx"
)

// RenameItem moves a file or directory to a new virtual path. The store has
// no rename primitive, so every object is copied to its new key and then
// deleted. The sequence is best-effort: an interruption can leave part of a
// subtree migrated, and re-running the same rename is the recovery path.
func (s *Service) RenameItem(ctx context.Context, oldPath, newPath string) (*Result, error) {
	if err := validateRename(oldPath, newPath); err != nil {
		return nil, err
	}

	if err := s.ensureTargetAbsent(ctx, newPath); err != nil {
		return nil, err
	}

	if pathx.IsDir(oldPath) {
		if err := s.renameDirectory(ctx, oldPath, newPath); err != nil {
			return nil, err
		}
	} else {
		if err := s.renameFile(ctx, oldPath, newPath); err != nil {
			return nil, err
		}
	}

	entry, err := s.FileInfo(ctx, newPath)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "renamed", "from", oldPath, "to", newPath)
	return &Result{Success: true, Entry: entry}, nil
}

func validateRename(oldPath, newPath string) error {
	switch {
	case oldPath == newPath:
		return fmt.Errorf("%w: source and target are the same", common.ErrorValidation)
	case oldPath == "" || oldPath == "/" || newPath == "" || newPath == "/":
		return fmt.Errorf("%w: cannot rename the root", common.ErrorValidation)
	case pathx.IsDir(oldPath) != pathx.IsDir(newPath):
		return fmt.Errorf("%w: rename cannot change a file into a directory or back", common.ErrorValidation)
	case pathx.IsDir(oldPath) && pathx.IsDescendant(oldPath, newPath):
		return fmt.Errorf("%w: target is nested under source", common.ErrorValidation)
	}
	return nil
}

func (s *Service) ensureTargetAbsent(ctx context.Context, newPath string) error {
	_, err := s.gw.HeadObject(ctx, newPath)
	if err == nil {
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, newPath)
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return s.wrapLookupErr(ctx, newPath, err)
	}

	if pathx.IsDir(newPath) {
		// A directory can exist without its marker.
		page, err := s.gw.ListObjects(ctx, newPath, "", "")
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}
		if len(page.Objects) > 0 || len(page.CommonPrefixes) > 0 {
			return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, newPath)
		}
	}
	return nil
}

func (s *Service) renameFile(ctx context.Context, oldKey, newKey string) error {
	if _, err := s.gw.HeadObject(ctx, oldKey); err != nil {
		return s.wrapLookupErr(ctx, oldKey, err)
	}

	if err := s.gw.CopyObject(ctx, oldKey, newKey); err != nil {
		s.logger.Error(ctx, "copy failed", "from", oldKey, "to", newKey, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	if err := s.gw.DeleteObject(ctx, oldKey); err != nil {
		s.logger.Error(ctx, "source delete failed after copy", "key", oldKey, "error", err.Error())
		return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	return nil
}

// renameDirectory migrates every object under the old prefix, page by page,
// copy-then-delete per child with the work fanned out within a page. The
// marker object goes last.
func (s *Service) renameDirectory(ctx context.Context, oldPrefix, newPrefix string) error {
	var (
		moved     int
		sawMarker bool
		token     string
	)

	for {
		page, err := s.gw.ListObjects(ctx, oldPrefix, "", token)
		if err != nil {
			return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, obj := range page.Objects {
			if obj.Key == oldPrefix {
				sawMarker = true
				continue
			}
			oldKey := obj.Key
			newKey := newPrefix + strings.TrimPrefix(oldKey, oldPrefix)
			g.Go(func() error {
				if err := s.gw.CopyObject(gctx, oldKey, newKey); err != nil {
					return err
				}
				return s.gw.DeleteObject(gctx, oldKey)
			})
			moved++
		}
		if err := g.Wait(); err != nil {
			s.logger.Error(ctx, "subtree rename failed", "from", oldPrefix, "to", newPrefix, "error", err.Error())
			return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	if !sawMarker && moved == 0 {
		return fmt.Errorf("%w: %s", common.ErrorNotFound, oldPrefix)
	}

	if sawMarker {
		if err := s.gw.CopyObject(ctx, oldPrefix, newPrefix); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}
		if err := s.gw.DeleteObject(ctx, oldPrefix); err != nil {
			return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}
	}

	return nil
}
