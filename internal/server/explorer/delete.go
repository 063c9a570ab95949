package explorer

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/pathx"
)

// DeleteItem removes a file or an entire directory subtree. A missing path
// is a benign race (double-click, concurrent delete) and comes back as
// Success=false with a message instead of an error.
func (s *Service) DeleteItem(ctx context.Context, path string) (*Result, error) {
	if path == "" || path == "/" {
		return nil, fmt.Errorf("%w: cannot delete root", common.ErrorValidation)
	}

	if !pathx.IsDir(path) {
		return s.deleteFile(ctx, path)
	}
	return s.deleteDirectory(ctx, path)
}

func (s *Service) deleteFile(ctx context.Context, key string) (*Result, error) {
	_, err := s.gw.HeadObject(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return &Result{Success: false, Message: fmt.Sprintf("%s not found", key)}, nil
	}
	if err != nil {
		return nil, s.wrapLookupErr(ctx, key, err)
	}

	if err := s.gw.DeleteObject(ctx, key); err != nil {
		s.logger.Error(ctx, "delete failed", "key", key, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}

	s.logger.Info(ctx, "file deleted", "key", key)
	return &Result{Success: true, Message: fmt.Sprintf("%s deleted", key)}, nil
}

// deleteDirectory walks the whole subtree page by page. Deletes fan out
// concurrently within a page; the marker itself goes last so an interrupted
// run leaves the directory discoverable for a retry.
func (s *Service) deleteDirectory(ctx context.Context, prefix string) (*Result, error) {
	var (
		deleted   int
		sawMarker bool
		token     string
	)

	for {
		page, err := s.gw.ListObjects(ctx, prefix, "", token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, obj := range page.Objects {
			if obj.Key == prefix {
				sawMarker = true
				continue
			}
			key := obj.Key
			g.Go(func() error {
				return s.gw.DeleteObject(gctx, key)
			})
			deleted++
		}
		if err := g.Wait(); err != nil {
			s.logger.Error(ctx, "subtree delete failed", "prefix", prefix, "error", err.Error())
			return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	if !sawMarker && deleted == 0 {
		return &Result{Success: false, Message: fmt.Sprintf("%s not found", prefix)}, nil
	}

	if sawMarker {
		if err := s.gw.DeleteObject(ctx, prefix); err != nil {
			// Already gone is fine here; anything else is a real failure.
			if !errors.Is(err, common.ErrorNotFound) {
				s.logger.Error(ctx, "marker delete failed", "prefix", prefix, "error", err.Error())
				return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
			}
		}
		deleted++
	}

	s.logger.Info(ctx, "directory deleted", "prefix", prefix, "objects", deleted)
	return &Result{Success: true, Message: fmt.Sprintf("%s deleted (%d objects)", prefix, deleted)}, nil
}
