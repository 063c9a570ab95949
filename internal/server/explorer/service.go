// Package explorer emulates a hierarchical folder/file namespace on top of
// the flat object store: directories are zero-byte marker objects whose key
// ends in "/", single-level listings use prefix+delimiter queries, and
// directory-wide mutations run as paginated copy/delete sequences.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/moviebase/mediavault/internal/common"
	"github.com/moviebase/mediavault/internal/logging"
	"github.com/moviebase/mediavault/internal/pathx"
	"github.com/moviebase/mediavault/internal/server/objstore"
)

const defaultPresignExpiry = 15 * time.Minute

// Options tunes the explorer service.
type Options struct {
	// PublicBaseURL, when set, is used to derive permanent public links
	// instead of minting signed GET URLs.
	PublicBaseURL string
	// PresignExpiry bounds the lifetime of signed upload/download URLs.
	PresignExpiry time.Duration
}

// Service implements the namespace emulator, the directory operations engine
// and the URL issuance service over an objstore.Gateway.
type Service struct {
	gw            objstore.Gateway
	logger        logging.Logger
	publicBaseURL string
	presignExpiry time.Duration
}

func NewService(gw objstore.Gateway, logger logging.Logger, opts Options) *Service {
	expiry := opts.PresignExpiry
	if expiry <= 0 {
		expiry = defaultPresignExpiry
	}
	return &Service{
		gw:            gw,
		logger:        logger.With("module", "explorer"),
		publicBaseURL: strings.TrimSuffix(opts.PublicBaseURL, "/"),
		presignExpiry: expiry,
	}
}

// List returns the immediate children of a virtual directory, files and
// subdirectories merged and sorted lexicographically by name. The listing is
// paginated internally; partial results are never returned on error.
func (s *Service) List(ctx context.Context, directory string) ([]StorageEntry, error) {
	prefix := pathx.NormalizePrefix(directory)

	var entries []StorageEntry
	seenDirs := make(map[string]struct{})
	token := ""

	for {
		page, err := s.gw.ListObjects(ctx, prefix, "/", token)
		if err != nil {
			s.logger.Error(ctx, "listing failed", "prefix", prefix, "error", err.Error())
			return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
		}

		for _, obj := range page.Objects {
			// The prefix's own marker is not a child.
			if obj.Key == prefix || strings.HasSuffix(obj.Key, "/") {
				continue
			}
			entries = append(entries, StorageEntry{
				Name:         pathx.BaseName(obj.Key),
				Path:         obj.Key,
				Size:         obj.Size,
				LastModified: obj.LastModified,
				PublicURL:    s.publicURL(obj.Key),
			})
		}

		for _, cp := range page.CommonPrefixes {
			if _, ok := seenDirs[cp]; ok {
				continue
			}
			seenDirs[cp] = struct{}{}
			entries = append(entries, StorageEntry{
				Name:        pathx.BaseName(cp),
				Path:        cp,
				IsDirectory: true,
			})
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// FileInfo resolves a single entry by its virtual path. Directory paths are
// resolved through their marker object.
func (s *Service) FileInfo(ctx context.Context, path string) (*StorageEntry, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", common.ErrorValidation)
	}

	info, err := s.gw.HeadObject(ctx, path)
	if err != nil {
		if pathx.IsDir(path) && errors.Is(err, common.ErrorNotFound) {
			// A directory can exist through its children even when the
			// marker was never written.
			return s.dirInfoFromChildren(ctx, path)
		}
		return nil, s.wrapLookupErr(ctx, path, err)
	}

	entry := &StorageEntry{
		Name:         pathx.BaseName(path),
		Path:         path,
		IsDirectory:  pathx.IsDir(path),
		LastModified: info.LastModified,
	}
	if !entry.IsDirectory {
		entry.Size = info.Size
		entry.PublicURL = s.publicURL(path)
	}
	return entry, nil
}

func (s *Service) dirInfoFromChildren(ctx context.Context, path string) (*StorageEntry, error) {
	page, err := s.gw.ListObjects(ctx, path, "", "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
	}
	if len(page.Objects) == 0 && len(page.CommonPrefixes) == 0 {
		return nil, common.ErrorNotFound
	}
	return &StorageEntry{
		Name:        pathx.BaseName(path),
		Path:        path,
		IsDirectory: true,
	}, nil
}

func (s *Service) wrapLookupErr(ctx context.Context, path string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	s.logger.Error(ctx, "lookup failed", "path", path, "error", err.Error())
	return fmt.Errorf("%w: %v", common.ErrorStorageUnavailable, err)
}

// publicURL derives the permanent public link for a key, or "" when no
// public base is configured. Each path segment is escaped individually so
// the separators survive.
func (s *Service) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return ""
	}
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicBaseURL + "/" + strings.Join(segments, "/")
}
