// Package filestore keeps uploaded product files in a flat namespace keyed by
// "<code>-<originalName>", where code is a freshly generated ULID.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alimikegami/product-catalog-service/pkg/errs"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const DownloadPathPrefix = "/productos/downloadFile/"

var FileOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "catalog_file_operations_total",
	Help: "File store operations by operation and result.",
}, []string{"operation", "result"})

// StoredFile describes a file written to the store.
type StoredFile struct {
	Code         string
	OriginalName string
	Name         string
	Size         int64
}

func (f StoredFile) DownloadURI() string {
	return DownloadPathPrefix + url.PathEscape(f.Name)
}

// Entry is a file present in the store.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

type FileStore interface {
	Save(ctx context.Context, originalName string, content io.Reader) (StoredFile, error)
	// Open returns errs.ErrFileNotFound for unknown or invalid names and an
	// error wrapping errs.ErrIOFault for any other failure.
	Open(ctx context.Context, name string) (afero.File, os.FileInfo, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]Entry, error)
}

type FileStoreImpl struct {
	fs afero.Fs
}

func CreateFileStore(fs afero.Fs) FileStore {
	return &FileStoreImpl{fs: fs}
}

// CreateDiskFileStore roots the store at dir, creating it when missing.
func CreateDiskFileStore(dir string) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}

	return CreateFileStore(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

// StoredName builds the store key of an upload.
func StoredName(code, originalName string) string {
	return code + "-" + originalName
}

func (s *FileStoreImpl) Save(ctx context.Context, originalName string, content io.Reader) (stored StoredFile, err error) {
	originalName = sanitizeName(originalName)
	if originalName == "" {
		FileOperationsTotal.WithLabelValues("upload", "rejected").Inc()
		return stored, errs.ErrClient
	}

	code := ulid.Make().String()
	name := StoredName(code, originalName)

	f, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Save").Str("file", name).Msg("")
		FileOperationsTotal.WithLabelValues("upload", "error").Inc()
		return stored, fmt.Errorf("create %s: %w", name, errors.Join(errs.ErrIOFault, err))
	}

	size, err := io.Copy(f, content)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Save").Str("file", name).Msg("")
		FileOperationsTotal.WithLabelValues("upload", "error").Inc()
		if rmErr := s.fs.Remove(name); rmErr != nil {
			log.Ctx(ctx).Error().Err(rmErr).Str("component", "Save").Str("file", name).Msg("failed to remove partial file")
		}
		return stored, fmt.Errorf("write %s: %w", name, errors.Join(errs.ErrIOFault, err))
	}

	FileOperationsTotal.WithLabelValues("upload", "success").Inc()

	return StoredFile{
		Code:         code,
		OriginalName: originalName,
		Name:         name,
		Size:         size,
	}, nil
}

func (s *FileStoreImpl) Open(ctx context.Context, name string) (afero.File, os.FileInfo, error) {
	if !validName(name) {
		FileOperationsTotal.WithLabelValues("download", "not_found").Inc()
		return nil, nil, errs.ErrFileNotFound
	}

	f, err := s.fs.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			FileOperationsTotal.WithLabelValues("download", "not_found").Inc()
			return nil, nil, errs.ErrFileNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Open").Str("file", name).Msg("")
		FileOperationsTotal.WithLabelValues("download", "error").Inc()
		return nil, nil, fmt.Errorf("open %s: %w", name, errors.Join(errs.ErrIOFault, err))
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		log.Ctx(ctx).Error().Err(err).Str("component", "Open").Str("file", name).Msg("")
		FileOperationsTotal.WithLabelValues("download", "error").Inc()
		return nil, nil, fmt.Errorf("stat %s: %w", name, errors.Join(errs.ErrIOFault, err))
	}

	if info.IsDir() {
		f.Close()
		FileOperationsTotal.WithLabelValues("download", "not_found").Inc()
		return nil, nil, errs.ErrFileNotFound
	}

	FileOperationsTotal.WithLabelValues("download", "success").Inc()
	return f, info, nil
}

// Delete removes name; deleting a missing file returns errs.ErrFileNotFound.
func (s *FileStoreImpl) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return errs.ErrFileNotFound
	}

	if err := s.fs.Remove(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errs.ErrFileNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Delete").Str("file", name).Msg("")
		FileOperationsTotal.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("remove %s: %w", name, errors.Join(errs.ErrIOFault, err))
	}

	FileOperationsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

func (s *FileStoreImpl) List(ctx context.Context) ([]Entry, error) {
	infos, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "List").Msg("")
		return nil, fmt.Errorf("list files: %w", errors.Join(errs.ErrIOFault, err))
	}

	entries := make([]Entry, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		entries = append(entries, Entry{
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return entries, nil
}

// sanitizeName keeps only the final path element of a client supplied name.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return strings.TrimSpace(name)
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, "/\\")
}
