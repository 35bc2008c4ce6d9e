// Package binary stores the files referenced by binary file fields.
//
// The Service writes uploads to a BlobStore under a generated key and
// returns the field value pointing at them. Blob stores live in the memory,
// fs and s3 subpackages.
package binary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms/fieldtype"
)

// ErrObjectNotFound is returned by blob stores for missing keys.
var ErrObjectNotFound = errors.New("object not found")

// ObjectMeta describes a stored object.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
}

// BlobStore persists opaque objects by key.
type BlobStore interface {
	Upload(ctx context.Context, key string, reader io.Reader, mimeType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object. Missing objects yield ErrObjectNotFound.
	Delete(ctx context.Context, key string) error
	Stat(ctx context.Context, key string) (*ObjectMeta, error)
	// DownloadURL returns a URL the object can be fetched from, or an
	// empty string when the store only supports direct downloads.
	DownloadURL(ctx context.Context, key, fileName string) (string, error)
}

// Service stores binary files for content fields.
type Service struct {
	store     BlobStore
	keyPrefix string
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithKeyPrefix sets the prefix of object keys. The default is "binaryfile".
func WithKeyPrefix(prefix string) Option {
	return func(s *Service) { s.keyPrefix = strings.Trim(prefix, "/") }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService returns a service writing to store.
func NewService(store BlobStore, options ...Option) *Service {
	s := &Service{store: store, keyPrefix: "binaryfile", logger: slog.Default()}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Key returns the object key of a binary file ID.
func (s *Service) Key(id string) string {
	shard := id
	if len(shard) > 2 {
		shard = shard[:2]
	}
	return path.Join(s.keyPrefix, shard, id)
}

// Store uploads a file and returns the field value referencing it. An empty
// mimeType is detected from the first bytes of the file.
func (s *Service) Store(ctx context.Context, fileName, mimeType string, reader io.Reader) (fieldtype.BinaryFileValue, error) {
	id := uuid.NewString()
	key := s.Key(id)

	buffered := bufio.NewReaderSize(reader, 512)
	if mimeType == "" {
		head, _ := buffered.Peek(512)
		mimeType = http.DetectContentType(head)
	}

	counter := &countingReader{r: buffered}
	if err := s.store.Upload(ctx, key, counter, mimeType); err != nil {
		return fieldtype.BinaryFileValue{}, fmt.Errorf("store binary file %s: %w", fileName, err)
	}

	uri, err := s.store.DownloadURL(ctx, key, fileName)
	if err != nil {
		s.logger.Warn("binary file has no download url", "key", key, "err", err)
		uri = ""
	}

	s.logger.Debug("stored binary file", "id", id, "file_name", fileName, "size", counter.n)
	return fieldtype.BinaryFileValue{
		ID:       id,
		FileName: path.Base(fileName),
		MimeType: mimeType,
		FileSize: counter.n,
		URI:      uri,
	}, nil
}

// Open returns the contents of a stored file.
func (s *Service) Open(ctx context.Context, value fieldtype.BinaryFileValue) (io.ReadCloser, error) {
	rc, err := s.store.Download(ctx, s.Key(value.ID))
	if err != nil {
		return nil, fmt.Errorf("open binary file %s: %w", value.ID, err)
	}
	return rc, nil
}

// Delete removes a stored file. Missing files are ignored.
func (s *Service) Delete(ctx context.Context, value fieldtype.BinaryFileValue) error {
	err := s.store.Delete(ctx, s.Key(value.ID))
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		return fmt.Errorf("delete binary file %s: %w", value.ID, err)
	}
	return nil
}

// Stat returns the metadata of a stored file.
func (s *Service) Stat(ctx context.Context, value fieldtype.BinaryFileValue) (*ObjectMeta, error) {
	return s.store.Stat(ctx, s.Key(value.ID))
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
