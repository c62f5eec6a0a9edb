// Package media implements the upload pipeline: multipart intake to a
// staging file, normalization to fixed dimensions in the public asset
// directory, public URL resolution, and the batch rebase of stored
// URLs.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNoFile is returned when the expected multipart file field is
	// absent.
	ErrNoFile = errors.New("no file provided")
	// ErrTooLarge is returned when the request body exceeds the
	// configured ceiling.
	ErrTooLarge = errors.New("payload too large")
	// ErrUnsupportedType is returned when the file extension is not on
	// the image allow-list.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Extensions the normalizer can decode and re-encode.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// StagedFile is a raw upload written to the staging area, waiting for
// normalization. It lives for exactly one request.
type StagedFile struct {
	Path         string
	OriginalName string
	Ext          string
	Size         int64
}

// Receiver accepts a single multipart image upload and stages it under
// a generated filename. The client-supplied filename is never used for
// the file on disk.
type Receiver struct {
	stagingDir string
	maxBytes   int64
	log        *zap.Logger
}

// NewReceiver creates a Receiver staging files into stagingDir with the
// given request payload ceiling.
func NewReceiver(stagingDir string, maxBytes int64, log *zap.Logger) *Receiver {
	return &Receiver{stagingDir: stagingDir, maxBytes: maxBytes, log: log}
}

// Receive reads the named file field from the request and writes it to
// the staging area. The body is capped before any parsing happens.
func (rc *Receiver) Receive(w http.ResponseWriter, r *http.Request, field string) (StagedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, rc.maxBytes)
	if err := r.ParseMultipartForm(rc.maxBytes); err != nil {
		if isTooLarge(err) {
			return StagedFile{}, ErrTooLarge
		}
		return StagedFile{}, fmt.Errorf("parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return StagedFile{}, ErrNoFile
	}
	if err != nil {
		return StagedFile{}, fmt.Errorf("read file field %q: %w", field, err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return StagedFile{}, ErrUnsupportedType
	}

	staged, err := rc.stage(file, header, ext)
	if err != nil {
		return StagedFile{}, err
	}
	rc.log.Debug("staged upload",
		zap.String("original", header.Filename),
		zap.String("staged", staged.Path),
		zap.Int64("bytes", staged.Size))
	return staged, nil
}

func (rc *Receiver) stage(file multipart.File, header *multipart.FileHeader, ext string) (StagedFile, error) {
	if err := os.MkdirAll(rc.stagingDir, 0o755); err != nil {
		return StagedFile{}, fmt.Errorf("create staging directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(rc.stagingDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("create staging file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		if isTooLarge(err) {
			return StagedFile{}, ErrTooLarge
		}
		return StagedFile{}, fmt.Errorf("write staging file: %w", err)
	}

	return StagedFile{
		Path:         path,
		OriginalName: header.Filename,
		Ext:          ext,
		Size:         size,
	}, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
