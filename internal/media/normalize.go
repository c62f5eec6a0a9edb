package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

// PublicPrefix is the URL prefix under which the public asset directory
// is served. Stored relative paths always begin with it.
const PublicPrefix = "/uploads"

var (
	// ErrDecode is returned when the staged file is not a decodable
	// image.
	ErrDecode = errors.New("image decode failed")
	// ErrWrite is returned when the normalized asset cannot be written.
	ErrWrite = errors.New("asset write failed")
)

// Normalizer resizes staged uploads to exact pixel dimensions and
// places the result in the public asset directory.
type Normalizer struct {
	publicDir string
	log       *zap.Logger
}

// NewNormalizer creates a Normalizer writing into publicDir.
func NewNormalizer(publicDir string, log *zap.Logger) *Normalizer {
	return &Normalizer{publicDir: publicDir, log: log}
}

// Normalize crops the staged image to exactly width x height and writes
// it to the public asset directory, encoded in the format implied by
// the file extension. The staging file is removed afterward no matter
// what; a failed removal is logged and swallowed.
//
// The resize fills the target box and crops the overflow. Nothing is
// ever letterboxed.
func (n *Normalizer) Normalize(staged StagedFile, width, height int) (string, error) {
	defer func() {
		if err := os.Remove(staged.Path); err != nil && !os.IsNotExist(err) {
			n.log.Warn("staging cleanup failed",
				zap.String("path", staged.Path), zap.Error(err))
		}
	}()

	src, err := imaging.Open(staged.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrDecode, staged.OriginalName, err)
	}

	cropped := imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos)

	if err := os.MkdirAll(n.publicDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	base := filepath.Base(staged.Path)
	outName := strings.TrimSuffix(base, staged.Ext) + "-cropped" + staged.Ext
	outPath := filepath.Join(n.publicDir, outName)
	if err := imaging.Save(cropped, outPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}

	n.log.Debug("normalized asset",
		zap.String("asset", outPath),
		zap.Int("width", width), zap.Int("height", height))
	return PublicPrefix + "/" + outName, nil
}
