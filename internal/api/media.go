package api

import (
	"errors"
	"net/http"
	"os"

	"go.uber.org/zap"

	"flipr/internal/media"
)

// baseURL picks the base for public asset URLs: the configured one, or
// the inbound request's scheme and host when none is configured.
func (s *Server) baseURL(r *http.Request) string {
	if s.cfg.FileBaseURL != "" {
		return s.cfg.FileBaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// uploadError maps intake failures to a 400. Anything else coming out
// of multipart parsing is a malformed request, also a 400.
func (s *Server) uploadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrNoFile):
		messageResponse(w, http.StatusBadRequest, "image file is required")
	case errors.Is(err, media.ErrTooLarge):
		messageResponse(w, http.StatusBadRequest, "uploaded file is too large")
	case errors.Is(err, media.ErrUnsupportedType):
		messageResponse(w, http.StatusBadRequest, "unsupported image type")
	default:
		messageResponse(w, http.StatusBadRequest, "malformed upload")
	}
}

// processingError handles normalization failures: logged with enough
// context to diagnose, surfaced as an opaque 500.
func (s *Server) processingError(w http.ResponseWriter, staged media.StagedFile, width, height int, err error) {
	s.log.Error("image normalization failed",
		zap.String("original", staged.OriginalName),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Error(err))
	messageResponse(w, http.StatusInternalServerError, "Server error")
}

// discardStaged drops a staged file whose request failed validation
// before normalization ran. Best effort.
func (s *Server) discardStaged(staged media.StagedFile) {
	if err := os.Remove(staged.Path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("staging cleanup failed", zap.String("path", staged.Path), zap.Error(err))
	}
}
