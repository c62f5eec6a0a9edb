package api

import (
	"go.uber.org/zap"

	"flipr/internal/auth"
	"flipr/internal/config"
	"flipr/internal/media"
	"flipr/internal/store"
)

// Fixed normalization targets per entity kind. The normalizer itself is
// dimension-agnostic; these are the two calling contexts.
const (
	projectImageWidth  = 450
	projectImageHeight = 350
	clientImageWidth   = 300
	clientImageHeight  = 300
)

// imageField is the multipart field name creation endpoints expect.
const imageField = "image"

// Server holds the handler dependencies.
type Server struct {
	cfg        config.Config
	store      *store.Store
	auth       *auth.Auth
	receiver   *media.Receiver
	normalizer *media.Normalizer
	log        *zap.Logger
}

// NewServer assembles the HTTP layer. Staged and normalized files share
// the configured upload directory, mirroring how assets are served from
// it.
func NewServer(cfg config.Config, st *store.Store, a *auth.Auth, log *zap.Logger) *Server {
	return &Server{
		cfg:        cfg,
		store:      st,
		auth:       a,
		receiver:   media.NewReceiver(cfg.UploadDir, cfg.MaxUploadBytes, log),
		normalizer: media.NewNormalizer(cfg.UploadDir, log),
		log:        log,
	}
}
