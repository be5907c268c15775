package httpapi

import (
	"github.com/gorilla/sessions"

	"course-studio/internal/analytics"
	"course-studio/internal/catalog"
	"course-studio/internal/handoff"
	"course-studio/internal/logger"
	"course-studio/internal/wizard"
)

// Config wires the API dependencies together.
type Config struct {
	Registry      *wizard.Registry
	Catalog       *catalog.Catalog
	Loader        *handoff.Loader
	Recorder      *analytics.Recorder
	Logger        *logger.Logger
	SessionSecret string
	RoadmapPath   string
	AllowedOrigin string
}

type API struct {
	registry *wizard.Registry
	catalog  *catalog.Catalog
	loader   *handoff.Loader
	recorder *analytics.Recorder
	cookies  *sessions.CookieStore
	log      *logger.Logger
	roadmap  string
}

func NewAPI(cfg Config) *API {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNop()
	}
	registry := cfg.Registry
	if registry == nil {
		registry = wizard.NewRegistry(wizard.Config{Logger: log})
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.NewSeeded()
	}
	loader := cfg.Loader
	if loader == nil {
		loader = handoff.NewLoader(nil)
	}
	secret := cfg.SessionSecret
	if secret == "" {
		secret = "studio-dev-secret"
	}

	return &API{
		registry: registry,
		catalog:  cat,
		loader:   loader,
		recorder: cfg.Recorder,
		cookies:  sessions.NewCookieStore([]byte(secret)),
		log:      log,
		roadmap:  cfg.RoadmapPath,
	}
}
