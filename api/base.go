package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/base"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

type JSONError struct {
	Error string `json:"error"`
}

var BasePath = "/api/v1"
var livelinessEndpoint = "/healthz"

// Repository is the read side of the thesaurus store.
type Repository interface {
	ListThesauri(ctx context.Context) ([]thesaurus.Thesaurus, error)
	GetThesaurus(ctx context.Context, identifier string) (*thesaurus.Thesaurus, error)
	Keywords(ctx context.Context, identifier string) ([]thesaurus.LoadedKeyword, error)
	KeywordsByAbout(ctx context.Context, abouts []string) ([]thesaurus.LoadedKeyword, error)
}

// Dependencies of the API. Indexer, Metrics and Gatherer are optional.
type Dependencies struct {
	Config     *base.Config
	Repository Repository
	Sink       thesaurus.Sink
	Indexer    thesaurus.Indexer
	Metrics    *thesaurus.Metrics
	Gatherer   prometheus.Gatherer
	Logger     *zap.Logger
}

// Server serves the thesaurus API.
type Server struct {
	Router *gin.Engine
	deps   Dependencies
	logger *zap.Logger
}

// NewServer configures CORS, access logging and all API routes.
func NewServer(deps Dependencies) *Server {
	s := &Server{
		Router: gin.New(),
		deps:   deps,
		logger: deps.Logger,
	}
	corsConfig := cors.Config{
		AllowOrigins:     deps.Config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	// exclude liveliness checks from access logs
	s.Router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{BasePath + livelinessEndpoint},
	}))
	s.Router.Use(gin.Recovery())
	s.Router.Use(cors.New(corsConfig))
	s.Router.SetTrustedProxies(nil) //nolint:errcheck // nil never fails
	s.Router.UseRawPath = true

	api := s.Router.Group(BasePath)
	api.GET(livelinessEndpoint, s.handleHealthz)
	api.GET("/config", s.handleConfig)
	s.registerThesauri(api)
	s.registerLabels(api)
	s.registerOpenAPI(api)
	s.registerSearch(api)

	if deps.Gatherer != nil {
		s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
	return s
}

// handleHealthz returns a lightweight health response for liveness checks.
func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

type clientConfig struct {
	DefaultLang        string   `json:"defaultLang"`
	SupportedLanguages []string `json:"supportedLanguages"`
	Variants           []string `json:"variants"`
	AuthEnabled        bool     `json:"authEnabled"`
	SearchEnabled      bool     `json:"searchEnabled"`
	User               string   `json:"authUser,omitempty"`
	Email              string   `json:"authEmail,omitempty"`
	WriteAccess        bool     `json:"authWriteAccess"`
}

// handleConfig returns runtime configuration and auth context to the client.
func (s *Server) handleConfig(c *gin.Context) {
	writeAccess, user := s.writeAccessGranted(c.Request.Header)
	c.JSON(http.StatusOK, clientConfig{
		DefaultLang:        s.deps.Config.DefaultLang,
		SupportedLanguages: skos.SupportedLanguages,
		Variants:           []string{thesaurus.VariantGemet, thesaurus.VariantAgrovoc},
		AuthEnabled:        s.deps.Config.Auth.Enabled,
		SearchEnabled:      s.deps.Config.Solr.Enabled(),
		User:               user,
		Email:              c.Request.Header.Get(s.deps.Config.Auth.EmailHeader),
		WriteAccess:        writeAccess,
	})
}
