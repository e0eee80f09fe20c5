package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/store"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func (s *Server) registerThesauri(api *gin.RouterGroup) {
	api.GET("/thesauri", s.handleListThesauri)
	api.GET("/thesauri/:identifier", s.handleGetThesaurus)
	api.GET("/thesauri/:identifier/keywords", s.handleListKeywords)
	api.POST("/thesauri", s.handleImportThesaurus)
}

func (s *Server) handleListThesauri(c *gin.Context) {
	thesauri, err := s.deps.Repository.ListThesauri(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed listing thesauri", zap.Error(err))
		c.JSON(http.StatusInternalServerError, JSONError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, thesauri)
}

func (s *Server) handleGetThesaurus(c *gin.Context) {
	identifier := c.Param("identifier")
	t, err := s.deps.Repository.GetThesaurus(c.Request.Context(), identifier)
	if err != nil {
		s.readError(c, identifier, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// handleListKeywords returns the keywords of a thesaurus labeled in the requested
// language (query parameter lang, default language otherwise).
func (s *Server) handleListKeywords(c *gin.Context) {
	identifier := c.Param("identifier")
	keywords, err := s.deps.Repository.Keywords(c.Request.Context(), identifier)
	if err != nil {
		s.readError(c, identifier, err)
		return
	}
	language := c.DefaultQuery("lang", s.deps.Config.DefaultLang)
	result := make([]thesaurus.LabeledKeyword, 0, len(keywords))
	for _, keyword := range keywords {
		result = append(result, keyword.Label(language, s.deps.Config.DefaultLang))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) readError(c *gin.Context, identifier string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, JSONError{Error: err.Error()})
		return
	}
	s.logger.Error("Failed reading thesaurus", zap.String("identifier", identifier), zap.Error(err))
	c.JSON(http.StatusInternalServerError, JSONError{Error: err.Error()})
}

// handleImportThesaurus loads an uploaded RDF file. The response is the load summary.
func (s *Server) handleImportThesaurus(c *gin.Context) {
	granted, user := s.writeAccessGranted(c.Request.Header)
	if !granted {
		c.JSON(http.StatusForbidden, JSONError{Error: "not allowed"})
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, JSONError{Error: thesaurus.ErrMissingFile.Error()})
		return
	}
	dryRun, err := formBool(c, "dryrun")
	if err != nil {
		c.JSON(http.StatusBadRequest, JSONError{Error: err.Error()})
		return
	}
	lowerCase, err := formBool(c, "lower_case")
	if err != nil {
		c.JSON(http.StatusBadRequest, JSONError{Error: err.Error()})
		return
	}
	variant, err := thesaurus.VariantByName(c.PostForm("variant"), c.PostForm("scheme"))
	if err != nil {
		c.JSON(http.StatusBadRequest, JSONError{Error: err.Error()})
		return
	}
	opts := thesaurus.Options{
		Name:        c.PostForm("name"),
		DefaultLang: c.DefaultPostForm("defaultlang", s.deps.Config.DefaultLang),
		DryRun:      dryRun,
		LowerCase:   lowerCase,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, JSONError{Error: err.Error()})
		return
	}
	defer file.Close()

	logger := s.logger.With(zap.String("user", user), zap.String("upload", header.Filename))
	loader := thesaurus.NewLoader(variant, s.deps.Sink, s.deps.Indexer, s.deps.Metrics, logger)
	summary, err := loader.LoadReader(c.Request.Context(), file, header.Filename, c.PostForm("format"), opts)
	if err != nil {
		logger.Error("Failed importing thesaurus", zap.String("identifier", opts.Name), zap.Error(err))
		c.JSON(importErrorStatus(err), JSONError{Error: err.Error()})
		return
	}
	status := http.StatusCreated
	if summary.DryRun {
		status = http.StatusOK
	} else {
		c.Header("Location", BasePath+"/thesauri/"+summary.Identifier)
	}
	c.JSON(status, summary)
}

func formBool(c *gin.Context, key string) (bool, error) {
	value := c.PostForm(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.New("invalid boolean for " + key + ": " + value)
	}
	return parsed, nil
}

var badInputErrors = []error{
	thesaurus.ErrMissingName,
	thesaurus.ErrNoTitle,
	rdf.ErrUnknownFormat,
	rdf.ErrInvalidRDF,
	skos.ErrNoConceptScheme,
	skos.ErrMultipleConceptSchemes,
	skos.ErrNoDate,
	skos.ErrInvalidDate,
}

func importErrorStatus(err error) int {
	if errors.Is(err, thesaurus.ErrDuplicate) {
		return http.StatusConflict
	}
	for _, target := range badInputErrors {
		if errors.Is(err, target) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}
