package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func (s *Server) registerLabels(api *gin.RouterGroup) {
	api.POST("/labels", s.handleLabels)
}

// handleLabels resolves labels for the keyword IRIs in form field id and the language
// in form field lang.
func (s *Server) handleLabels(c *gin.Context) {
	language := c.PostForm("lang")
	ids := c.PostFormArray("id")
	keywords, err := s.deps.Repository.KeywordsByAbout(c.Request.Context(), ids)
	if err != nil {
		s.logger.Error("Failed getting labels", zap.Error(err))
		c.JSON(http.StatusInternalServerError, JSONError{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, thesaurus.LabelsByAbout(keywords, language, s.deps.Config.DefaultLang))
}
