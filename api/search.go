package api

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// registerSearch proxies keyword queries to the Solr collection when search is enabled.
func (s *Server) registerSearch(api *gin.RouterGroup) {
	solr := s.deps.Config.Solr
	if !solr.Enabled() {
		return
	}
	target, err := url.Parse(solr.Endpoint)
	if err != nil {
		s.logger.Error("Invalid solr endpoint, search disabled", zap.String("endpoint", solr.Endpoint), zap.Error(err))
		return
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	handle := func(c *gin.Context) {
		handler := c.Param("handler")
		if handler != "select" && handler != "query" {
			c.JSON(http.StatusNotFound, JSONError{Error: "unknown search handler " + handler})
			return
		}
		c.Request.URL.Path = "/solr/" + solr.Collection + "/" + handler
		c.Request.URL.Scheme = target.Scheme
		c.Request.URL.Host = target.Host
		c.Request.Host = target.Host
		c.Request.Header.Set("X-Forwarded-Host", c.Request.Header.Get("Host"))
		proxy.ServeHTTP(c.Writer, c.Request)
	}
	api.GET("/search/:handler", handle)
	api.POST("/search/:handler", handle)
}
