package api

import (
	"net/http"
	"strings"

	"golang.org/x/exp/slices"
)

// writeAccessGranted checks the identity headers set by the authenticating proxy.
func (s *Server) writeAccessGranted(h http.Header) (granted bool, user string) {
	auth := s.deps.Config.Auth
	if !auth.Enabled {
		granted = true
		return
	}
	user = h.Get(auth.UserHeader)
	if len(user) == 0 {
		return
	}
	if len(auth.WriteAccessGroup) > 0 {
		// check if user has required group
		granted = slices.Index(strings.Split(h.Get(auth.GroupsHeader), ","), auth.WriteAccessGroup) > -1
	} else {
		granted = true
	}
	return
}
