package dashboard

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/greencart/console/internal/session"
)

// requireSession gates protected views on the session state machine:
//
//   - session not yet resolved: serve a neutral placeholder, no redirect,
//     so protected content never flickers in before the restore finishes;
//   - unauthenticated: redirect to /login carrying the original target in
//     "from" so a successful login can return the operator to it;
//   - authenticated: pass through.
func requireSession(mgr *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		select {
		case <-mgr.Resolved():
		default:
			c.HTML(http.StatusOK, "loading.html", gin.H{})
			c.Abort()
			return
		}

		if !mgr.Authenticated() {
			from := c.Request.URL.RequestURI()
			c.Redirect(http.StatusFound, "/login?from="+url.QueryEscape(from))
			c.Abort()
			return
		}
		c.Next()
	}
}
