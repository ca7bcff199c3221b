package middlewares

import (
	"bytes"
	"net/http"
	"net/url"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// SessionKeyUserID is the scs session key holding the authenticated
	// user's id.
	SessionKeyUserID = "userID"

	// contextKeyUser is the gin context key the resolved user is stored
	// under.
	contextKeyUser = "currentUser"

	// LoginPath is where anonymous users are sent when they hit a protected
	// action. The original destination is preserved in the "next" query
	// parameter.
	LoginPath = "/auth/login/"
)

// CurrentUser resolves the session to a *model.User and stores it in the gin
// context for downstream handlers. Requests without a valid session simply
// proceed anonymously, protected routes additionally mount LoginRequired.
func CurrentUser(sessions *scs.SessionManager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := sessions.GetString(c.Request.Context(), SessionKeyUserID)
		if userID != "" {
			var user model.User
			if result := db.Where("id = ?", userID).First(&user); result.RowsAffected == 1 {
				c.Set(contextKeyUser, &user)
			}
		}
		c.Next()
	}
}

// GetCurrentUser returns the user resolved by CurrentUser, nil when the
// request is anonymous.
func GetCurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(contextKeyUser)
	if !ok {
		return nil
	}
	user, ok := val.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// LoginRequired redirects anonymous requests to the login page, preserving
// the original target in the "next" parameter so login can continue there.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetCurrentUser(c) == nil {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, LoginPath+"?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired guards the admin console bindings. Non-operators get a plain
// 404 so the console's existence is not advertised.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

// PageCache serves whole rendered pages out of the cache, keyed by route path,
// query string and viewer. The viewer dimension keeps one user's navbar from
// being replayed to another. Only successful responses are stored. There is no
// TTL, the write path invalidates explicitly. Must run after CurrentUser.
func PageCache(cache *utils.PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := ""
		if user := GetCurrentUser(c); user != nil {
			viewer = user.Id
		}
		key := cache.CacheKey(c.Request.URL.Path, c.Request.URL.RawQuery, viewer)

		if body, ok := cache.Get(key); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder
		c.Next()

		if c.Writer.Status() == http.StatusOK {
			cache.Set(key, recorder.body.String())
		}
	}
}

// bodyRecorder tees everything written to the response so PageCache can store
// it after the handler ran.
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *bodyRecorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}
