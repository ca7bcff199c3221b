package server

import (
	"net/http"
	"strings"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/middlewares"
	Logger "github.com/Luismorlan/blogmux/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// The identity surface. The blog core only depends on it through the session
// middleware and the login redirect contract, these handlers exist so that
// the "next" continuation has somewhere to land.

// LoginPage renders the login form. The "next" parameter is carried through
// the form so a successful login continues at the originally requested page.
func (s *Server) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"next": c.Query("next"),
		"user": middlewares.GetCurrentUser(c),
	})
}

// Login verifies the credentials, rotates the session token and stores the
// user id in the session.
func (s *Server) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	var user model.User
	result := s.DB.Where("username = ?", username).First(&user)
	if result.RowsAffected != 1 || !user.CheckPassword(password) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"next":  next,
			"error": "Wrong username or password.",
		})
		return
	}

	// Rotate the session token on privilege change.
	if err := s.Sessions.RenewToken(c.Request.Context()); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.Sessions.Put(c.Request.Context(), middlewares.SessionKeyUserID, user.Id)
	Logger.Log.Info("user logged in: ", user.Username)

	c.Redirect(http.StatusFound, safeNext(next))
}

// SignupPage renders the signup form.
func (s *Server) SignupPage(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"user": middlewares.GetCurrentUser(c),
	})
}

// Signup registers a new user and logs them in.
func (s *Server) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"error": "Username and password are required.",
		})
		return
	}

	var count int64
	s.DB.Model(&model.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		c.HTML(http.StatusOK, "signup.html", gin.H{
			"error": "This username is taken.",
		})
		return
	}

	user := &model.User{
		Id:       uuid.New().String(),
		Username: username,
	}
	if err := user.SetPassword(password); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if err := s.DB.Create(user).Error; err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if err := s.Sessions.RenewToken(c.Request.Context()); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	s.Sessions.Put(c.Request.Context(), middlewares.SessionKeyUserID, user.Id)
	Logger.Log.Info("user signed up: ", user.Username)

	c.Redirect(http.StatusFound, "/")
}

// Logout destroys the session.
func (s *Server) Logout(c *gin.Context) {
	if err := s.Sessions.Destroy(c.Request.Context()); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// safeNext only allows same-site relative continuations, anything else falls
// back to the index.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
