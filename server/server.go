package server

import (
	"html/template"
	"net/http"

	"github.com/Luismorlan/blogmux/file_store"
	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/admin"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/utils"
	Logger "github.com/Luismorlan/blogmux/utils/log"
	"github.com/alexedwards/scs/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server holds the collaborators every handler needs: the database, the
// whole-page cache, the session manager and the upload file store.
type Server struct {
	DB        *gorm.DB
	Cache     *utils.PageCache
	Sessions  *scs.SessionManager
	FileStore file_store.UploadFileStore
}

func NewServer(db *gorm.DB, cache *utils.PageCache, sessions *scs.SessionManager, store file_store.UploadFileStore) *Server {
	return &Server{
		DB:        db,
		Cache:     cache,
		Sessions:  sessions,
		FileStore: store,
	}
}

// NewRouter builds the gin engine with all blog routes mounted. The templates
// glob is a parameter so tests can point it at the repository root.
func (s *Server) NewRouter(templatesGlob string) *gin.Engine {
	router := gin.Default()
	router.SetFuncMap(template.FuncMap{
		// imageURL resolves a post's stored image key to a fetchable url.
		"imageURL": s.FileStore.GetUrlFromKey,
	})
	router.LoadHTMLGlob(templatesGlob)

	router.Use(cors.Default())
	router.Use(middlewares.CurrentUser(s.Sessions, s.DB))

	router.GET("/", middlewares.PageCache(s.Cache), s.Index)
	router.GET("/group/:slug/", s.GroupPosts)
	router.GET("/profile/:username/", s.Profile)
	router.GET("/posts/:id/", s.PostDetail)

	auth := router.Group("/", middlewares.LoginRequired())
	{
		auth.POST("/posts/:id/comment", s.AddComment)
		auth.GET("/create/", s.PostCreatePage)
		auth.POST("/create/", s.PostCreate)
		auth.GET("/posts/:id/edit/", s.PostEditPage)
		auth.POST("/posts/:id/edit/", s.PostEdit)
		auth.GET("/follow/", s.FollowIndex)
		auth.GET("/profile/:username/follow", s.ProfileFollow)
		auth.GET("/profile/:username/unfollow", s.ProfileUnfollow)
	}

	router.GET("/auth/login/", s.LoginPage)
	router.POST("/auth/login/", s.Login)
	router.GET("/auth/signup/", s.SignupPage)
	router.POST("/auth/signup/", s.Signup)
	router.GET("/auth/logout/", s.Logout)

	admin.NewHandler(s.DB, s.Cache).RegisterRoutes(router)

	return router
}

// notFound renders the shared 404 page.
func (s *Server) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"user": middlewares.GetCurrentUser(c),
	})
	c.Abort()
}

// postsBaseQuery is the shared listing query: posts with author and group
// preloaded, newest first.
func (s *Server) postsBaseQuery() *gorm.DB {
	return s.DB.Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Order("pub_date desc")
}

// invalidateListings drops the cached copies of every listing page the given
// post shows up on. Called by all write-path handlers after persisting.
func (s *Server) invalidateListings() {
	if err := s.Cache.InvalidatePath("/"); err != nil {
		Logger.Log.Warn("fail to invalidate index page cache: ", err)
	}
}
