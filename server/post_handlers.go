package server

import (
	"net/http"
	"time"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/form"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Index lists all posts, newest first. The whole rendered page sits behind
// the page cache middleware.
func (s *Server) Index(c *gin.Context) {
	var posts []*model.Post
	page, err := utils.Paginate(s.postsBaseQuery(), utils.ParsePageNumber(c.Query("page")), &posts)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"posts": posts,
		"page":  page,
		"user":  middlewares.GetCurrentUser(c),
	})
}

// GroupPosts lists the posts filed under the group addressed by slug.
func (s *Server) GroupPosts(c *gin.Context) {
	var group model.Group
	if result := s.DB.Where("slug = ?", c.Param("slug")).First(&group); result.RowsAffected != 1 {
		s.notFound(c)
		return
	}

	var posts []*model.Post
	query := s.postsBaseQuery().Where("group_id = ?", group.Id)
	page, err := utils.Paginate(query, utils.ParsePageNumber(c.Query("page")), &posts)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "group_list.html", gin.H{
		"group": group,
		"posts": posts,
		"page":  page,
		"user":  middlewares.GetCurrentUser(c),
	})
}

// Profile lists an author's posts together with their total post count and,
// for an authenticated viewer, whether the viewer follows the author.
func (s *Server) Profile(c *gin.Context) {
	var author model.User
	if result := s.DB.Where("username = ?", c.Param("username")).First(&author); result.RowsAffected != 1 {
		s.notFound(c)
		return
	}

	var posts []*model.Post
	query := s.postsBaseQuery().Where("author_id = ?", author.Id)
	page, err := utils.Paginate(query, utils.ParsePageNumber(c.Query("page")), &posts)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	following := false
	if viewer := middlewares.GetCurrentUser(c); viewer != nil {
		var count int64
		s.DB.Model(&model.UserFollow{}).
			Where("user_id = ? AND author_id = ?", viewer.Id, author.Id).
			Count(&count)
		following = count > 0
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"author":    author,
		"posts":     posts,
		"page":      page,
		"postCount": page.TotalItems,
		"following": following,
		"user":      middlewares.GetCurrentUser(c),
	})
}

// PostDetail shows a single post with its comments, the comment form and the
// author's total post count.
func (s *Server) PostDetail(c *gin.Context) {
	var post model.Post
	result := s.DB.Preload("Author").Preload("Group").
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Comments.Author").
		Where("id = ?", c.Param("id")).First(&post)
	if result.RowsAffected != 1 {
		s.notFound(c)
		return
	}

	var postCount int64
	s.DB.Model(&model.Post{}).Where("author_id = ?", post.AuthorID).Count(&postCount)

	c.HTML(http.StatusOK, "post_detail.html", gin.H{
		"post":        post,
		"postCount":   postCount,
		"comments":    post.Comments,
		"commentForm": form.CommentFormSchema(),
		"user":        middlewares.GetCurrentUser(c),
	})
}

// PostCreatePage renders the empty create form.
func (s *Server) PostCreatePage(c *gin.Context) {
	s.renderPostForm(c, &form.PostForm{Errors: map[string]string{}}, false, "")
}

// PostCreate persists a valid submission as a new post authored by the
// requester and redirects to their profile. An invalid submission re-renders
// the form with field errors and persists nothing.
func (s *Server) PostCreate(c *gin.Context) {
	user := middlewares.GetCurrentUser(c)

	f := form.NewPostForm(c)
	if !f.Validate(s.DB, s.FileStore) {
		s.renderPostForm(c, f, false, "")
		return
	}

	post := f.Post()
	post.Id = uuid.New().String()
	post.PubDate = time.Now()
	post.AuthorID = user.Id
	if err := s.DB.Create(post).Error; err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.invalidateListings()
	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// PostEditPage renders the edit form prefilled with the post's current
// fields. Non-owners are silently sent back to the detail view.
func (s *Server) PostEditPage(c *gin.Context) {
	post, ok := s.loadPostForEdit(c)
	if !ok {
		return
	}

	f := &form.PostForm{Text: post.Text, Errors: map[string]string{}}
	if post.Group != nil {
		f.GroupSlug = post.Group.Slug
	}
	s.renderPostForm(c, f, true, post.Id)
}

// PostEdit updates the post in place and redirects to the detail view. The
// publication date and the author never change.
func (s *Server) PostEdit(c *gin.Context) {
	post, ok := s.loadPostForEdit(c)
	if !ok {
		return
	}

	f := form.NewPostForm(c)
	if !f.Validate(s.DB, s.FileStore) {
		s.renderPostForm(c, f, true, post.Id)
		return
	}

	f.Apply(post)
	if err := s.DB.Omit("Group").Save(post).Error; err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.invalidateListings()
	c.Redirect(http.StatusFound, "/posts/"+post.Id+"/")
}

// loadPostForEdit fetches the post and runs the ownership check shared by the
// edit page and the edit submission. A non-owner is redirected to the detail
// view without any error signal, the edit surface just does not exist for
// them.
func (s *Server) loadPostForEdit(c *gin.Context) (*model.Post, bool) {
	var post model.Post
	result := s.DB.Preload("Group").Where("id = ?", c.Param("id")).First(&post)
	if result.RowsAffected != 1 {
		s.notFound(c)
		return nil, false
	}

	user := middlewares.GetCurrentUser(c)
	if post.AuthorID != user.Id {
		c.Redirect(http.StatusFound, "/posts/"+post.Id+"/")
		c.Abort()
		return nil, false
	}
	return &post, true
}

func (s *Server) renderPostForm(c *gin.Context, f *form.PostForm, isEdit bool, postID string) {
	var groups []*model.Group
	s.DB.Order("title asc").Find(&groups)

	// The form page always renders 200, field errors travel in the body.
	c.HTML(http.StatusOK, "create_post.html", gin.H{
		"form":   f,
		"schema": form.PostFormSchema(),
		"groups": groups,
		"isEdit": isEdit,
		"postID": postID,
		"user":   middlewares.GetCurrentUser(c),
	})
}
