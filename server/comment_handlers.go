package server

import (
	"net/http"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/form"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AddComment attaches a comment to the post, authored by the requester, then
// redirects back to the detail view. An invalid submission redirects without
// persisting anything.
func (s *Server) AddComment(c *gin.Context) {
	var post model.Post
	if result := s.DB.Where("id = ?", c.Param("id")).First(&post); result.RowsAffected != 1 {
		s.notFound(c)
		return
	}

	detailURL := "/posts/" + post.Id + "/"

	f := form.NewCommentForm(c)
	if !f.Validate() {
		c.Redirect(http.StatusFound, detailURL)
		return
	}

	comment := f.Comment()
	comment.Id = uuid.New().String()
	comment.AuthorID = middlewares.GetCurrentUser(c).Id
	comment.PostID = post.Id
	if err := s.DB.Create(comment).Error; err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	s.invalidateListings()
	c.Redirect(http.StatusFound, detailURL)
}
