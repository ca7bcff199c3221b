package server

import (
	"net/http"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// FollowIndex lists posts authored by anyone the requester follows, newest
// first.
func (s *Server) FollowIndex(c *gin.Context) {
	user := middlewares.GetCurrentUser(c)

	var posts []*model.Post
	query := s.postsBaseQuery().
		Where("author_id IN (?)", s.DB.Model(&model.UserFollow{}).
			Select("author_id").
			Where("user_id = ?", user.Id))
	page, err := utils.Paginate(query, utils.ParsePageNumber(c.Query("page")), &posts)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "follow.html", gin.H{
		"posts": posts,
		"page":  page,
		"user":  user,
	})
}

// ProfileFollow subscribes the requester to the target author. The composite
// primary key on user_follows makes the create an idempotent upsert, a
// duplicate follow is a no-op rather than a second edge. Following yourself
// is a no-op as well.
func (s *Server) ProfileFollow(c *gin.Context) {
	user := middlewares.GetCurrentUser(c)
	username := c.Param("username")
	profileURL := "/profile/" + username + "/"

	if user.Username == username {
		c.Redirect(http.StatusFound, profileURL)
		return
	}

	var author model.User
	if result := s.DB.Where("username = ?", username).First(&author); result.RowsAffected != 1 {
		s.notFound(c)
		return
	}

	err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserFollow{UserID: user.Id, AuthorID: author.Id}).Error
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, profileURL)
}

// ProfileUnfollow removes the requester's subscription to the target author.
// Unfollowing someone you never followed is a 404, there is no edge to
// remove.
func (s *Server) ProfileUnfollow(c *gin.Context) {
	user := middlewares.GetCurrentUser(c)
	username := c.Param("username")

	var author model.User
	if result := s.DB.Where("username = ?", username).First(&author); result.RowsAffected != 1 {
		s.notFound(c)
		return
	}

	result := s.DB.Where("user_id = ? AND author_id = ?", user.Id, author.Id).
		Delete(&model.UserFollow{})
	if result.Error != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		s.notFound(c)
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}
