package admin

import (
	"net/http"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/server/middlewares"
	"github.com/Luismorlan/blogmux/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The admin console is a small JSON surface for operators: list and search
// each entity with fixed columns, inline-edit the one editable field the
// binding declares. Bindings are configuration, not computed from the models.

// Binding fixes the admin surface of one entity.
type Binding struct {
	Name           string
	ListColumns    []string
	SearchFields   []string
	EditableFields []string
}

// Bindings mirror the original console registrations entity by entity.
var Bindings = map[string]Binding{
	"post": {
		Name:           "post",
		ListColumns:    []string{"pk", "text", "pub_date", "author", "group"},
		SearchFields:   []string{"text"},
		EditableFields: []string{"group"},
	},
	"group": {
		Name:           "group",
		ListColumns:    []string{"title", "description"},
		SearchFields:   []string{"title"},
		EditableFields: []string{"description"},
	},
	"comment": {
		Name:           "comment",
		ListColumns:    []string{"author", "text"},
		SearchFields:   []string{"text", "author"},
		EditableFields: []string{"text"},
	},
	"follow": {
		Name:           "follow",
		ListColumns:    []string{"user", "author"},
		SearchFields:   []string{"user", "author"},
		EditableFields: []string{"author"},
	},
}

// Handler serves the admin console bindings.
type Handler struct {
	DB    *gorm.DB
	Cache *utils.PageCache
}

func NewHandler(db *gorm.DB, cache *utils.PageCache) *Handler {
	return &Handler{DB: db, Cache: cache}
}

// RegisterRoutes mounts the console under /admin, guarded by the operator
// check.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/admin", middlewares.AdminRequired())
	{
		group.GET("/entities/:entity", h.List)
		group.POST("/entities/:entity/:id", h.Edit)
		group.POST("/cache/clear", h.ClearCache)
	}
}

// List returns one page of the entity, optionally filtered by a q parameter
// matched against the binding's search fields.
func (h *Handler) List(c *gin.Context) {
	binding, ok := Bindings[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "unknown entity"})
		return
	}

	pageNumber := utils.ParsePageNumber(c.DefaultQuery("page", "1"))
	q := c.Query("q")

	rows, page, err := h.listEntity(binding, q, pageNumber)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "fail to list " + binding.Name, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"data": gin.H{
			"columns": binding.ListColumns,
			"rows":    rows,
			"pagination": gin.H{
				"current_page": page.CurrentPage,
				"total_pages":  page.TotalPages,
				"total":        page.TotalItems,
			},
		},
	})
}

func (h *Handler) listEntity(binding Binding, q string, pageNumber int) ([]gin.H, utils.Page, error) {
	switch binding.Name {
	case "post":
		query := h.DB.Model(&model.Post{}).Preload("Author").Preload("Group").Order("pub_date desc")
		if q != "" {
			query = query.Where("text ILIKE ?", "%"+q+"%")
		}
		var posts []*model.Post
		page, err := utils.Paginate(query, pageNumber, &posts)
		if err != nil {
			return nil, page, err
		}
		rows := []gin.H{}
		for _, p := range posts {
			row := gin.H{
				"pk":       p.Id,
				"text":     p.String(),
				"pub_date": p.PubDate,
				"author":   p.Author.Username,
				"group":    "",
			}
			if p.Group != nil {
				row["group"] = p.Group.String()
			}
			rows = append(rows, row)
		}
		return rows, page, nil

	case "group":
		query := h.DB.Model(&model.Group{}).Order("title asc")
		if q != "" {
			query = query.Where("title ILIKE ?", "%"+q+"%")
		}
		var groups []*model.Group
		page, err := utils.Paginate(query, pageNumber, &groups)
		if err != nil {
			return nil, page, err
		}
		rows := []gin.H{}
		for _, g := range groups {
			rows = append(rows, gin.H{"pk": g.Id, "title": g.Title, "description": g.Description})
		}
		return rows, page, nil

	case "comment":
		query := h.DB.Model(&model.Comment{}).Preload("Author").Order("created_at desc")
		if q != "" {
			query = query.Where(
				"text ILIKE ? OR author_id IN (?)", "%"+q+"%",
				h.DB.Model(&model.User{}).Select("id").Where("username ILIKE ?", "%"+q+"%"))
		}
		var comments []*model.Comment
		page, err := utils.Paginate(query, pageNumber, &comments)
		if err != nil {
			return nil, page, err
		}
		rows := []gin.H{}
		for _, cm := range comments {
			rows = append(rows, gin.H{"pk": cm.Id, "author": cm.Author.Username, "text": cm.Text})
		}
		return rows, page, nil

	case "follow":
		query := h.DB.Model(&model.UserFollow{}).Order("created_at desc")
		if q != "" {
			matching := h.DB.Model(&model.User{}).Select("id").Where("username ILIKE ?", "%"+q+"%")
			query = query.Where("user_id IN (?) OR author_id IN (?)", matching, matching)
		}
		var follows []*model.UserFollow
		page, err := utils.Paginate(query, pageNumber, &follows)
		if err != nil {
			return nil, page, err
		}
		rows := []gin.H{}
		for _, f := range follows {
			rows = append(rows, gin.H{"user": f.UserID, "author": f.AuthorID})
		}
		return rows, page, nil
	}

	return nil, utils.Page{}, nil
}

// Edit applies an inline edit to the single editable field of the entity.
func (h *Handler) Edit(c *gin.Context) {
	binding, ok := Bindings[c.Param("entity")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "unknown entity"})
		return
	}

	var input struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "invalid request body"})
		return
	}
	if !utils.ContainsString(binding.EditableFields, input.Field) {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "field is not editable"})
		return
	}

	if err := h.editEntity(binding, c.Param("id"), input.Field, input.Value); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "fail to edit " + binding.Name, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 200})
}

func (h *Handler) editEntity(binding Binding, id string, field string, value string) error {
	switch binding.Name {
	case "post":
		// The only editable post field is its group, addressed by slug.
		// Empty value detaches the post from any group.
		if value == "" {
			return h.DB.Model(&model.Post{}).Where("id = ?", id).Update("group_id", nil).Error
		}
		var group model.Group
		if result := h.DB.Where("slug = ?", value).First(&group); result.RowsAffected != 1 {
			return gorm.ErrRecordNotFound
		}
		return h.DB.Model(&model.Post{}).Where("id = ?", id).Update("group_id", group.Id).Error

	case "group":
		return h.DB.Model(&model.Group{}).Where("id = ?", id).Update("description", value).Error

	case "comment":
		return h.DB.Model(&model.Comment{}).Where("id = ?", id).Update("text", value).Error

	case "follow":
		// Repointing a follow edge. The id parameter is the subscribing
		// user's id, the value the new author's username.
		var author model.User
		if result := h.DB.Where("username = ?", value).First(&author); result.RowsAffected != 1 {
			return gorm.ErrRecordNotFound
		}
		return h.DB.Model(&model.UserFollow{}).Where("user_id = ?", id).Update("author_id", author.Id).Error
	}
	return nil
}

// ClearCache drops the whole page cache, the operator escape hatch after out
// of band data surgery.
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.Cache.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "fail to clear page cache", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200})
}
