package form

import (
	"strings"

	"github.com/Luismorlan/blogmux/model"
	"github.com/gin-gonic/gin"
)

// CommentForm validates a comment submission, a single required text field.
type CommentForm struct {
	Text string

	Errors map[string]string
}

// CommentFormSchema describes the comment form's fields.
func CommentFormSchema() Schema {
	return Schema{
		{Name: "text", Type: FieldTypeText, Label: "Comment text", Required: true},
	}
}

func NewCommentForm(c *gin.Context) *CommentForm {
	return &CommentForm{
		Text:   strings.TrimSpace(c.PostForm("text")),
		Errors: map[string]string{},
	}
}

func (f *CommentForm) Validate() bool {
	if f.Text == "" {
		f.Errors["text"] = "This field is required."
	}
	return len(f.Errors) == 0
}

// Comment builds the unsaved comment. The caller must set Id, AuthorID and
// PostID before persisting.
func (f *CommentForm) Comment() *model.Comment {
	return &model.Comment{Text: f.Text}
}
