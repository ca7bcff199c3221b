package form

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"strings"

	"github.com/Luismorlan/blogmux/file_store"
	"github.com/Luismorlan/blogmux/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostForm validates a post submission: required text, optional group (must
// reference an existing group by slug), optional image upload. The image is
// only handed to the file store after it proved to be a decodable payload.
type PostForm struct {
	Text      string
	GroupSlug string
	ImageKey  string

	Errors map[string]string

	group     *model.Group
	imageFile *multipart.FileHeader
}

// PostFormSchema describes the post form's fields.
func PostFormSchema() Schema {
	return Schema{
		{Name: "text", Type: FieldTypeText, Label: "Text", Required: true},
		{Name: "group", Type: FieldTypeSelect, Label: "Group", HelpText: "Choose a group", Required: false},
		{Name: "image", Type: FieldTypeImage, Label: "Image", Required: false},
	}
}

// NewPostForm binds a post form from the request. Call Validate before using
// the bound values.
func NewPostForm(c *gin.Context) *PostForm {
	f := &PostForm{
		Text:      strings.TrimSpace(c.PostForm("text")),
		GroupSlug: strings.TrimSpace(c.PostForm("group")),
		Errors:    map[string]string{},
	}
	// Missing file is not an error, the field is optional.
	if file, err := c.FormFile("image"); err == nil {
		f.imageFile = file
	}
	return f
}

// Validate checks every field and collects messages into Errors. A valid
// image is stored immediately so the resulting key can be bound to the post.
// Returns true iff the whole form is valid.
func (f *PostForm) Validate(db *gorm.DB, store file_store.UploadFileStore) bool {
	if f.Text == "" {
		f.Errors["text"] = "This field is required."
	}

	if f.GroupSlug != "" {
		var group model.Group
		if result := db.Where("slug = ?", f.GroupSlug).First(&group); result.RowsAffected != 1 {
			f.Errors["group"] = "Choose an existing group."
		} else {
			f.group = &group
		}
	}

	if f.imageFile != nil {
		key, err := validateAndStoreImage(f.imageFile, store)
		if err != nil {
			f.Errors["image"] = "Upload a valid image."
		} else {
			f.ImageKey = key
		}
	}

	return len(f.Errors) == 0
}

// Post builds the unsaved post carrying the validated fields. The caller must
// set Id, PubDate and AuthorID before persisting.
func (f *PostForm) Post() *model.Post {
	post := &model.Post{
		Text:     f.Text,
		ImageKey: f.ImageKey,
	}
	if f.group != nil {
		post.GroupID = &f.group.Id
	}
	return post
}

// Apply copies the validated fields onto an existing post for the edit flow.
// PubDate and author are deliberately left untouched.
func (f *PostForm) Apply(post *model.Post) {
	post.Text = f.Text
	if f.group != nil {
		post.GroupID = &f.group.Id
	} else {
		post.GroupID = nil
	}
	// A preloaded Group would make gorm restore the old GroupID from the
	// association on Save. GroupID is the source of truth here.
	post.Group = nil
	if f.ImageKey != "" {
		post.ImageKey = f.ImageKey
	}
}

// validateAndStoreImage decodes the upload header to prove it is a well
// formed jpeg/png/gif before committing it to the file store.
func validateAndStoreImage(file *multipart.FileHeader, store file_store.UploadFileStore) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(src); err != nil {
		return "", err
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(buf.Bytes())); err != nil {
		return "", err
	}

	return store.Store(bytes.NewReader(buf.Bytes()), file.Filename)
}
