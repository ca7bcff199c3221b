package form

// The blog has exactly two user-facing forms, one for posts and one for
// comments. Each form parses its request, validates field by field into an
// Errors map, and on success yields an unsaved model the handler finishes
// (author, post) before persisting. Nothing is written on validation failure.
//
// Every form also publishes an explicit Schema describing its fields, so the
// template layer and the tests can inspect field names, types and labels
// without any runtime reflection.

// FieldType classifies how a form field is rendered and validated.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeSelect FieldType = "select"
	FieldTypeImage  FieldType = "image"
)

// Field is one entry of a form schema.
type Field struct {
	Name     string
	Type     FieldType
	Label    string
	HelpText string
	Required bool
}

// Schema is the ordered field list of a form.
type Schema []Field

// FieldByName returns the schema entry with the given name, ok=false when the
// form has no such field.
func (s Schema) FieldByName(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
