package model

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// RequiredFieldsMessage is returned when a create payload is incomplete.
const RequiredFieldsMessage = "The following fields are required: name, movie, slug"

var validate = validator.New()

// ListVillainsRequest has no input; it exists so the list endpoint runs
// through the same bind/validate pipeline as the others.
type ListVillainsRequest struct{}

func (r *ListVillainsRequest) Validate() error {
	return nil
}

// GetVillainRequest carries the slug path parameter. The slug is not
// format-validated: any text is looked up once percent-escapes are decoded.
type GetVillainRequest struct {
	Slug string `param:"slug"`
}

func (r *GetVillainRequest) Validate() error {
	return nil
}

// DecodedSlug returns the slug with percent-escapes decoded, e.g. "a%2Fb"
// becomes "a/b". Malformed escapes are looked up as sent.
func (r *GetVillainRequest) DecodedSlug() string {
	if slug, err := url.PathUnescape(r.Slug); err == nil {
		return slug
	}
	return r.Slug
}

// CreateVillainRequest is the POST /villains body. Numbers and booleans are
// accepted as text; see Text.
type CreateVillainRequest struct {
	Name  Text `json:"name" validate:"required"`
	Movie Text `json:"movie" validate:"required"`
	Slug  Text `json:"slug" validate:"required"`
}

func (r *CreateVillainRequest) Validate() error {
	return validate.Struct(r)
}

// ValidationMessage replaces the generic "Validation failed" text.
func (r *CreateVillainRequest) ValidationMessage() string {
	return RequiredFieldsMessage
}

// Villain returns the three fields to insert.
func (r *CreateVillainRequest) Villain() Villain {
	return Villain{
		Name:  string(r.Name),
		Movie: string(r.Movie),
		Slug:  string(r.Slug),
	}
}
