package dto

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

type CreateSnippetRequest struct {
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Language    string   `json:"language"`
	Explanation *string  `json:"explanation,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsFavorite  bool     `json:"isFavorite,omitempty"`
	Collection  string   `json:"collection"`

	collectionID uuid.UUID
}

// UpdateSnippetRequest mirrors the update contract: title, code, language
// and explanation are merged only when supplied; omitted tags and
// isFavorite reset to empty/false; omitted collection keeps the current
// reference.
type UpdateSnippetRequest struct {
	Title       *string  `json:"title,omitempty"`
	Code        *string  `json:"code,omitempty"`
	Language    *string  `json:"language,omitempty"`
	Explanation *string  `json:"explanation,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	IsFavorite  *bool    `json:"isFavorite,omitempty"`
	Collection  *string  `json:"collection,omitempty"`

	collectionID *uuid.UUID
}

// CollectionID returns the parsed collection reference. Only valid after
// Validate has passed.
func (r *CreateSnippetRequest) CollectionID() uuid.UUID {
	return r.collectionID
}

// CollectionID returns the parsed collection reference, or nil when the
// field was omitted. Only valid after Validate has passed.
func (r *UpdateSnippetRequest) CollectionID() *uuid.UUID {
	return r.collectionID
}

func (r *CreateSnippetRequest) Validate() []FieldError {
	var errs []FieldError

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	} else if utf8.RuneCountInString(r.Title) > 200 {
		errs = append(errs, FieldError{Field: "title", Message: "Title cannot be more than 200 characters"})
	}

	if r.Code == "" {
		errs = append(errs, FieldError{Field: "code", Message: "Code is required"})
	} else if utf8.RuneCountInString(r.Code) > 10000 {
		errs = append(errs, FieldError{Field: "code", Message: "Code cannot be more than 10000 characters"})
	}

	r.Language = strings.TrimSpace(r.Language)
	if r.Language == "" {
		errs = append(errs, FieldError{Field: "language", Message: "Language is required"})
	} else if utf8.RuneCountInString(r.Language) > 50 {
		errs = append(errs, FieldError{Field: "language", Message: "Language cannot be more than 50 characters"})
	}

	errs = append(errs, validateExplanation(r.Explanation)...)

	r.Tags, errs = validateTags(r.Tags, errs)

	if r.Collection == "" {
		errs = append(errs, FieldError{Field: "collection", Message: "Collection is required"})
	} else {
		id, err := uuid.Parse(r.Collection)
		if err != nil {
			errs = append(errs, FieldError{Field: "collection", Message: "Invalid collection ID"})
		} else {
			r.collectionID = id
		}
	}

	return errs
}

func (r *UpdateSnippetRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if *r.Title == "" {
			errs = append(errs, FieldError{Field: "title", Message: "Title cannot be empty"})
		} else if utf8.RuneCountInString(*r.Title) > 200 {
			errs = append(errs, FieldError{Field: "title", Message: "Title cannot be more than 200 characters"})
		}
	}

	if r.Code != nil {
		if *r.Code == "" {
			errs = append(errs, FieldError{Field: "code", Message: "Code cannot be empty"})
		} else if utf8.RuneCountInString(*r.Code) > 10000 {
			errs = append(errs, FieldError{Field: "code", Message: "Code cannot be more than 10000 characters"})
		}
	}

	if r.Language != nil {
		*r.Language = strings.TrimSpace(*r.Language)
		if *r.Language == "" {
			errs = append(errs, FieldError{Field: "language", Message: "Language cannot be empty"})
		} else if utf8.RuneCountInString(*r.Language) > 50 {
			errs = append(errs, FieldError{Field: "language", Message: "Language cannot be more than 50 characters"})
		}
	}

	errs = append(errs, validateExplanation(r.Explanation)...)

	r.Tags, errs = validateTags(r.Tags, errs)

	if r.Collection != nil {
		id, err := uuid.Parse(*r.Collection)
		if err != nil {
			errs = append(errs, FieldError{Field: "collection", Message: "Invalid collection ID"})
		} else {
			r.collectionID = &id
		}
	}

	return errs
}

func validateExplanation(explanation *string) []FieldError {
	if explanation != nil && utf8.RuneCountInString(*explanation) > 5000 {
		return []FieldError{{Field: "explanation", Message: "Explanation cannot be more than 5000 characters"}}
	}
	return nil
}

func validateTags(tags []string, errs []FieldError) ([]string, []FieldError) {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if utf8.RuneCountInString(tag) > 30 {
			errs = append(errs, FieldError{Field: "tags", Message: "Each tag cannot be more than 30 characters"})
		}
		trimmed = append(trimmed, tag)
	}
	if tags == nil {
		return nil, errs
	}
	return trimmed, errs
}
