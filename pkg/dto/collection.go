package dto

import (
	"strings"
	"unicode/utf8"
)

type CreateCollectionRequest struct {
	Name string `json:"name"`
}

type UpdateCollectionRequest struct {
	Name string `json:"name"`
}

func validateCollectionName(name string) []FieldError {
	var errs []FieldError
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Collection name is required"})
	} else if utf8.RuneCountInString(name) > 100 {
		errs = append(errs, FieldError{Field: "name", Message: "Collection name cannot be more than 100 characters"})
	}
	return errs
}

func (r *CreateCollectionRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	return validateCollectionName(r.Name)
}

func (r *UpdateCollectionRequest) Validate() []FieldError {
	r.Name = strings.TrimSpace(r.Name)
	return validateCollectionName(r.Name)
}
