// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"reflect"
	"strings"

	"codeberg.org/oliverandrich/jobportal/internal/models"
	"codeberg.org/oliverandrich/jobportal/internal/services/auth"
	"codeberg.org/oliverandrich/jobportal/internal/templates"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so errors map onto inputs.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		return name
	})

	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return models.Role(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}

	// bcrypt reads at most 72 bytes, so the limit is on bytes, not runes.
	if err := v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= auth.MaxPasswordBytes
	}); err != nil {
		panic(err)
	}

	return v
}

type registerInput struct {
	Name     string `form:"name" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"required,pwbytes"`
	Role     string `form:"role" validate:"required,role"`
}

func (in *registerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
}

type loginInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type forgotPasswordInput struct {
	Email string `form:"email" validate:"required,email,max=254"`
}

type resetPasswordInput struct {
	Password string `form:"password" validate:"required,pwbytes"`
}

type jobInput struct {
	Title       string `form:"title" validate:"required,max=200"`
	Company     string `form:"company" validate:"required,max=200"`
	Description string `form:"description" validate:"required,max=10000"`
	Salary      string `form:"salary" validate:"max=100"`
	Location    string `form:"location" validate:"required,max=200"`
}

func (in *jobInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Description = strings.TrimSpace(in.Description)
	in.Salary = strings.TrimSpace(in.Salary)
	in.Location = strings.TrimSpace(in.Location)
}

// validateForm returns the problems per field, or nil when v is valid.
func validateForm(v any) templates.FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return templates.FieldErrors{"": "validation_invalid"}
	}

	fields := make(templates.FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = messageForTag(fe.Tag())
	}
	return fields
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "validation_required"
	case "email":
		return "validation_email"
	case "role":
		return "validation_role"
	case "max":
		return "validation_max"
	case "pwbytes":
		return "validation_password_too_long"
	default:
		return "validation_invalid"
	}
}
