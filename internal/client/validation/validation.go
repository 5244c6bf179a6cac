// Package validation checks user input before it reaches the backend.
// The backend stays the source of truth; these checks only catch what the
// user can fix locally.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/insider/internal/client/models"
	"github.com/dmitrijs2005/insider/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Email accepts anything non-blank that contains "@".
func Email(email string) error {
	if err := validate.Var(strings.TrimSpace(email), "required,contains=@"); err != nil {
		return common.ErrInvalidEmail
	}
	return nil
}

// Code accepts exactly six ASCII digits.
func Code(code string) error {
	if err := validate.Var(code, "len=6,number"); err != nil {
		return common.ErrInvalidCode
	}
	return nil
}

// ResourceID accepts event and investment ids (UUIDs).
func ResourceID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", common.ErrInvalidID, id)
	}
	return nil
}

// FormError lists every problem found in a form.
type FormError struct {
	Problems []string
}

func (e *FormError) Error() string {
	return strings.Join(e.Problems, ", ")
}

// ProfileForm normalizes form in place (trimming free text) and validates it.
// The returned error, if any, is a *FormError.
func ProfileForm(form *models.ProfileCompletionForm) error {
	form.FirstName = strings.TrimSpace(form.FirstName)
	form.LastName = strings.TrimSpace(form.LastName)
	form.About = strings.TrimSpace(form.About)
	form.LinkedInURL = strings.TrimSpace(form.LinkedInURL)
	form.ProfileImageURL = strings.TrimSpace(form.ProfileImageURL)
	if form.InterestIDs == nil {
		form.InterestIDs = []string{}
	}
	if form.ExpertiseIDs == nil {
		form.ExpertiseIDs = []string{}
	}
	for i := range form.ProfessionalBackground {
		bg := &form.ProfessionalBackground[i]
		bg.CompanyName = strings.TrimSpace(bg.CompanyName)
		bg.Position = strings.TrimSpace(bg.Position)
		bg.Description = strings.TrimSpace(bg.Description)
	}

	var problems []string

	err := validate.Struct(form)
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	case err != nil:
		return err
	}

	for i, bg := range form.ProfessionalBackground {
		if bg.EndYear != nil && *bg.EndYear < bg.StartYear {
			problems = append(problems, fmt.Sprintf("professional_background[%d].end_year must not be before start_year", i))
		}
	}

	if len(problems) > 0 {
		return &FormError{Problems: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "ProfileCompletionForm.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "gte", "lte":
		return field + " is out of range"
	default:
		return field + " is invalid"
	}
}
