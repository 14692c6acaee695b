// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/danielhkuo/exam-archive/models"
)

var ErrInvalidExam = errors.New("invalid exam")

// examValidate checks ExamInput and ExamPatch struct tags.
// The custom tags are registered in init().
var examValidate *validator.Validate

func init() {
	examValidate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	examValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = examValidate.RegisterValidation("career", func(fl validator.FieldLevel) bool {
		_, ok := models.FindCareer(fl.Field().String())
		return ok
	})
	_ = examValidate.RegisterValidation("cycle", func(fl validator.FieldLevel) bool {
		return slices.Contains(Cycles, fl.Field().String())
	})
	_ = examValidate.RegisterValidation("examtype", func(fl validator.FieldLevel) bool {
		return slices.Contains(ExamTypes, fl.Field().String())
	})
	_ = examValidate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return p == models.PeriodFirst || p == models.PeriodSecond
	})
	_ = examValidate.RegisterValidation("examyear", func(fl validator.FieldLevel) bool {
		y := int(fl.Field().Int())
		return y >= models.MinExamYear && y <= MaxExamYear()
	})
}

// MaxExamYear is the latest accepted year (next year)
func MaxExamYear() int {
	return time.Now().Year() + 1
}

// ValidationError lists the offending fields of an exam
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid exam: " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidExam
}

// ValidateInput checks an insert payload; expects normalised input
func ValidateInput(in models.ExamInput) error {
	return validationError(examValidate.Struct(in))
}

// ValidatePatch checks the fields a patch sets
func ValidatePatch(p models.ExamPatch) error {
	if p.Empty() {
		return &ValidationError{Fields: []string{"no fields to update"}}
	}
	return validationError(examValidate.Struct(p))
}

// ValidURL reports whether s is an absolute URL that can be opened
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidExam, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "min":
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "career":
		return field + " must be a known career"
	case "cycle":
		return field + " must be between 1 and 10"
	case "examtype":
		return field + " must be Parcial, Final or Sustitutorio"
	case "period":
		return field + " must be 1 or 2"
	case "examyear":
		return fmt.Sprintf("%s must be between %d and %d", field, models.MinExamYear, MaxExamYear())
	default:
		return field + " is invalid"
	}
}
