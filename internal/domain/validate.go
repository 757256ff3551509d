package domain

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// accountCodePattern limits codes to letters, digits, and hyphens. The
// builtin alphanum tag rejects hyphens, so codes get their own rule.
var accountCodePattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("account_code", func(fl validator.FieldLevel) bool {
		return accountCodePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// CreateAccountRequest carries the caller-supplied fields for a new account.
type CreateAccountRequest struct {
	Code         string          `json:"code" validate:"required,min=3,max=10,account_code"`
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Category     AccountCategory `json:"category" validate:"required"`
	Description  *string         `json:"description,omitempty" validate:"omitnil,max=500"`
	DisplayOrder *int32          `json:"display_order,omitempty"`
}

// Validate checks the structural rules. Called at the boundary before any
// repository operation.
func (r CreateAccountRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("invalid account category: %q", r.Category)
	}
	return nil
}

// UpdateAccountRequest carries a partial update. Nil fields leave the
// corresponding account field unchanged; there is no way to clear a field.
// omitnil rather than omitempty: a present-but-empty name must still fail
// the length check.
type UpdateAccountRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitnil,min=1,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitnil,max=500"`
	DisplayOrder *int32  `json:"display_order,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// Validate checks the structural rules on the fields that are present.
func (r UpdateAccountRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return validationMessage(err)
	}
	return nil
}

// validationMessage turns the first field error into a caller-facing message.
func validationMessage(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "code":
		switch fe.Tag() {
		case "required":
			return errors.New("code is required")
		case "account_code":
			return errors.New("code may only contain letters, digits, and hyphens")
		default:
			return errors.New("code must be 3-10 characters")
		}
	case "name":
		if fe.Tag() == "required" {
			return errors.New("name is required")
		}
		return errors.New("name must be 1-100 characters")
	case "category":
		return errors.New("category is required")
	case "description":
		return errors.New("description must be at most 500 characters")
	}
	return fmt.Errorf("%s is invalid", fe.Field())
}
