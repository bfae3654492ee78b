package portalclient

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for a blank tag or nil func.
	_ = v.RegisterValidation("studentid", func(fl validator.FieldLevel) bool {
		return isStudentID(fl.Field().String())
	})
	return v
}

func isStudentID(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) != 11 || value[2] != '-' || value[7] != '-' {
		return false
	}
	for i, r := range value {
		if i == 2 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type loginInput struct {
	StudentID string `validate:"required,studentid"`
	Password  string `validate:"required"`
}

type forgotPasswordInput struct {
	StudentID string `validate:"required,studentid"`
	Birthdate string `validate:"required"`
}

// validateInput runs the struct tags and maps the first failure onto the
// user-facing [ValidationError] taxonomy.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "StudentID":
		if fe.Tag() == "required" {
			return &ValidationError{Field: "studentId", Message: "Student ID is required"}
		}
		return &ValidationError{
			Field:   "studentId",
			Message: "Invalid Student ID format. Expected format: XX-XXXX-XXX",
		}
	case "Password":
		return &ValidationError{Field: "password", Message: "Password is required"}
	case "Birthdate":
		return &ValidationError{Field: "birthdate", Message: "Birthdate is required"}
	}
	return &ValidationError{Field: fe.Field(), Message: "invalid value"}
}
