package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/rafkix/cefr-exam-service/internal/errors"
	"github.com/rafkix/cefr-exam-service/internal/models"
)

// Validator wraps go-playground struct validation with the service's custom
// tags registered.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks struct tags and converts failures into the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
			return ve
		}
		return err
	}
	return nil
}

// Custom validation functions

func ValidateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.AllQuestionTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func ValidateSkill(fl validator.FieldLevel) bool {
	validSkills := []models.SkillType{
		models.SkillReading,
		models.SkillListening,
		models.SkillWriting,
		models.SkillSpeaking,
	}

	value := fl.Field().String()
	for _, validSkill := range validSkills {
		if string(validSkill) == value {
			return true
		}
	}
	return false
}

func ValidateCEFRLevel(fl validator.FieldLevel) bool {
	validLevels := []models.CEFRLevel{
		models.BelowA1,
		models.A1,
		models.A2,
		models.B1,
		models.B2,
		models.C1,
		models.C2,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", ValidateQuestionType)
	validate.RegisterValidation("skill", ValidateSkill)
	validate.RegisterValidation("cefr_level", ValidateCEFRLevel)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
