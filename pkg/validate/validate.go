package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once
)

// FieldError un campo que no pasó la validación, nombrado como en el JSON.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Error mensaje legible para el campo.
func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s es requerido", e.Field)
	case "min":
		return fmt.Sprintf("%s debe tener al menos %s caracteres", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s no puede superar %s caracteres", e.Field, e.Param)
	case "gte":
		return fmt.Sprintf("%s debe ser mayor o igual a %s", e.Field, e.Param)
	case "lte":
		return fmt.Sprintf("%s debe ser menor o igual a %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s no cumple la regla %s", e.Field, e.Tag)
	}
}

// Errors conjunto de errores de validación de una estructura.
type Errors []FieldError

func (es Errors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validator devuelve la instancia compartida (thread-safe). Los campos se reportan con su nombre JSON.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Struct valida s según sus tags `validate`. Devuelve Errors si algún campo falla.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
