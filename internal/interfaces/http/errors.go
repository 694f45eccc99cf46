package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/domain"
	"github.com/jhoicas/product-catalog/pkg/logger"
	"github.com/jhoicas/product-catalog/pkg/validate"
)

// Códigos de error de la API.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeDuplicate   = "DUPLICATE"
	CodeValidation  = "VALIDATION"
	CodeInvalidBody = "INVALID_BODY"
	CodeInvalidID   = "INVALID_ID"
	CodeInternal    = "INTERNAL"
)

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

// respondError traduce errores de dominio a respuestas HTTP. Lo no reconocido es un 500 y se registra.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verrs validate.Errors
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, CodeNotFound, "producto no encontrado")
	case errors.Is(err, domain.ErrDuplicate):
		return errorJSON(c, fiber.StatusBadRequest, CodeDuplicate, "ya existe un producto con ese nombre")
	case errors.As(err, &verrs):
		return errorJSON(c, fiber.StatusUnprocessableEntity, CodeValidation, verrs.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return errorJSON(c, fiber.StatusUnprocessableEntity, CodeValidation, "precio fuera de rango o campos obligatorios ausentes")
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return errorJSON(c, fiber.StatusInternalServerError, CodeInternal, "error interno")
}

// ErrorHandler para fiber.Config: rutas inexistentes, métodos no permitidos y panics recuperados.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch fe.Code {
			case fiber.StatusNotFound:
				code = CodeNotFound
			case fiber.StatusMethodNotAllowed:
				code = "METHOD_NOT_ALLOWED"
			case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
				code = CodeInvalidBody
			}
			return errorJSON(c, fe.Code, code, fe.Message)
		}
		return respondError(c, log, err)
	}
}
