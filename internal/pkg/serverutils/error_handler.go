package serverutils

import (
	"errors"

	"agrocalc-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates errors bubbling out of handlers into the
// response envelope. Typed calculator errors map onto client statuses; fiber
// errors keep their own status; everything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if kind, ok := apperr.KindOf(err); ok {
			return ctx.Status(statusForKind(kind)).JSON(ErrorResponse(statusForKind(kind), err.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidStartDate, apperr.KindEvaluation:
		return fiber.StatusBadRequest
	case apperr.KindEmptyResult, apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindCollaborator:
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
