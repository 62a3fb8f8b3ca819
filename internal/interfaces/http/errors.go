package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invorya-dashboard/internal/application/dto"
	"github.com/jhoicas/invorya-dashboard/internal/application/session"
	"github.com/jhoicas/invorya-dashboard/internal/domain"
	"github.com/jhoicas/invorya-dashboard/internal/infrastructure/gateway"
)

// writeError traduce err a status HTTP + dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	if gerr, ok := gateway.AsError(err); ok {
		msg := gerr.Message
		if msg == "" {
			msg = gerr.Error()
		}
		switch gerr.Kind {
		case gateway.KindAuthenticationExpired:
			return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: msg}
		case gateway.KindPermissionDenied:
			return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: msg}
		case gateway.KindRateLimited:
			return fiber.StatusTooManyRequests, dto.ErrorResponse{Code: "RATE_LIMITED", Message: msg}
		case gateway.KindServerFault:
			return fiber.StatusBadGateway, dto.ErrorResponse{Code: "UPSTREAM_ERROR", Message: msg}
		case gateway.KindValidationFailed:
			status := fiber.StatusUnprocessableEntity
			if gerr.Status >= 400 && gerr.Status < 500 {
				status = gerr.Status
			}
			return status, dto.ErrorResponse{Code: "VALIDATION", Message: msg}
		case gateway.KindNetworkUnavailable:
			return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "NETWORK", Message: msg}
		default:
			return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "UNRECOGNIZED", Message: msg}
		}
	}

	switch {
	case errors.Is(err, domain.ErrAuthRejected):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "AUTH_REJECTED", Message: err.Error()}
	case errors.Is(err, session.ErrSuperseded):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SUPERSEDED", Message: "otra operación de sesión más reciente está en curso"}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "sesión requerida"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
