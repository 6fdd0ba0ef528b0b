package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/marketplace/pkg/middleware/auth"
	"github.com/Skotchmaster/marketplace/services/order/internal/domain"
	"github.com/Skotchmaster/marketplace/services/order/internal/transport"
)

var statusByKind = map[string]int{
	domain.KindInvalidInput:      http.StatusBadRequest,
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindInsufficientStock: http.StatusConflict,
	domain.KindInvalidAddress:    http.StatusUnprocessableEntity,
	domain.KindInvalidState:      http.StatusConflict,
	domain.KindConflict:          http.StatusConflict,
	domain.KindInternal:          http.StatusInternalServerError,
}

// fail logs err and turns it into the error envelope. Internal details never reach the client.
func fail(l *slog.Logger, event string, err error) error {
	kind := domain.KindOf(err)
	status := statusByKind[kind]

	body := transport.ErrorBody{Kind: kind, Message: err.Error()}
	switch kind {
	case domain.KindInternal:
		body.Message = "internal error"
	case domain.KindConflict:
		body.Message = "concurrent update, retry the request"
		body.Retryable = true
	}

	var se *domain.StockError
	if errors.As(err, &se) {
		body.Details = se.Shortfalls
	}

	if status >= 500 {
		l.Error(event, "status", status, "kind", kind, "error", err)
	} else {
		l.Warn(event, "status", status, "kind", kind, "error", err)
	}
	return echo.NewHTTPError(status, transport.ErrorResponse{Error: body})
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, transport.ErrorResponse{Error: transport.ErrorBody{
		Kind:    domain.KindInvalidInput,
		Message: reason,
	}})
}

func callerID(c echo.Context) (uint, error) {
	id, ok := authmw.UserID(c)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}
