package controller

import (
	"ctchen222/perfect-tic-tac-toe/internal/api/response"
	"ctchen222/perfect-tic-tac-toe/internal/api/service"
	"ctchen222/perfect-tic-tac-toe/internal/bot"
	"ctchen222/perfect-tic-tac-toe/internal/game"
	"ctchen222/perfect-tic-tac-toe/internal/repository"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// toHTTPError maps domain errors to the status they are reported with.
func toHTTPError(err error) response.Error {
	switch {
	case errors.Is(err, game.ErrInvalidBoard), errors.Is(err, bot.ErrUnknownDifficulty):
		return response.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, service.ErrGameNotFinished):
		return response.NewError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, bot.ErrGameFinished):
		return response.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrGameNotFound):
		return response.NewError(http.StatusNotFound, err.Error())
	default:
		return response.NewError(http.StatusInternalServerError, "internal server error")
	}
}

func respondError(c *gin.Context, err error) {
	httpErr := toHTTPError(err)
	if httpErr.Code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Request failed", "http.path", c.FullPath(), "error", err)
	}
	httpErr.Respond(c)
}
