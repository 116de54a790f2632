package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"portfolio-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

// respondError maps a service error onto its status code and fixed detail text.
func respondError(c echo.Context, err error, notFound string) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return c.JSON(http.StatusNotFound, detail(notFound))
	case errors.Is(err, entity.ErrConflict):
		return c.JSON(http.StatusConflict, detail("Already exists"))
	case errors.Is(err, entity.ErrUnauthorized):
		return unauthorized(c, "Invalid credentials")
	default:
		return c.JSON(http.StatusInternalServerError, detail("Internal server error"))
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, detail(msg))
}

// pathID parses the :id parameter.
func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// httpErrorHandler renders router-level errors (unknown route, wrong method,
// panics recovered by middleware) in the same {"detail": ...} shape.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		logger.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, detail(msg))
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error writing error response")
	}
}
