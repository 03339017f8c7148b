package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rawuh-in/console/internal/service"
	"github.com/Rawuh-in/console/internal/upstream"
	"github.com/Rawuh-in/console/pkg/response"
)

// HeaderStale marks a response served from an invalidated cache entry
// because the refresh failed.
const HeaderStale = "X-Stale"

// respondError translates service and backend failures into the
// console's response vocabulary. Backend validation messages pass
// through verbatim so operators see what the backend actually said.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Event not found"))
		return
	case errors.Is(err, service.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("Guest not found"))
		return
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, response.NotFound("User not found"))
		return
	case errors.Is(err, service.ErrNotCheckedIn):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeNotCheckedIn, "Guest has not checked in"))
		return
	case errors.Is(err, service.ErrAlreadyCheckedOut):
		c.JSON(http.StatusConflict, response.Error(response.ErrCodeConflict, "Guest has already checked out"))
		return
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		switch upErr.Kind {
		case upstream.KindAuth:
			c.JSON(http.StatusUnauthorized, response.SessionExpired(upErr.Message))
		case upstream.KindNotFound:
			c.JSON(http.StatusNotFound, response.NotFound(upErr.Message))
		case upstream.KindValidation:
			c.JSON(http.StatusUnprocessableEntity, response.UpstreamRejected(upErr.Message))
		case upstream.KindTransport, upstream.KindServer, upstream.KindDecode:
			c.JSON(http.StatusBadGateway, response.UpstreamUnavailable(upErr.Message))
		default:
			c.JSON(http.StatusInternalServerError, response.InternalError(upErr.Message))
		}
		return
	}

	c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
}

// respondMaybeStale writes a successful body even when the refresh
// failed, as long as a previously cached value is available. The stale
// serving is flagged through a response header.
func respondMaybeStale(c *gin.Context, data interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, response.Success(data))
		return
	}
	if data == nil {
		respondError(c, err)
		return
	}
	c.Header(HeaderStale, "true")
	c.JSON(http.StatusOK, response.Success(data))
}
