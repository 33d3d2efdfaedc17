package api

import (
	"strconv"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/avelora/flightreserve/internal/service/users"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	actorKey        = "actor"
	requestIDHeader = "X-Request-ID"
)

// RequestID tags every request for log correlation, keeping an inbound id
// when the caller supplies one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// ResolveActor builds the per-request authorization context from the
// X-User-ID header. Unknown or absent ids leave the caller anonymous; the
// services decide what anonymous callers may do.
func ResolveActor(userService users.UserUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.Next()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.Next()
			return
		}

		user, err := userService.GetByID(c.Request.Context(), id)
		if err != nil {
			c.Next()
			return
		}

		c.Set(actorKey, domain.Actor{UserID: user.ID, Role: user.Role})
		c.Next()
	}
}

func actorFrom(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Actor{}
}
