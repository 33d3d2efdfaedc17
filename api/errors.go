package api

import (
	"net/http"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindAlreadyDone:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders the uniform failure envelope. Untyped errors never
// leak their message to the client.
func respondError(c *gin.Context, err error) {
	message := "Server error"
	if domain.KindOf(err) != domain.KindServer {
		message = err.Error()
	}
	c.JSON(statusFor(err), gin.H{"success": false, "message": message})
}
