package api

import (
	"net/http"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/avelora/flightreserve/internal/service/reservations"
	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	service reservations.ReservationUseCase
}

func NewCheckInHandler(service reservations.ReservationUseCase) *CheckInHandler {
	return &CheckInHandler{service: service}
}

func (h *CheckInHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.checkIn)
}

func (h *CheckInHandler) checkIn(c *gin.Context) {
	var input reservations.CheckInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	reservation, err := h.service.CheckIn(c.Request.Context(), input)
	if err != nil {
		// A repeat check-in still reports the boarding pass that was issued.
		if domain.KindOf(err) == domain.KindAlreadyDone && reservation != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success":       false,
				"message":       err.Error(),
				"boarding_pass": reservation.BoardingPassNo,
				"seat":          reservation.Seat.Code,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Check-in successful!",
		"pnr":            reservation.PNR,
		"passenger_name": reservation.FirstName + " " + reservation.LastName,
		"seat":           reservation.Seat.Code,
		"boarding_pass":  reservation.BoardingPassNo,
	})
}
