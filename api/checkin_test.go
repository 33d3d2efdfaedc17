package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avelora/flightreserve/internal/domain"
	"github.com/avelora/flightreserve/internal/service/reservations"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func checkInRequest(t *testing.T, w *httptest.ResponseRecorder, pnr, lastName string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(reservations.CheckInInput{PNR: pnr, LastName: lastName})
	c.Request = httptest.NewRequest("POST", "/checkin", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestCheckInHandler_Success(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewCheckInHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c := checkInRequest(t, w, "ABC234", "Lovelace")

	boardingPass := "FL123-445566"
	reservation := &domain.Reservation{
		ID:             11,
		PNR:            "ABC234",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Seat:           domain.Seat{Code: "2B", Premium: true},
		Status:         domain.ReservationStatusBooked,
		CheckedIn:      true,
		BoardingPassNo: &boardingPass,
	}
	mockService.On("CheckIn", c.Request.Context(), reservations.CheckInInput{PNR: "ABC234", LastName: "Lovelace"}).
		Return(reservation, nil)

	handler.checkIn(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "FL123-445566", response["boarding_pass"])
	assert.Equal(t, "Ada Lovelace", response["passenger_name"])
}

func TestCheckInHandler_WrongLastName(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewCheckInHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c := checkInRequest(t, w, "ABC234", "Byron")

	mockService.On("CheckIn", c.Request.Context(), reservations.CheckInInput{PNR: "ABC234", LastName: "Byron"}).
		Return(nil, domain.Unauthorizedf("last name does not match the reservation"))

	handler.checkIn(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckInHandler_Repeat_ReturnsBoardingPass(t *testing.T) {
	mockService := &MockReservationUseCase{}
	handler := NewCheckInHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c := checkInRequest(t, w, "ABC234", "Lovelace")

	boardingPass := "FL123-445566"
	reservation := &domain.Reservation{
		ID:             11,
		PNR:            "ABC234",
		LastName:       "Lovelace",
		Seat:           domain.Seat{Code: "2B"},
		CheckedIn:      true,
		BoardingPassNo: &boardingPass,
	}
	mockService.On("CheckIn", c.Request.Context(), reservations.CheckInInput{PNR: "ABC234", LastName: "Lovelace"}).
		Return(reservation, domain.AlreadyDonef("passenger is already checked in"))

	handler.checkIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, false, response["success"])
	assert.Equal(t, "FL123-445566", response["boarding_pass"])
	assert.Equal(t, "2B", response["seat"])
}
