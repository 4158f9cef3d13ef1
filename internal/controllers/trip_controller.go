package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"airide/internal/config"
	"airide/internal/models"
)

type createTripInput struct {
	Fare float64 `json:"fare" binding:"required,gt=0"`
}

// CreateTrip records a completed trip for the driver and charges the
// platform service fee on it.
func CreateTrip(c *gin.Context) {
	driver, ok := findDriver(c)
	if !ok {
		return
	}

	var input createTripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip: " + err.Error()})
		return
	}

	trip := models.Trip{
		DriverID:   driver.ID,
		Fare:       round2(input.Fare),
		ServiceFee: serviceFee(input.Fare),
	}
	if err := config.GetDB().Create(&trip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create trip: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{
		"driver_id":   driver.ID,
		"trip_id":     trip.ID,
		"fare":        trip.Fare,
		"service_fee": trip.ServiceFee,
	}).Info("Trip recorded")
	c.JSON(http.StatusCreated, trip)
}

// GetEarnings sums the driver's trips created in [start, end). Both bounds
// are RFC 3339 timestamps in the query string.
func GetEarnings(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be an RFC 3339 timestamp"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be an RFC 3339 timestamp"})
		return
	}
	start, end = start.UTC(), end.UTC()
	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be after start"})
		return
	}

	driver, ok := findDriver(c)
	if !ok {
		return
	}

	var trips []models.Trip
	if err := config.GetDB().
		Where("driver_id = ? AND created_at >= ? AND created_at < ?", driver.ID, start, end).
		Order("created_at asc").
		Find(&trips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading trips: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, summarize(driver.ID, start, end, trips))
}

func summarize(driverID string, start, end time.Time, trips []models.Trip) models.EarningsSummary {
	s := models.EarningsSummary{
		DriverID:  driverID,
		Start:     start,
		End:       end,
		TripCount: len(trips),
		Trips:     trips,
	}
	if s.Trips == nil {
		s.Trips = []models.Trip{}
	}
	for _, t := range trips {
		s.TotalFares += t.Fare
		s.TotalServiceFees += t.ServiceFee
	}
	s.TotalFares = round2(s.TotalFares)
	s.TotalServiceFees = round2(s.TotalServiceFees)
	s.NetAmount = round2(s.TotalFares - s.TotalServiceFees)
	return s
}

func serviceFee(fare float64) float64 {
	return round2(fare * config.Settings.ServiceFeeRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
