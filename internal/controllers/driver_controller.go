package controllers

import (
	"encoding/binary"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"

	"airide/internal/config"
	"airide/internal/models"
)

type registerDriverInput struct {
	Name    string         `json:"name" binding:"required"`
	Phone   string         `json:"phone" binding:"required"`
	Vehicle models.Vehicle `json:"vehicle" binding:"required"`
}

// locationInput uses pointers so that a zero coordinate is still "present".
type locationInput struct {
	Lat     *float64 `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng     *float64 `json:"lng" binding:"required,gte=-180,lte=180"`
	Speed   *float64 `json:"speed" binding:"omitempty,gte=0"`
	Heading *float64 `json:"heading" binding:"omitempty,gte=0,lt=360"`
}

// RegisterDriver creates a driver profile. New drivers start offline.
func RegisterDriver(c *gin.Context) {
	var input registerDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid driver input: " + err.Error()})
		return
	}

	driver := models.Driver{
		Name:    input.Name,
		Phone:   normalizePhone(input.Phone),
		Vehicle: input.Vehicle,
		Online:  false,
	}
	if err := config.GetDB().Create(&driver).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create driver: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{"driver_id": driver.ID, "plate": driver.Vehicle.Plate}).Info("Driver registered")
	c.JSON(http.StatusCreated, driver)
}

// GetDriver fetches a single driver by ID.
func GetDriver(c *gin.Context) {
	driver, ok := findDriver(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, driver)
}

// GoOnline marks the driver as available.
func GoOnline(c *gin.Context) {
	setOnline(c, true)
}

// GoOffline marks the driver as unavailable.
func GoOffline(c *gin.Context) {
	setOnline(c, false)
}

func setOnline(c *gin.Context, online bool) {
	driver, ok := findDriver(c)
	if !ok {
		return
	}

	err := config.GetDB().Model(&driver).Updates(map[string]interface{}{
		"online":     online,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		logrus.WithError(err).WithField("driver_id", driver.ID).Error("Failed to update driver status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update driver status"})
		return
	}

	if driver, ok = findDriver(c); !ok {
		return
	}
	logrus.WithFields(logrus.Fields{"driver_id": driver.ID, "online": driver.Online}).Info("Driver status changed")
	c.JSON(http.StatusOK, driver)
}

// UpdateLocation records a position fix: it is appended to the driver's
// trail and replaces latest_location on the driver.
func UpdateLocation(c *gin.Context) {
	driver, ok := findDriver(c)
	if !ok {
		return
	}

	var input locationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location: " + err.Error()})
		return
	}

	now := time.Now().UTC()
	fix := models.LocationFix{
		Lat:       *input.Lat,
		Lng:       *input.Lng,
		Speed:     input.Speed,
		Heading:   input.Heading,
		Timestamp: now,
	}

	point, err := encodePoint(fix.Lat, fix.Lng)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location: " + err.Error()})
		return
	}

	err = config.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.LocationPoint{
			DriverID:  driver.ID,
			Point:     point,
			Speed:     fix.Speed,
			Heading:   fix.Heading,
			Timestamp: now,
		}).Error; err != nil {
			return err
		}
		driver.LatestLocation = &fix
		driver.UpdatedAt = now
		return tx.Model(&driver).Select("latest_location", "updated_at").Updates(&driver).Error
	})
	if err != nil {
		logrus.WithError(err).WithField("driver_id", driver.ID).Error("Failed to store location")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store location"})
		return
	}

	if driver, ok = findDriver(c); !ok {
		return
	}
	c.JSON(http.StatusOK, driver)
}

// GetDriverTrack returns every reported position of the driver, oldest first,
// as a GeoJSON Point (one fix) or LineString.
func GetDriverTrack(c *gin.Context) {
	driver, ok := findDriver(c)
	if !ok {
		return
	}

	var points []models.LocationPoint
	if err := config.GetDB().Where("driver_id = ?", driver.ID).Order("recorded_at asc").Find(&points).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading track: " + err.Error()})
		return
	}
	if len(points) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No location reported yet"})
		return
	}

	coords := make([]geom.Coord, 0, len(points))
	for _, p := range points {
		g, err := wkb.Unmarshal(p.Point)
		if err != nil {
			logrus.WithError(err).WithField("point_id", p.ID).Warn("Skipping undecodable location point")
			continue
		}
		if pt, ok := g.(*geom.Point); ok {
			coords = append(coords, pt.Coords())
		}
	}

	var g geom.T
	if len(coords) == 1 {
		g = geom.NewPoint(geom.XY).MustSetCoords(coords[0])
	} else {
		g = geom.NewLineString(geom.XY).MustSetCoords(coords)
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error encoding track: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", b)
}

// findDriver loads the driver named by the :id parameter, writing the error
// response itself when it can't.
func findDriver(c *gin.Context) (models.Driver, bool) {
	var driver models.Driver
	if err := config.GetDB().Where("id = ?", c.Param("id")).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		}
		return models.Driver{}, false
	}
	return driver, true
}

// encodePoint stores positions as GeoJSON-ordered (lng, lat) WKB.
func encodePoint(lat, lng float64) ([]byte, error) {
	p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{lng, lat})
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(p, binary.LittleEndian)
}
