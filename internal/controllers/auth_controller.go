package controllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"airide/internal/config"
	"airide/internal/middleware"
	"airide/internal/models"
)

type sendCodeInput struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyCodeInput struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type registerInput struct {
	Phone    string          `json:"phone" binding:"required"`
	UserType string          `json:"userType" binding:"required,oneof=rider driver"`
	Language string          `json:"language" binding:"omitempty,oneof=en am"`
	Profile  *models.Profile `json:"profile"`
}

// SendCode issues a one-time code for the phone. Any previous code for the
// same phone stops working.
func SendCode(c *gin.Context) {
	var input sendCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	phone := normalizePhone(input.Phone)
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	code := config.Settings.DemoCode
	if code == "" {
		var err error
		if code, err = randomCode(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate code"})
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash code"})
		return
	}

	vc := models.VerificationCode{
		Phone:     phone,
		CodeHash:  string(hash),
		ExpiresAt: time.Now().UTC().Add(config.Settings.CodeTTL),
	}
	err = config.GetDB().Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"code_hash", "expires_at", "created_at"}),
	}).Create(&vc).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store code: " + err.Error()})
		return
	}

	// No SMS gateway is wired; the code only reaches the log.
	logrus.WithFields(logrus.Fields{"phone": phone, "code": code}).Info("Verification code issued")
	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// VerifyCode checks a code. Existing users get their record and a token;
// unknown phones are told to register.
func VerifyCode(c *gin.Context) {
	var input verifyCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	phone := normalizePhone(input.Phone)

	var vc models.VerificationCode
	if err := config.GetDB().Where("phone = ?", phone).First(&vc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification code"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}

	if time.Now().UTC().After(vc.ExpiresAt) {
		config.GetDB().Delete(&vc)
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification code expired"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(vc.CodeHash), []byte(strings.TrimSpace(input.Code))); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification code"})
		return
	}
	if err := config.GetDB().Delete(&vc).Error; err != nil {
		logrus.WithError(err).WithField("phone", phone).Warn("Could not delete used verification code")
	}

	var user models.User
	if err := config.GetDB().Where("phone = ?", phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			token, err := middleware.GenerateVerificationToken(phone)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
				return
			}
			c.Header(middleware.TokenHeader, token)
			c.JSON(http.StatusOK, gin.H{"isNewUser": true})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}

	if !issueToken(c, user) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"isNewUser": false, "user": user})
}

// RegisterUser creates the account for a phone number. It sits behind
// RequireAuthWithRole(RolePhoneVerified): the token verify-code issued must
// name the same phone.
func RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if normalizePhone(input.Phone) != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "phone was not verified"})
		return
	}
	if input.Language == "" {
		input.Language = models.LanguageEnglish
	}

	user := models.User{
		Phone:    normalizePhone(input.Phone),
		UserType: input.UserType,
		Language: input.Language,
		Profile:  input.Profile,
	}

	var count int64
	if err := config.GetDB().Model(&models.User{}).Where("phone = ?", user.Phone).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "phone already registered"})
		return
	}

	if err := config.GetDB().Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "phone already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user: " + err.Error()})
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "user_type": user.UserType}).Info("User registered")
	if !issueToken(c, user) {
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUserByPhone looks a user up by phone number.
func GetUserByPhone(c *gin.Context) {
	var user models.User
	if err := config.GetDB().Where("phone = ?", normalizePhone(c.Param("phone"))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

// Me returns the user behind the bearer token.
func Me(c *gin.Context) {
	var user models.User
	if err := config.GetDB().Where("id = ?", c.GetString("user_id")).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error: " + err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, user)
}

func issueToken(c *gin.Context, user models.User) bool {
	token, err := middleware.GenerateToken(user.ID, user.UserType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return false
	}
	c.Header(middleware.TokenHeader, token)
	return true
}

func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
