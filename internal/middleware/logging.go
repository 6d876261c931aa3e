// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
)

// RequestLogger emits one structured logrus line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
		})

		if c.Writer.Status() >= 500 {
			entry.Error("Request failed")
		} else {
			entry.Info("Request processed")
		}
	}
}

// AuditLogMiddleware persists a row for every mutating request. The
// write happens off the request goroutine.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		// The body is consumed for the details column, then restored
		// for the handler.
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(requestBody))
		}

		c.Next()

		var actorID *uint
		if uid, ok := c.Get("user_id"); ok {
			if userID, ok := uid.(string); ok && userID != "" {
				var user models.User
				if err := db.Select("id").Where("user_id = ?", userID).First(&user).Error; err == nil {
					actorID = &user.ID
				}
			}
		}

		var details map[string]interface{}
		if len(requestBody) > 0 && json.Valid(requestBody) {
			json.Unmarshal(requestBody, &details)
		}

		entry := &models.AuditLog{
			UserID:       actorID,
			Action:       c.Request.Method + " " + c.Request.URL.Path,
			ResourceType: resourceTypeFromPath(c.Request.URL.Path),
			ResourceID:   resourceIDFromPath(c.Request.URL.Path),
			Details:      models.JSONB(details),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
		}

		go func() {
			if err := db.Create(entry).Error; err != nil {
				logrus.WithError(err).Error("Failed to write audit log")
			}
		}()
	}
}

// resourceTypeFromPath returns the first segment after /api.
func resourceTypeFromPath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "api" {
		return parts[1]
	}
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

// resourceIDFromPath returns the first numeric path segment.
func resourceIDFromPath(path string) string {
	for _, part := range strings.Split(strings.Trim(path, "/"), "/") {
		if _, err := strconv.ParseUint(part, 10, 64); err == nil {
			return part
		}
	}
	return ""
}
