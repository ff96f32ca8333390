package server

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func writeJSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"error": message,
	})
}

// writeStoreError maps domain errors to a status code. Anything unknown is
// logged and reported with the fallback message.
func writeStoreError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, errGameNotFound),
		errors.Is(err, errTeamNotFound),
		errors.Is(err, errKeywordNotFound),
		errors.Is(err, errClaimNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errGameCodeTaken),
		errors.Is(err, errTeamNameTaken),
		errors.Is(err, errAlreadyClaimed),
		errors.Is(err, errGameNotRunning):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, errNotYourClaim):
		writeError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, errTeamRequired):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errPhotoUpload):
		log.Printf("storage error path=%s error=%v", c.Request.URL.Path, err)
		writeError(c, http.StatusBadGateway, errPhotoUpload.Error())
	default:
		log.Printf("request failed method=%s path=%s error=%v", c.Request.Method, c.Request.URL.Path, err)
		writeError(c, http.StatusInternalServerError, fallback)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("request method=%s path=%s status=%d duration=%s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
