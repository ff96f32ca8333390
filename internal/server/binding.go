package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindMessages maps struct field -> validator tag -> client-facing message.
type bindMessages map[string]map[string]string

func (m bindMessages) lookup(err error) (string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "", false
	}
	for _, verr := range verrs {
		if msg, ok := m[verr.Field()][verr.Tag()]; ok {
			return msg, true
		}
	}
	return "", false
}

func bindJSON(c *gin.Context, req any, messages bindMessages, fallback string) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	msg, ok := messages.lookup(err)
	switch {
	case ok:
	case fallback != "":
		msg = fallback
	default:
		msg = "invalid request"
	}
	writeError(c, http.StatusBadRequest, msg)
	return false
}

// bindURI treats any malformed path parameter as a missing resource.
func bindURI(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		writeError(c, http.StatusNotFound, "not found")
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid query")
		return false
	}
	return true
}
