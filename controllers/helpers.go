package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ParamID reads a UUID path parameter. IDs are opaque strings; only
// presence is validated here, lookups decide existence.
func ParamID(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" is required", http.StatusBadRequest)
		return "", false
	}
	return v, true
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(c *gin.Context, name string) (*time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		RespondError(c, name+" must be YYYY-MM-DD", http.StatusBadRequest)
		return nil, false
	}
	return &t, true
}
