package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errMissingQuery = errors.New("missing query param")

func parseIntQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, errMissingQuery
	}
	return strconv.Atoi(raw)
}
