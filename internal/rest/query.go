package rest

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery reads an optional integer query parameter. Missing values return
// fallback; malformed ones are an error.
func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidQuery
	}
	return n, nil
}

func paging(c *gin.Context) (limit, page int, err error) {
	if limit, err = intQuery(c, "limit", 0); err != nil {
		return 0, 0, err
	}
	if page, err = intQuery(c, "page", 1); err != nil {
		return 0, 0, err
	}
	return limit, page, nil
}
