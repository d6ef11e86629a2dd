package api

import (
	"strconv"
	"time"

	"pausal/service"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// parseDateRange reads the from/to query pair, defaulting to the current
// calendar year.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), 12, 31, 0, 0, 0, 0, time.UTC)

	if s := c.Query("from"); s != "" {
		d, err := time.ParseInLocation(service.DateLayout, s, time.UTC)
		if err != nil {
			BadRequest(c, "invalid from date, expected YYYY-MM-DD")
			return from, to, false
		}
		from = d
	}
	if s := c.Query("to"); s != "" {
		d, err := time.ParseInLocation(service.DateLayout, s, time.UTC)
		if err != nil {
			BadRequest(c, "invalid to date, expected YYYY-MM-DD")
			return from, to, false
		}
		to = d
	}
	return from, to, true
}

// parseYear reads the year query parameter, defaulting to the current year.
func parseYear(c *gin.Context) (int, bool) {
	s := c.Query("year")
	if s == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(s)
	if err != nil || year < 2000 || year > 2100 {
		BadRequest(c, "invalid year")
		return 0, false
	}
	return year, true
}

// parseDate reads an optional ISO date from a JSON string field.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(service.DateLayout, s, time.UTC)
}

func uintQuery(c *gin.Context, name string) *uint {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}
