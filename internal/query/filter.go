// Package query turns list request parameters into typed filters, SQL-free
// predicates and pagination arithmetic.
package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the dd/MM/yyyy layout used by date filters. Single-digit days
// and months are accepted.
const DateLayout = "2/1/2006"

// Pagination defaults.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var (
	ErrInvalidPage  = errors.New("page must be a valid number")
	ErrInvalidLimit = errors.New("limit must be a valid number")
)

// Filter is a normalized list request. Zero values mean "no constraint":
// an empty string, a nil slice or a nil pointer never filters anything out.
type Filter struct {
	Name      string
	Surname   string
	Country   []string
	Status    []string
	AgentType []string
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *int64
	MaxAmount *int64
	Page      Page
}

// Normalize builds a Filter from raw query values. Dates are interpreted in
// loc. Only page and limit can fail; every other malformed value is dropped.
func Normalize(values url.Values, loc *time.Location) (Filter, error) {
	page, err := parseCount(values.Get("page"), DefaultPage)
	if err != nil {
		return Filter{}, ErrInvalidPage
	}
	limit, err := parseCount(values.Get("limit"), DefaultLimit)
	if err != nil {
		return Filter{}, ErrInvalidLimit
	}

	f := Filter{
		Name:      values.Get("name"),
		Surname:   values.Get("surname"),
		Country:   multi(values, "country"),
		Status:    multi(values, "status"),
		AgentType: multi(values, "agentType"),
		Page:      Page{Number: page, Size: limit},
	}

	if day, ok := ParseDay(values.Get("startDate"), loc); ok {
		start := StartOfDay(day)
		f.StartDate = &start
	}
	if day, ok := ParseDay(values.Get("endDate"), loc); ok {
		end := EndOfDay(day)
		f.EndDate = &end
	}

	if n, ok := ParseAmount(values.Get("minAmount")); ok {
		f.MinAmount = &n
	}
	if n, ok := ParseAmount(values.Get("maxAmount")); ok {
		f.MaxAmount = &n
	}

	return f, nil
}

// parseCount parses a positive page or limit value. Empty and zero fall back
// to def.
func parseCount(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("not a valid count")
	}
	if n == 0 {
		return def, nil
	}
	return n, nil
}

// multi collects a repeated parameter, accepting both "key" and "key[]".
// Empty values are dropped; nil means the parameter was not given.
func multi(values url.Values, key string) []string {
	var out []string
	for _, k := range []string{key, key + "[]"} {
		for _, v := range values[k] {
			if v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// ParseDay parses a dd/MM/yyyy date at midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay returns 00:00:00.000 of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseAmount parses a whole-unit amount such as "1500" or "$1.500".
// Values that do not parse or are not positive are reported as absent.
func ParseAmount(s string) (int64, bool) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', '.', ' ':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
