package handlers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// string -> int with a fallback when missing/unparseable
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// asID coerces a loosely-typed JSON value (number or digit string) into a
// positive integer identifier.
func asID(v any) (uint, bool) {
	switch n := v.(type) {
	case float64:
		if n > 0 && n == math.Trunc(n) && n <= math.MaxUint32 {
			return uint(n), true
		}
	case int:
		if n > 0 {
			return uint(n), true
		}
	case json.Number:
		if id, err := strconv.ParseUint(n.String(), 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	case string:
		if id, err := strconv.ParseUint(strings.TrimSpace(n), 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	}
	return 0, false
}

// asString renders a loosely-typed JSON value as its canonical string form;
// numbers lose any float formatting ("5", not "5.000000").
func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// asBool accepts JSON true and the string "true"; anything else is false.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return strings.TrimSpace(b) == "true"
	}
	return false
}

// normalizeDate truncates any date-like string to its YYYY-MM-DD prefix;
// empty input defaults to the current day.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now().Format("2006-01-02")
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return s
}
