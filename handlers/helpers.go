package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lmarchou/BENounou/planning"
)

// shared struct-tag validator for the small DTOs
var validate = validator.New()

// string -> int with a fallback for query params
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

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeClock brings a user-supplied time to HH:MM:SS, or returns
// false if it is not a valid clock time. Empty input maps to nil.
func normalizeClock(s string) (*string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	if planning.ParseClock(s) == -1 {
		return nil, false
	}
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	return &s, true
}

func isDateYYYYMMDD(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
