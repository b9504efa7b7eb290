package api

import (
	"net/http"
	"strings"
)

func valueLanguage(r *http.Request) string {
	if val := r.FormValue("lang"); val != "" {
		return val
	}

	if val := r.FormValue("language"); val != "" {
		return val
	}

	return ""
}

// valueLanguages splits tesseract style "rus+eng" or "rus,eng" lists.
func valueLanguages(r *http.Request) []string {
	return strings.FieldsFunc(valueLanguage(r), func(c rune) bool {
		return c == '+' || c == ',' || c == ' '
	})
}
