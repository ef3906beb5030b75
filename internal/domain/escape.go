package domain

import "strings"

var htmlEscaper = strings.NewReplacer(
	`&`, "&amp;",
	`"`, "&quot;",
	`'`, "&#039;",
	`<`, "&lt;",
	`>`, "&gt;",
)

// EscapeHTML replaces the five HTML special characters with entities.
// Existing entities are escaped again.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
