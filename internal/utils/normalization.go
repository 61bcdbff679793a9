package utils

import "strings"

func NormalizeStyle(style string) string {
	return strings.ToLower(strings.TrimSpace(style))
}

func NormalizeFilename(filename string) string {
	return strings.TrimSpace(filename)
}
