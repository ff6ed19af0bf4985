package api

import (
	"fmt"
	"net/url"
	"strings"
)

func PercentEncode(s string) string {
	s = url.QueryEscape(s)
	return strings.ReplaceAll(s, "+", "%20")
}

func sprintfPath(path string, args ...any) string {
	escaped := make([]any, 0, len(args))
	for _, arg := range args {
		if s, ok := arg.(string); ok {
			escaped = append(escaped, url.PathEscape(s))
		} else {
			escaped = append(escaped, arg)
		}
	}

	return fmt.Sprintf(path, escaped...)
}
