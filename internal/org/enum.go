// File: internal/org/enum.go
package org

import "strings"

func normalizeEnum(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
