// File: internal/onboarding/merge.go
package onboarding

import "github.com/lib/pq"

// Fallback-merge policy for re-submitted profile data: a field takes the new
// value only when it is present and non-empty, otherwise the stored value is
// kept. Numeric pointers are the exception: any non-nil pointer applies, so
// zero stays expressible.

func pickString(newVal, old *string) *string {
	if newVal != nil && *newVal != "" {
		return newVal
	}
	return old
}

func pickStrings(newVal []string, old pq.StringArray) pq.StringArray {
	if len(newVal) > 0 {
		return pq.StringArray(newVal)
	}
	return old
}

func pickInt(newVal, old *int) *int {
	if newVal != nil {
		return newVal
	}
	return old
}

func pickBool(newVal *bool, old bool) bool {
	if newVal != nil {
		return *newVal
	}
	return old
}
