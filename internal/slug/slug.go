// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Post titles and category names share the same canonical derivation.
package slug

import (
	"regexp"
	"strings"
)

// nonAlphanumericRun matches one or more consecutive characters that are
// neither lowercase letters nor digits. Each run becomes a single hyphen.
var nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given string: lowercase,
// non-alphanumeric runs collapsed to single hyphens, leading and trailing
// hyphens stripped. Generating from an existing slug returns it unchanged.
// Example: "Hello, World! 2024" → "hello-world-2024"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumericRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
