package normalization

import (
  "strings"
)

// ParseInputString trims surrounding whitespace from user input.
func ParseInputString(input string) string {
  return strings.TrimSpace(input)
}

// ParseUsername lowercases in addition to trimming so usernames compare
// case-insensitively against the unique index.
func ParseUsername(input string) string {
  return strings.ToLower(strings.TrimSpace(input))
}
