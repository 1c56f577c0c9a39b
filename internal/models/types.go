package models

import (
	"strings"

	"gorm.io/datatypes"
)

// Tags is an ordered list of labels persisted as a JSON column
// (JSON on SQLite and MySQL, JSONB on Postgres).
type Tags = datatypes.JSONSlice[string]

// NewTags trims every tag and drops blanks, keeping the caller's order.
// A nil or empty input yields an empty, non-nil list so the column always
// holds a JSON array.
func NewTags(values []string) Tags {
	tags := make(Tags, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}
