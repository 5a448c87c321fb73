package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Rules is an ordered list of challenge rules, persisted as a JSON array.
type Rules []string

func (r Rules) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(r))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Rules) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*r = Rules{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("rules: unsupported source type %T", src)
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		*r = Rules{}
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	if list == nil {
		list = []string{}
	}
	*r = list
	return nil
}

// SplitRules parses the legacy pipe-delimited form ("a|b|c").
func SplitRules(s string) Rules {
	if s == "" {
		return Rules{}
	}
	return strings.Split(s, "|")
}

// JoinRules renders rules in the legacy pipe-delimited form.
func JoinRules(r Rules) string {
	return strings.Join(r, "|")
}
