package schema

import json "github.com/goccy/go-json"

// Group values are compared through their canonical JSON encoding rather
// than through interface equality, so an enum-like int, its alias type, and
// a plain literal all land on the same key. This mirrors equality over the
// group's value representation: two tags are the same group exactly when
// they encode identically.

func groupKey(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// encodeTags canonicalizes a field's group tags, deduplicating keys while
// preserving first-seen order.
func encodeTags(record, field string, tags []any) ([]string, error) {
	keys := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		key, err := groupKey(tag)
		if err != nil {
			return nil, &GroupTagError{Record: record, Field: field, Tag: tag, Err: err}
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}

// runsInGroup implements the group filter: untagged fields run under every
// group, tagged fields only under a matching one. Skipped fields contribute
// neither a pass nor a fail.
func (p *fieldProgram) runsInGroup(key string) bool {
	if len(p.groupKeys) == 0 {
		return true
	}
	for _, k := range p.groupKeys {
		if k == key {
			return true
		}
	}
	return false
}
