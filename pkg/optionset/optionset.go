// Copyright (c) 2026 Rookery. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optionset provides a first-class set of option keys for multi-select
form fields (e.g. "which past conferences attended", "which miniconf
sessions").

Key Properties:

  - Decode: A slice of selected option keys becomes a presence set.
  - Encode: The set round-trips back to a sorted, deterministic slice.
  - Storage: Sets marshal as sorted JSON arrays for stable persistence.

There is no intermediate map-of-flags representation; membership is the only
concept the type exposes.
*/
package optionset

import (
	"encoding/json"
	"sort"
)

// Set is a presence set of option keys.
type Set map[string]struct{}

// Decode builds a [Set] from the selected option keys of a multi-select
// field. Empty keys are dropped; duplicates collapse.
func Decode(keys []string) Set {
	set := make(Set, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// Of is a variadic convenience constructor, mainly for tests and fixtures.
func Of(keys ...string) Set {
	return Decode(keys)
}

// Contains reports whether the option key is a member of the set.
func (s Set) Contains(key string) bool {
	_, ok := s[key]
	return ok
}

// Len returns the number of selected options.
func (s Set) Len() int {
	return len(s)
}

// Encode returns the members as a sorted slice. Sorting makes encoding
// deterministic so persisted and compared values are stable.
func (s Set) Encode() []string {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MarshalJSON encodes the set as a sorted JSON array of keys.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Encode())
}

// UnmarshalJSON decodes a JSON array of keys into the set.
func (s *Set) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*s = Decode(keys)
	return nil
}
