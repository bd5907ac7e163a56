package cache

import (
	"fmt"

	"dario.cat/mergo"
)

// MergeRecord shallow-merges the non-empty fields of partial onto dst and
// returns the result. Fields absent from the pushed payload decode to their
// zero value and are skipped, so a partial event never blanks fields it did
// not carry.
func MergeRecord[T any](dst, partial T) (T, error) {
	merged := dst
	if err := mergo.Merge(&merged, partial, mergo.WithOverride); err != nil {
		return dst, fmt.Errorf("merge record: %w", err)
	}
	return merged, nil
}

// MergeByID applies partial to the item of list whose id matches, merging in
// place and preserving its position. An unmatched partial is appended so a
// record pushed before its list refetch is not lost.
func MergeByID[T any](list []T, partial T, id func(T) string) ([]T, error) {
	target := id(partial)
	for i := range list {
		if id(list[i]) != target {
			continue
		}
		merged, err := MergeRecord(list[i], partial)
		if err != nil {
			return list, err
		}
		list[i] = merged
		return list, nil
	}
	return append(list, partial), nil
}
