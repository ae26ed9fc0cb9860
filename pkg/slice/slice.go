// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice adds the generic helpers the standard [slices] package lacks:
projection, filtering, folding and set-style de-duplication.
*/
package slice

import (
	"cmp"
	"slices"
)

// Map projects every element of input through transform. A nil input yields an
// empty, non-nil slice so JSON encodes it as [].
func Map[T any, U any](input []T, transform func(T) U) []U {
	result := make([]U, 0, len(input))
	for _, v := range input {
		result = append(result, transform(v))
	}
	return result
}

// Filter returns the elements for which keep reports true, in order.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0)
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// Reduce folds input into a single value, left to right.
func Reduce[T any, U any](input []T, initial U, reducer func(accumulator U, current T) U) U {
	result := initial
	for _, v := range input {
		result = reducer(result, v)
	}
	return result
}

// Unique returns a sorted copy of input without duplicates. input is not modified.
func Unique[T cmp.Ordered](input []T) []T {
	result := slices.Clone(input)
	slices.Sort(result)
	return slices.Compact(result)
}
