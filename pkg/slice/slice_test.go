// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/gamelibrary/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))

	empty := slice.Map[int, string](nil, strconv.Itoa)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFilter(t *testing.T) {
	even := func(v int) bool { return v%2 == 0 }
	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.Equal(t, []int{}, slice.Filter([]int{1, 3}, even))
}

func TestReduce(t *testing.T) {
	sum := slice.Reduce([]int{5, 3, 4}, 0, func(total, v int) int { return total + v })
	assert.Equal(t, 12, sum)
}

func TestUnique(t *testing.T) {
	input := []int64{3, 1, 3, 2, 1}
	assert.Equal(t, []int64{1, 2, 3}, slice.Unique(input))
	assert.Equal(t, []int64{3, 1, 3, 2, 1}, input, "input must not be reordered")
	assert.Empty(t, slice.Unique[int64](nil))
}
