/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package req

import (
	"github.com/quantilekit/sketches-go/common"
	"github.com/quantilekit/sketches-go/internal"
)

// itemsCompactor is the bounded buffer for one level of the hierarchy. Items
// accumulate until the buffer reaches maxBufferSize; the overflowing insert
// folds the largest sections of the buffer in half and hands the surviving
// subsample up to level h+1, where each survivor carries double weight.
type itemsCompactor[C comparable] struct {
	k             uint64
	n             uint64
	h             uint64
	maxBufferSize uint64
	// state is the compaction schedule counter. Its trailing-ones count picks
	// how many sections the next compaction folds: every second compaction
	// folds one section, every fourth two, every eighth three, and so on.
	state     uint64
	buffer    []C
	compareFn common.CompareFn[C]
	coin      CoinFlipper
}

func newItemsCompactor[C comparable](k uint64, n uint64, h uint64, compareFn common.CompareFn[C], coin CoinFlipper) *itemsCompactor[C] {
	return &itemsCompactor[C]{
		k:             k,
		n:             n,
		h:             h,
		maxBufferSize: maxBufferSize(k, n),
		compareFn:     compareFn,
		coin:          coin,
	}
}

// insert appends item to the buffer, compacting first when the buffer is at
// capacity. The returned slice holds the items promoted to level h+1 and is
// nil unless a compaction fired.
func (c *itemsCompactor[C]) insert(item C) []C {
	var promoted []C
	if uint64(len(c.buffer)) == c.maxBufferSize {
		promoted = c.compact()
	}
	c.buffer = append(c.buffer, item)
	return promoted
}

func (c *itemsCompactor[C]) compact() []C {
	sectionsToCompact := uint64(internal.TrailingOnes(c.state)) + 1
	elementsToCompact := sectionsToCompact * c.k
	if elementsToCompact > c.maxBufferSize {
		elementsToCompact = c.maxBufferSize
	}
	split := int(c.maxBufferSize - elementsToCompact)

	// Only the tail [split, maxBufferSize) takes part in the subsample, so a
	// partial sort of the largest elements is enough. Items below split keep
	// their relative disorder until a later compaction reaches them.
	internal.PartialSortTail(c.buffer, split, c.compareFn)

	// Walk every other position of the sorted tail, keeping either the
	// even-indexed or the odd-indexed coset. Adjacent pairs are the unit of
	// selection: one member survives into the next level, the other is
	// dropped, which is what doubles the survivor's weight.
	i := split
	if !c.coin.Flip() && split%2 == 0 {
		i = split + 1
	}
	promoted := make([]C, 0, elementsToCompact/2)
	for ; i < int(c.maxBufferSize); i += 2 {
		promoted = append(promoted, c.buffer[i])
	}

	// Truncate with a fresh allocation so the backing array shrinks back to
	// the retained size instead of pinning max capacity between compactions.
	c.buffer = internal.ShrinkToFit(c.buffer, split)
	c.state++
	return promoted
}

func (c *itemsCompactor[C]) weight() float64 {
	return float64(uint64(1) << c.h)
}
