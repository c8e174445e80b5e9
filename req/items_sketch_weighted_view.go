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
	"sort"

	"github.com/quantilekit/sketches-go/common"
	"github.com/quantilekit/sketches-go/internal"
)

// itemsSketchWeightedView is the query side of a closed sketch: the retained
// items of every level flattened into one ascending sequence with cumulative
// weights. Equal items from different levels stay separate entries, each with
// its own weight.
type itemsSketchWeightedView[C comparable] struct {
	items       []C
	cumWeights  []float64
	totalWeight float64
	compareFn   common.CompareFn[C]
}

type weightedElement[C comparable] struct {
	item   C
	weight float64
}

func newItemsSketchWeightedView[C comparable](sketch *ItemsSketch[C]) *itemsSketchWeightedView[C] {
	numRetained := sketch.GetNumRetained()
	elements := make([]weightedElement[C], 0, numRetained)
	for _, compactor := range sketch.compactors {
		weight := compactor.weight()
		for _, item := range compactor.buffer {
			elements = append(elements, weightedElement[C]{item: item, weight: weight})
		}
	}
	// Stable, so equal items from different levels keep level order and the
	// linearisation is deterministic under a fixed coin stream.
	compareFn := sketch.compareFn
	sort.SliceStable(elements, func(a, b int) bool {
		return compareFn(elements[a].item, elements[b].item)
	})

	items := make([]C, len(elements))
	cumWeights := make([]float64, len(elements))
	for i, element := range elements {
		items[i] = element.item
		cumWeights[i] = element.weight
	}
	totalWeight := convertToCumulative(cumWeights)
	return &itemsSketchWeightedView[C]{
		items:       items,
		cumWeights:  cumWeights,
		totalWeight: totalWeight,
		compareFn:   compareFn,
	}
}

// estimateRank sums the weights of all entries strictly less than item.
func (v *itemsSketchWeightedView[C]) estimateRank(item C) float64 {
	index := internal.LowerBound(v.items, item, v.compareFn)
	if index == 0 {
		return 0
	}
	return v.cumWeights[index-1]
}

// quantiles walks the weighted sequence once. At each entry whose cumulative
// weight reaches the next i/q fraction of the total it emits that boundary;
// at most one boundary is emitted per entry.
func (v *itemsSketchWeightedView[C]) quantiles(q uint32) []ItemsSketchQuantile[C] {
	boundaries := make([]ItemsSketchQuantile[C], 0, q)
	next := uint32(1)
	for i, item := range v.items {
		if next > q {
			break
		}
		cum := v.cumWeights[i]
		if cum/v.totalWeight >= float64(next)/float64(q) {
			boundaries = append(boundaries, ItemsSketchQuantile[C]{
				Index:            next,
				Item:             item,
				CumulativeWeight: cum,
			})
			next++
		}
	}
	return boundaries
}
