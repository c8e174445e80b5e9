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

// Package req is an implementation of a streaming quantiles sketch whose rank
// error is proportional to the true rank of the queried item (relative error),
// rather than uniform over the whole distribution.
//
// Reference: https://arxiv.org/abs/2004.01668 "Relative Error Streaming Quantiles"
//
// The sketch keeps a hierarchy of bounded buffers (compactors). A compactor
// that overflows partially sorts its largest sections, promotes every other
// element to the next level with doubled weight, and discards the rest. The
// number of sections folded per overflow follows a binary-odometer schedule,
// which is what yields the relative-error guarantee.
package req

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/quantilekit/sketches-go/common"
	"github.com/quantilekit/sketches-go/internal"
)

// ItemsSketch summarises a stream of comparable items using space
// O(k * log(n/k) * depth). K is the section size and must be even; larger K
// gives smaller relative error. N is an upper-bound hint for the stream
// length; inserting more than n items is legal.
//
// A sketch accepts Update calls until Close is invoked, which freezes the
// hierarchy into a sorted weighted sequence. Only queries are valid after
// Close.
type ItemsSketch[C comparable] struct {
	k uint64
	n uint64
	// h is the highest level currently allocated. Levels are dense:
	// compactors[i] sits at level i and its items carry weight 2^i.
	h          uint64
	compactors []*itemsCompactor[C]
	closed     bool
	weighted   *itemsSketchWeightedView[C]
	compareFn  common.CompareFn[C]
	serde      common.ItemSketchSerde[C]
	coin       CoinFlipper
}

// ItemsSketchQuantile is one equi-weight boundary produced by Quantiles: the
// Index-th of q boundaries, the item at that boundary and the cumulative
// weight up to and including it.
type ItemsSketchQuantile[C comparable] struct {
	Index            uint32
	Item             C
	CumulativeWeight float64
}

// NewReqItemsSketch creates a new ItemsSketch with the given section size k
// (positive and even) and stream length hint n (>= k). The coin source is
// seeded from the wall clock.
func NewReqItemsSketch[C comparable](k uint64, n uint64, compareFn common.CompareFn[C], serde common.ItemSketchSerde[C]) (*ItemsSketch[C], error) {
	return NewReqItemsSketchWithCoinFlipper[C](k, n, compareFn, serde, newRandCoinFlipper())
}

// NewReqItemsSketchWithCoinFlipper creates a new ItemsSketch with an injected
// coin source. Substituting a deterministic flipper makes runs reproducible.
func NewReqItemsSketchWithCoinFlipper[C comparable](k uint64, n uint64, compareFn common.CompareFn[C], serde common.ItemSketchSerde[C], coin CoinFlipper) (*ItemsSketch[C], error) {
	if err := checkK(k); err != nil {
		return nil, err
	}
	if err := checkN(n, k); err != nil {
		return nil, err
	}
	if compareFn == nil {
		return nil, fmt.Errorf("no compare function provided")
	}
	if coin == nil {
		return nil, fmt.Errorf("no coin flipper provided")
	}
	s := &ItemsSketch[C]{
		k:         k,
		n:         n,
		compareFn: compareFn,
		serde:     serde,
		coin:      coin,
	}
	s.compactors = []*itemsCompactor[C]{newItemsCompactor[C](k, n, 0, compareFn, coin)}
	return s, nil
}

// NewReqItemsSketchFromSlice rebuilds a sketch from the given byte slice
// (serialized sketch). The rebuilt sketch is open: call Close before
// querying, which recomputes the weighted linearisation.
func NewReqItemsSketchFromSlice[C comparable](sl []byte, compareFn common.CompareFn[C], serde common.ItemSketchSerde[C]) (*ItemsSketch[C], error) {
	if serde == nil {
		return nil, fmt.Errorf("no SerDe provided")
	}
	if compareFn == nil {
		return nil, fmt.Errorf("no compare function provided")
	}
	memVal, err := newItemsSketchMemoryValidate[C](sl, serde)
	if err != nil {
		return nil, err
	}
	s, err := NewReqItemsSketch[C](memVal.k, memVal.n, compareFn, serde)
	if err != nil {
		return nil, err
	}
	s.compactors = s.compactors[:0]
	for lvl := uint64(0); lvl < uint64(memVal.numLevels); lvl++ {
		compactor := newItemsCompactor[C](memVal.k, memVal.n, lvl, compareFn, s.coin)
		compactor.state = memVal.levelStates[lvl]
		compactor.buffer = memVal.levelItems[lvl]
		s.compactors = append(s.compactors, compactor)
	}
	s.h = uint64(memVal.numLevels) - 1
	return s, nil
}

// Update ingests one item at the base level. It returns an error once the
// sketch has been closed.
func (s *ItemsSketch[C]) Update(item C) error {
	if s.closed {
		return fmt.Errorf("sketch is closed")
	}
	return s.insert(item, 0)
}

// insert routes item to the compactor at level h, allocating the level first
// if h is one past the top, and recursively reinserts whatever that compactor
// promotes. A promotion generated here is fully settled, including any
// cascade it triggers, before insert returns.
func (s *ItemsSketch[C]) insert(item C, h uint64) error {
	if h > s.h {
		if h != s.h+1 {
			return fmt.Errorf("level %d would leave a gap: highest level is %d", h, s.h)
		}
		s.compactors = append(s.compactors, newItemsCompactor[C](s.k, s.n, h, s.compareFn, s.coin))
		s.h = h
	}
	for _, promoted := range s.compactors[h].insert(item) {
		if err := s.insert(promoted, h+1); err != nil {
			return err
		}
	}
	return nil
}

// Close freezes the sketch and builds the weighted linearisation every query
// reads from. Closing twice is an error.
func (s *ItemsSketch[C]) Close() error {
	if s.closed {
		return fmt.Errorf("sketch is already closed")
	}
	if uint64(len(s.compactors)) != s.h+1 {
		return fmt.Errorf("compactor hierarchy is corrupt: %d levels for highest level %d", len(s.compactors), s.h)
	}
	s.weighted = newItemsSketchWeightedView[C](s)
	s.closed = true
	return nil
}

// EstimateRank returns the estimated weighted count of inserted items
// strictly less than item. Items equal to the query are excluded. Before
// Close it returns 0.
func (s *ItemsSketch[C]) EstimateRank(item C) float64 {
	if !s.closed {
		return 0
	}
	return s.weighted.estimateRank(item)
}

// Quantiles returns up to q boundary points that partition the weighted
// items into approximately equi-weight buckets. q must be at least 2. Before
// Close it returns an empty slice.
func (s *ItemsSketch[C]) Quantiles(q uint32) ([]ItemsSketchQuantile[C], error) {
	if q < 2 {
		return nil, fmt.Errorf("q must be >= 2: %d", q)
	}
	if !s.closed {
		return []ItemsSketchQuantile[C]{}, nil
	}
	return s.weighted.quantiles(q), nil
}

// Depth returns the highest level currently allocated. A sketch that never
// overflowed its base compactor has depth 0.
func (s *ItemsSketch[C]) Depth() uint64 {
	return s.h
}

// TotalWeight returns the sum of the weights of all retained items, which
// equals the number of items inserted. Before Close it returns 0.
func (s *ItemsSketch[C]) TotalWeight() float64 {
	if !s.closed {
		return 0
	}
	return s.weighted.totalWeight
}

// GetK returns the configured section size.
func (s *ItemsSketch[C]) GetK() uint64 {
	return s.k
}

// GetN returns the configured stream length hint, not the number of items
// actually inserted.
func (s *ItemsSketch[C]) GetN() uint64 {
	return s.n
}

// GetNumRetained returns the number of items currently held across all
// levels.
func (s *ItemsSketch[C]) GetNumRetained() uint64 {
	retained := uint64(0)
	for _, compactor := range s.compactors {
		retained += uint64(len(compactor.buffer))
	}
	return retained
}

// IsEmpty returns true if the sketch retains no items.
func (s *ItemsSketch[C]) IsEmpty() bool {
	return s.GetNumRetained() == 0
}

// IsClosed returns true once Close has run.
func (s *ItemsSketch[C]) IsClosed() bool {
	return s.closed
}

// ToSlice returns the serialized byte array of this sketch: the preamble,
// one (state, count, items) block per level, and an xxhash64 trailer over
// everything before it.
func (s *ItemsSketch[C]) ToSlice() ([]byte, error) {
	if s.serde == nil {
		return nil, fmt.Errorf("no SerDe provided")
	}
	numLevels := len(s.compactors)
	if numLevels > 255 {
		return nil, fmt.Errorf("too many levels to serialize: %d", numLevels)
	}
	levelBytes := make([][]byte, numLevels)
	totalBytes := _DATA_START_ADR
	for i, compactor := range s.compactors {
		levelBytes[i] = s.serde.SerializeManyToSlice(compactor.buffer)
		totalBytes += _LEVEL_HEADER_BYTES + len(levelBytes[i])
	}
	totalBytes += _CHECKSUM_BYTES

	bytesOut := make([]byte, totalBytes)
	bytesOut[_PREAMBLE_INTS_BYTE_ADR] = _PREAMBLE_INTS
	bytesOut[_SER_VER_BYTE_ADR] = _SERIAL_VERSION
	bytesOut[_FAMILY_BYTE_ADR] = byte(internal.FamilyEnum.Req.Id)
	flags := byte(0)
	if s.IsEmpty() {
		flags |= _EMPTY_BIT_MASK
	}
	bytesOut[_FLAGS_BYTE_ADR] = flags
	bytesOut[_NUM_LEVELS_BYTE_ADR] = byte(numLevels)
	binary.LittleEndian.PutUint64(bytesOut[_K_LONG_ADR:], s.k)
	binary.LittleEndian.PutUint64(bytesOut[_N_LONG_ADR:], s.n)

	offset := _DATA_START_ADR
	for i, compactor := range s.compactors {
		binary.LittleEndian.PutUint64(bytesOut[offset:], compactor.state)
		binary.LittleEndian.PutUint32(bytesOut[offset+8:], uint32(len(compactor.buffer)))
		offset += _LEVEL_HEADER_BYTES
		copy(bytesOut[offset:], levelBytes[i])
		offset += len(levelBytes[i])
	}
	binary.LittleEndian.PutUint64(bytesOut[offset:], xxhash.Sum64(bytesOut[:offset]))
	return bytesOut, nil
}
