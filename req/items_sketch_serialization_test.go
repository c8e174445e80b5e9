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
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"

	"github.com/quantilekit/sketches-go/common"
)

func TestItemsSketchSerialization_RoundTripLong(t *testing.T) {
	comparator := common.ItemSketchLongComparator(false)
	sketch, err := NewReqItemsSketchWithCoinFlipper[int64](4, 100, comparator, common.ItemSketchLongSerDe{}, newSeededCoinFlipper(21))
	assert.NoError(t, err)
	for i := int64(1); i <= 500; i++ {
		assert.NoError(t, sketch.Update(i))
	}

	bytesOut, err := sketch.ToSlice()
	assert.NoError(t, err)

	restored, err := NewReqItemsSketchFromSlice[int64](bytesOut, comparator, common.ItemSketchLongSerDe{})
	assert.NoError(t, err)
	assert.Equal(t, sketch.GetK(), restored.GetK())
	assert.Equal(t, sketch.GetN(), restored.GetN())
	assert.Equal(t, sketch.Depth(), restored.Depth())
	assert.Equal(t, sketch.GetNumRetained(), restored.GetNumRetained())
	for h, compactor := range sketch.compactors {
		assert.Equal(t, compactor.state, restored.compactors[h].state)
		assert.Equal(t, compactor.buffer, restored.compactors[h].buffer)
	}

	// The restored sketch re-serializes to identical bytes.
	restoredBytes, err := restored.ToSlice()
	assert.NoError(t, err)
	assert.Equal(t, bytesOut, restoredBytes)

	// The weighted linearisation is recomputed after reload by Close.
	assert.False(t, restored.IsClosed())
	assert.NoError(t, sketch.Close())
	assert.NoError(t, restored.Close())
	assert.Equal(t, sketch.TotalWeight(), restored.TotalWeight())
	for q := int64(0); q <= 500; q += 25 {
		assert.Equal(t, sketch.EstimateRank(q), restored.EstimateRank(q))
	}
}

func TestItemsSketchSerialization_RoundTripString(t *testing.T) {
	comparator := common.ItemSketchStringComparator(false)
	sketch, err := NewReqItemsSketchWithCoinFlipper[string](2, 8, comparator, common.ItemSketchStringSerDe{}, newSeededCoinFlipper(22))
	assert.NoError(t, err)
	for i := 0; i < 100; i++ {
		assert.NoError(t, sketch.Update(fmt.Sprintf("item_%04d", i)))
	}

	bytesOut, err := sketch.ToSlice()
	assert.NoError(t, err)
	restored, err := NewReqItemsSketchFromSlice[string](bytesOut, comparator, common.ItemSketchStringSerDe{})
	assert.NoError(t, err)
	assert.Equal(t, sketch.GetNumRetained(), restored.GetNumRetained())
	assert.Equal(t, sketch.Depth(), restored.Depth())
	for h, compactor := range sketch.compactors {
		assert.Equal(t, compactor.buffer, restored.compactors[h].buffer)
	}
}

func TestItemsSketchSerialization_RoundTripDouble(t *testing.T) {
	comparator := common.ItemSketchDoubleComparator(false)
	sketch, err := NewReqItemsSketchWithCoinFlipper[float64](4, 64, comparator, common.ItemSketchDoubleSerDe{}, newSeededCoinFlipper(23))
	assert.NoError(t, err)
	for i := 0; i < 200; i++ {
		assert.NoError(t, sketch.Update(float64(i)*0.5))
	}

	bytesOut, err := sketch.ToSlice()
	assert.NoError(t, err)
	restored, err := NewReqItemsSketchFromSlice[float64](bytesOut, comparator, common.ItemSketchDoubleSerDe{})
	assert.NoError(t, err)
	assert.NoError(t, sketch.Close())
	assert.NoError(t, restored.Close())
	assert.Equal(t, sketch.TotalWeight(), restored.TotalWeight())
	assert.Equal(t, sketch.EstimateRank(42.25), restored.EstimateRank(42.25))
}

func TestItemsSketchSerialization_Empty(t *testing.T) {
	comparator := common.ItemSketchLongComparator(false)
	sketch, err := NewReqItemsSketch[int64](16, 1024, comparator, common.ItemSketchLongSerDe{})
	assert.NoError(t, err)

	bytesOut, err := sketch.ToSlice()
	assert.NoError(t, err)
	assert.True(t, getEmptyFlag(bytesOut))

	restored, err := NewReqItemsSketchFromSlice[int64](bytesOut, comparator, common.ItemSketchLongSerDe{})
	assert.NoError(t, err)
	assert.True(t, restored.IsEmpty())
	assert.Equal(t, uint64(0), restored.Depth())
}

func TestItemsSketchSerialization_Corrupt(t *testing.T) {
	comparator := common.ItemSketchLongComparator(false)
	sketch, err := NewReqItemsSketch[int64](4, 100, comparator, common.ItemSketchLongSerDe{})
	assert.NoError(t, err)
	for i := int64(0); i < 50; i++ {
		assert.NoError(t, sketch.Update(i))
	}
	bytesOut, err := sketch.ToSlice()
	assert.NoError(t, err)

	// Too short.
	_, err = NewReqItemsSketchFromSlice[int64](bytesOut[:10], comparator, common.ItemSketchLongSerDe{})
	assert.Error(t, err)

	// Flipped payload byte fails the checksum.
	corrupt := append([]byte{}, bytesOut...)
	corrupt[_DATA_START_ADR] ^= 0xFF
	_, err = NewReqItemsSketchFromSlice[int64](corrupt, comparator, common.ItemSketchLongSerDe{})
	assert.ErrorContains(t, err, "checksum")

	// Wrong family id, with the trailer recomputed so only the family check
	// can fail.
	wrongFamily := append([]byte{}, bytesOut...)
	wrongFamily[_FAMILY_BYTE_ADR] = 7
	payloadEnd := len(wrongFamily) - _CHECKSUM_BYTES
	binary.LittleEndian.PutUint64(wrongFamily[payloadEnd:], xxhash.Sum64(wrongFamily[:payloadEnd]))
	_, err = NewReqItemsSketchFromSlice[int64](wrongFamily, comparator, common.ItemSketchLongSerDe{})
	assert.ErrorContains(t, err, "not REQ")
}

func TestItemsSketchSerialization_NoSerde(t *testing.T) {
	comparator := common.ItemSketchLongComparator(false)
	sketch, err := NewReqItemsSketch[int64](16, 1024, comparator, nil)
	assert.NoError(t, err)
	_, err = sketch.ToSlice()
	assert.Error(t, err)
	_, err = NewReqItemsSketchFromSlice[int64]([]byte{1, 2, 3}, comparator, nil)
	assert.Error(t, err)
}
