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

package common

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/twmb/murmur3"
)

type ItemSketchDoubleHasher struct{}
type ItemSketchDoubleSerDe struct{}

var ItemSketchDoubleComparator = func(reverseOrder bool) CompareFn[float64] {
	return ItemSketchNaturalComparator[float64](reverseOrder)
}

func (f ItemSketchDoubleHasher) Hash(item float64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(item))
	return murmur3.SeedSum64(defaultSerdeHashSeed, scratch[:])
}

func (f ItemSketchDoubleSerDe) SizeOf(item float64) int {
	return 8
}

func (f ItemSketchDoubleSerDe) SizeOfMany(mem []byte, offsetBytes int, numItems int) (int, error) {
	if numItems < 0 || !checkBounds(offsetBytes, numItems*8, len(mem)) {
		return 0, errors.New("offset out of bounds")
	}
	return numItems * 8, nil
}

func (f ItemSketchDoubleSerDe) SerializeOneToSlice(item float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(item))
}

func (f ItemSketchDoubleSerDe) SerializeManyToSlice(items []float64) []byte {
	if len(items) == 0 {
		return []byte{}
	}
	bytesOut := make([]byte, 0, 8*len(items))
	for _, item := range items {
		bytesOut = binary.LittleEndian.AppendUint64(bytesOut, math.Float64bits(item))
	}
	return bytesOut
}

func (f ItemSketchDoubleSerDe) DeserializeManyFromSlice(mem []byte, offsetBytes int, numItems int) ([]float64, error) {
	if numItems <= 0 {
		return []float64{}, nil
	}
	if !checkBounds(offsetBytes, numItems*8, len(mem)) {
		return nil, errors.New("offset out of bounds")
	}
	array := make([]float64, numItems)
	for i := range array {
		array[i] = math.Float64frombits(binary.LittleEndian.Uint64(mem[offsetBytes:]))
		offsetBytes += 8
	}
	return array, nil
}
