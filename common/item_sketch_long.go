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

	"github.com/twmb/murmur3"
)

type ItemSketchLongHasher struct{}
type ItemSketchLongSerDe struct{}

var ItemSketchLongComparator = func(reverseOrder bool) CompareFn[int64] {
	return ItemSketchNaturalComparator[int64](reverseOrder)
}

func (f ItemSketchLongHasher) Hash(item int64) uint64 {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(item))
	return murmur3.SeedSum64(defaultSerdeHashSeed, scratch[:])
}

func (f ItemSketchLongSerDe) SizeOf(item int64) int {
	return 8
}

func (f ItemSketchLongSerDe) SizeOfMany(mem []byte, offsetBytes int, numItems int) (int, error) {
	if numItems < 0 || !checkBounds(offsetBytes, numItems*8, len(mem)) {
		return 0, errors.New("offset out of bounds")
	}
	return numItems * 8, nil
}

func (f ItemSketchLongSerDe) SerializeOneToSlice(item int64) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(item))
}

func (f ItemSketchLongSerDe) SerializeManyToSlice(items []int64) []byte {
	if len(items) == 0 {
		return []byte{}
	}
	bytesOut := make([]byte, 0, 8*len(items))
	for _, item := range items {
		bytesOut = binary.LittleEndian.AppendUint64(bytesOut, uint64(item))
	}
	return bytesOut
}

func (f ItemSketchLongSerDe) DeserializeManyFromSlice(mem []byte, offsetBytes int, numItems int) ([]int64, error) {
	if numItems <= 0 {
		return []int64{}, nil
	}
	if !checkBounds(offsetBytes, numItems*8, len(mem)) {
		return nil, errors.New("offset out of bounds")
	}
	array := make([]int64, numItems)
	for i := range array {
		array[i] = int64(binary.LittleEndian.Uint64(mem[offsetBytes:]))
		offsetBytes += 8
	}
	return array, nil
}
