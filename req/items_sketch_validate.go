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

	"github.com/cespare/xxhash/v2"
	"github.com/quantilekit/sketches-go/common"
	"github.com/quantilekit/sketches-go/internal"
)

type itemsSketchMemoryValidate[C comparable] struct {
	srcMem []byte
	serde  common.ItemSketchSerde[C]

	// first 8 bytes of preamble
	preInts   int
	serVer    int
	familyID  int
	flags     int
	numLevels uint8

	emptyFlag bool

	k uint64
	n uint64

	// one entry per level, in level order
	levelStates []uint64
	levelItems  [][]C
}

func newItemsSketchMemoryValidate[C comparable](srcMem []byte, serde common.ItemSketchSerde[C]) (*itemsSketchMemoryValidate[C], error) {
	if len(srcMem) < _DATA_START_ADR+_CHECKSUM_BYTES {
		return nil, fmt.Errorf("memory too small: %d", len(srcMem))
	}
	payloadEnd := len(srcMem) - _CHECKSUM_BYTES
	stored := binary.LittleEndian.Uint64(srcMem[payloadEnd:])
	if computed := xxhash.Sum64(srcMem[:payloadEnd]); computed != stored {
		return nil, fmt.Errorf("checksum mismatch: computed %x, stored %x", computed, stored)
	}

	preInts := getPreInts(srcMem)
	serVer := getSerVer(srcMem)
	if preInts != _PREAMBLE_INTS || serVer != _SERIAL_VERSION {
		return nil, fmt.Errorf("invalid preamble ints and serial version combo: %d, %d", preInts, serVer)
	}
	familyID := getFamilyID(srcMem)
	if familyID != internal.FamilyEnum.Req.Id {
		return nil, fmt.Errorf("source not REQ: %d", familyID)
	}
	k := getK(srcMem)
	if err := checkK(k); err != nil {
		return nil, err
	}
	n := getN(srcMem)
	if err := checkN(n, k); err != nil {
		return nil, err
	}
	numLevels := getNumLevels(srcMem)
	if numLevels == 0 {
		return nil, fmt.Errorf("sketch must have at least one level")
	}

	vlid := &itemsSketchMemoryValidate[C]{
		srcMem:    srcMem,
		serde:     serde,
		preInts:   preInts,
		serVer:    serVer,
		familyID:  familyID,
		flags:     getFlags(srcMem),
		numLevels: numLevels,
		emptyFlag: getEmptyFlag(srcMem),
		k:         k,
		n:         n,
	}
	err := vlid.validate(payloadEnd)
	if err != nil {
		return nil, err
	}
	return vlid, nil
}

func (vlid *itemsSketchMemoryValidate[C]) validate(payloadEnd int) error {
	capacity := maxBufferSize(vlid.k, vlid.n)
	vlid.levelStates = make([]uint64, vlid.numLevels)
	vlid.levelItems = make([][]C, vlid.numLevels)

	offset := _DATA_START_ADR
	retained := uint64(0)
	for lvl := uint8(0); lvl < vlid.numLevels; lvl++ {
		if offset+_LEVEL_HEADER_BYTES > payloadEnd {
			return fmt.Errorf("level %d header out of bounds", lvl)
		}
		state := binary.LittleEndian.Uint64(vlid.srcMem[offset:])
		count := binary.LittleEndian.Uint32(vlid.srcMem[offset+8:])
		offset += _LEVEL_HEADER_BYTES
		if uint64(count) > capacity {
			return fmt.Errorf("level %d holds %d items, exceeding buffer capacity %d", lvl, count, capacity)
		}
		itemBytes, err := vlid.serde.SizeOfMany(vlid.srcMem[:payloadEnd], offset, int(count))
		if err != nil {
			return err
		}
		items, err := vlid.serde.DeserializeManyFromSlice(vlid.srcMem[:payloadEnd], offset, int(count))
		if err != nil {
			return err
		}
		offset += itemBytes
		vlid.levelStates[lvl] = state
		vlid.levelItems[lvl] = items
		retained += uint64(count)
	}
	if offset != payloadEnd {
		return fmt.Errorf("sketch bytes mismatch: read %d of %d payload bytes", offset, payloadEnd)
	}
	if vlid.emptyFlag && retained != 0 {
		return fmt.Errorf("empty flag set on a sketch retaining %d items", retained)
	}
	return nil
}
