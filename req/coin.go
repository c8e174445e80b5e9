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
	"math/rand"
	"time"
)

// CoinFlipper supplies the fair coin that picks the surviving coset during a
// compaction. Implementations need not be thread-safe; a sketch is
// single-threaded by contract.
type CoinFlipper interface {
	// Flip returns true or false with probability one half each,
	// independently of previous calls.
	Flip() bool
}

type randCoinFlipper struct {
	rnd *rand.Rand
}

func newRandCoinFlipper() *randCoinFlipper {
	return &randCoinFlipper{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (f *randCoinFlipper) Flip() bool {
	return f.rnd.Intn(2) == 0
}
