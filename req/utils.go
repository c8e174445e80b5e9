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
	"errors"
	"math"
	"strconv"
)

func checkK(k uint64) error {
	if k == 0 || k%2 != 0 {
		return errors.New("K must be a positive even integer: " + strconv.FormatUint(k, 10))
	}
	return nil
}

func checkN(n uint64, k uint64) error {
	if n < k {
		return errors.New("N must be >= K: " + strconv.FormatUint(n, 10))
	}
	return nil
}

// numSections returns m, the number of k-sized sections a compactor divides
// its buffer into. Every compactor of one sketch shares the same m, derived
// from the sketch's (k, n).
func numSections(k uint64, n uint64) uint64 {
	if n <= 2*k {
		return 1
	}
	return uint64(math.Ceil(math.Log2(float64(n) / float64(k))))
}

func maxBufferSize(k uint64, n uint64) uint64 {
	return 2 * k * numSections(k, n)
}

func convertToCumulative(array []float64) float64 {
	subtotal := 0.0
	for i := range array {
		subtotal += array[i]
		array[i] = subtotal
	}
	return subtotal
}
