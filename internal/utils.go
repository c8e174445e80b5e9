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

package internal

import "math/bits"

// TrailingOnes returns the number of consecutive one-bits at the low end of v.
func TrailingOnes(v uint64) int {
	return bits.TrailingZeros64(^v)
}

// ShrinkToFit returns a copy of sl[:n] whose backing array has capacity
// exactly n, releasing the original storage.
func ShrinkToFit[T any](sl []T, n int) []T {
	out := make([]T, n)
	copy(out, sl[:n])
	return out
}
