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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerBound(t *testing.T) {
	arr := []int{1, 3, 3, 3, 7, 9}
	assert.Equal(t, 0, LowerBound(arr, 0, lessInt))
	assert.Equal(t, 0, LowerBound(arr, 1, lessInt))
	assert.Equal(t, 1, LowerBound(arr, 2, lessInt))
	assert.Equal(t, 1, LowerBound(arr, 3, lessInt))
	assert.Equal(t, 4, LowerBound(arr, 4, lessInt))
	assert.Equal(t, 5, LowerBound(arr, 8, lessInt))
	assert.Equal(t, 6, LowerBound(arr, 10, lessInt))

	assert.Equal(t, 0, LowerBound(nil, 5, lessInt))
}
