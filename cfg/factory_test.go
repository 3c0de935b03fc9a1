// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cfg

import "testing"

func TestBlockFactory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count int
	}{
		{"Empty", 0},
		{"Single", 1},
		{"BlockSize", ChunkSize},
		{"BlockSizePlusOne", ChunkSize + 1},
		{"MultiplePages", 2*ChunkSize + 46},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var f factory

			for i := range tt.count {
				f.New("", i)
			}

			blocks := f.All()
			if got, want := len(blocks), tt.count; got != want {
				t.Errorf("Got %d blocks, expected %d", got, want)
			}

			for i, b := range blocks {
				if got, want := b.ID, BlockID(i); got != want {
					t.Errorf("Got ID %d for block %d, expected %d", got, i, want)
				}

				if got, want := b.Statements, i; got != want {
					t.Errorf("Got %d statements for block %d, expected %d", got, i, want)
				}

				if !f.Owns(b) {
					t.Errorf("Factory does not own block %d", i)
				}
			}
		})
	}
}

func TestFactoryOwnsForeign(t *testing.T) {
	t.Parallel()

	var f, g factory

	f.New("a", 0)
	b := g.New("a", 0)

	if f.Owns(b) {
		t.Error("Factory owns block of another factory")
	}
}
