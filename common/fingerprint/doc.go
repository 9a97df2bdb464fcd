// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fingerprint provides a generic fingerprinting framework similar in
// spirit to Go's maphash or Abseil's hashing framework, with one key
// difference: fingerprints use a fixed seed, so the same value always
// fingerprints to the same digest across process restarts.
//
// WARNING: because of the fixed seed, fingerprints must never be used as
// keys in a hash table exposed to untrusted input. An attacker who knows the
// seed can precompute colliding inputs and degrade the table to a list.
// Fingerprinting is meant for deterministic derived values (e.g. scattering
// retry times across a window), not for hash table bucketing.
//
// Custom types participate by implementing [Fingerprinter]:
//
//	type Point struct{ X, Y float64 }
//
//	func (p Point) Fingerprint(state State) State {
//		return Combine(state, p.X, p.Y)
//	}
package fingerprint
