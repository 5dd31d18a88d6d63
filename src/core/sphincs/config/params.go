// MIT License
//
// Copyright (c) 2024 sphinx-core
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package params

import (
	"fmt"

	"github.com/sphinx-core/slhdsa/src/crypto/slhdsa/parameters"
)

// SPHINCSParameters wraps one SLH-DSA parameter set for the key and signing
// backends.
type SPHINCSParameters struct {
	Params *parameters.Parameters
}

// SecurityLevel names a NIST parameter set preset.
type SecurityLevel string

const (
	SHAKE128s SecurityLevel = "SLH-DSA-SHAKE-128s"
	SHAKE128f SecurityLevel = "SLH-DSA-SHAKE-128f"
	SHAKE192s SecurityLevel = "SLH-DSA-SHAKE-192s"
	SHAKE192f SecurityLevel = "SLH-DSA-SHAKE-192f"
	SHAKE256s SecurityLevel = "SLH-DSA-SHAKE-256s"
	SHAKE256f SecurityLevel = "SLH-DSA-SHAKE-256f"
)

// NewSPHINCSParameters initializes the default parameter set,
// SLH-DSA-SHAKE-192f with deterministic signing.
func NewSPHINCSParameters() (*SPHINCSParameters, error) {
	return NewSPHINCSParametersForLevel(SHAKE192f, false)
}

// NewSPHINCSParametersForLevel initializes a named NIST parameter set.
// randomize selects randomized signing; with it off, signing the same message
// twice yields byte-identical signatures.
func NewSPHINCSParametersForLevel(level SecurityLevel, randomize bool) (*SPHINCSParameters, error) {
	var p *parameters.Parameters
	switch level {
	case SHAKE128s:
		p = parameters.MakeSLHDSASHAKE128s(randomize)
	case SHAKE128f:
		p = parameters.MakeSLHDSASHAKE128f(randomize)
	case SHAKE192s:
		p = parameters.MakeSLHDSASHAKE192s(randomize)
	case SHAKE192f:
		p = parameters.MakeSLHDSASHAKE192f(randomize)
	case SHAKE256s:
		p = parameters.MakeSLHDSASHAKE256s(randomize)
	case SHAKE256f:
		p = parameters.MakeSLHDSASHAKE256f(randomize)
	default:
		return nil, fmt.Errorf("unsupported parameter set %q", level)
	}
	return &SPHINCSParameters{Params: p}, nil
}
