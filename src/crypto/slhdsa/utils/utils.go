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

// go/src/crypto/slhdsa/utils/utils.go
package utils

// ToByte returns x as an n-byte big-endian string (FIPS 205 toByte).
func ToByte(x uint64, n int) []byte {
	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = byte(x)
		x >>= 8
	}
	return out
}

// Base2b splits x into outLen big-endian b-bit digits (FIPS 205 Algorithm 4).
// x must hold at least ceil(outLen*b/8) bytes; b must be at most 32.
func Base2b(x []byte, b int, outLen int) []uint32 {
	out := make([]uint32, outLen)
	in := 0
	bits := 0
	total := uint64(0)
	for i := range out {
		for bits < b {
			total = (total << 8) | uint64(x[in])
			in++
			bits += 8
		}
		bits -= b
		out[i] = uint32(total>>bits) & ((1 << b) - 1)
	}
	return out
}

// BytesToUint64 interprets up to eight big-endian bytes as a uint64.
func BytesToUint64(in []byte) uint64 {
	var out uint64
	for _, b := range in {
		out = out<<8 | uint64(b)
	}
	return out
}

// CeilDiv returns the ceiling of a/b for positive operands.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
