// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dds

package dds

import "math/bits"

const maxInt = int(^uint(0) >> 1)

// ceilDiv divides rounding up. b must be positive.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// mulInt multiplies non-negative ints and reports overflow.
func mulInt(a, b int) (int, error) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(maxInt) {
		return 0, ErrSizeOverflow
	}

	// #nosec G115 -- bounds checked above.
	return int(lo), nil
}

// intFromU32 converts a header dword to int.
func intFromU32(v uint32) (int, error) {
	if uint64(v) > uint64(maxInt) {
		return 0, ErrSizeOverflow
	}

	return int(v), nil
}
