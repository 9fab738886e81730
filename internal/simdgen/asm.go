//go:build ignore

// This file is a generator, not a package member: it is run with `go run`
// against github.com/mmcloughlin/avo to emit group_amd64.s and the matching
// stub declarations. The checked-in group_wide.go backend is portable Go
// that produces the same match-result shape this would emit in hand-written
// SSE2; this generator is kept around as the documented path to a real
// vectorized backend, not wired into the build.
package main

import (
	. "github.com/mmcloughlin/avo/build"
	"github.com/mmcloughlin/avo/operand"
)

func main() {
	TEXT("matchByteAsm", NOSPLIT, "func(c uint8, group []byte) uint32")
	Doc("matchByteAsm returns a bitmask with one bit set per lane of group",
		"that equals c, using PCMPEQB/PMOVMSKB over a 16-byte load.")

	n := Load(Param("group").Len(), GP64())
	CMPQ(n, operand.Imm(16))
	result := GP32()
	JL(operand.LabelRef("short"))

	c := Load(Param("c"), GP32())
	ptr := Load(Param("group").Base(), GP64())

	needle, zero, haystack := XMM(), XMM(), XMM()
	PXOR(zero, zero)
	MOVD(c, needle)
	PSHUFB(zero, needle)
	MOVOU(operand.Mem{Base: ptr}, haystack)
	PCMPEQB(haystack, needle)
	PMOVMSKB(needle, result)
	Store(result, ReturnIndex(0))
	RET()

	Label("short")
	// Fewer than groupWidth bytes available (can happen for the last,
	// narrow group of a tiny table) — fall back is handled by the Go
	// caller, so just report no matches here.
	XORL(result, result)
	Store(result, ReturnIndex(0))
	RET()

	Generate()
}
