// Package fax implements CCITT T.6 (Group 4, "MMR") two-dimensional decoding
// into packed 1-bit rows where a set bit is white and a clear bit is black.
package fax

import (
	"errors"
	"fmt"
)

// faxStream walks a compressed buffer one bit at a time, MSB first.
type faxStream struct {
	src  []byte
	size int // in bits
	pos  int
}

func (s *faxStream) done() bool { return s.pos >= s.size }

// nextBit returns the next bit. Callers check done first.
func (s *faxStream) nextBit() bool {
	p := s.pos
	s.pos++
	return s.src[p/8]&(1<<(7-p%8)) != 0
}

// ErrCorrupt reports Group 4 data that does not decode to the requested rows.
var ErrCorrupt = errors.New("fax: corrupt g4 data")

// G4Decode decodes height rows of Group 4 data starting at startBitPos into
// dst, which holds height rows of pitch bytes. It returns the bit position
// where decoding stopped. Decoding stops at the first row that hits a coding
// error, a premature EOFB or the end of src; that row and the ones below it
// are not valid when an error is returned.
func G4Decode(src []byte, startBitPos, width, height, pitch int, dst []byte) (int, error) {
	if pitch <= 0 || width <= 0 || width > maxDimension || pitch*8 < width || height < 0 {
		return startBitPos, fmt.Errorf("fax: invalid g4 geometry: width %d, height %d, pitch %d", width, height, pitch)
	}
	if height > len(dst)/pitch {
		return startBitPos, fmt.Errorf("fax: destination holds %d rows, need %d", len(dst)/pitch, height)
	}

	refLine := make([]byte, pitch)
	for i := range refLine {
		refLine[i] = 0xFF
	}

	s := &faxStream{src: src, size: len(src) * 8, pos: startBitPos}
	for row := 0; row < height; row++ {
		line := dst[row*pitch : (row+1)*pitch]
		for i := range line {
			line[i] = 0xFF
		}
		if !g4DecodeRow(s, line, refLine, width) {
			return s.pos, fmt.Errorf("%w: row %d of %d, bit %d", ErrCorrupt, row, height, s.pos)
		}
		copy(refLine, line)
	}
	return s.pos, nil
}

// g4DecodeRow decodes a single coding line against refLine. It returns false
// when the row ended early on a coding error or exhausted input.
func g4DecodeRow(s *faxStream, line, refLine []byte, columns int) bool {
	a0 := -1
	a0White := true

	for {
		if s.done() {
			return false
		}

		b1, b2 := findB1B2(refLine, columns, a0, a0White)

		var delta int
		if !s.nextBit() {
			if s.done() {
				return false
			}
			bit1 := s.nextBit()
			if s.done() {
				return false
			}
			bit2 := s.nextBit()

			switch {
			case bit1:
				// VR(1) = 011, VL(1) = 010
				if bit2 {
					delta = 1
				} else {
					delta = -1
				}
			case bit2:
				// Horizontal = 001
				run1 := readRunLength(s, a0White)
				if run1 < 0 {
					return false
				}
				if a0 < 0 {
					run1++
				}
				a1 := a0 + run1
				if !a0White {
					fillBlack(line, columns, a0, a1)
				}

				run2 := readRunLength(s, !a0White)
				if run2 < 0 {
					return false
				}
				a2 := a1 + run2
				if a0White {
					fillBlack(line, columns, a1, a2)
				}

				a0 = a2
				if a0 < columns {
					continue
				}
				return true
			default:
				if s.done() {
					return false
				}
				if s.nextBit() {
					// Pass = 0001
					if !a0White {
						fillBlack(line, columns, a0, b2)
					}
					if b2 >= columns {
						return true
					}
					a0 = b2
					continue
				}

				if s.done() {
					return false
				}
				bit3 := s.nextBit()
				if s.done() {
					return false
				}
				bit4 := s.nextBit()

				switch {
				case bit3:
					// VR(2) = 000011, VL(2) = 000010
					if bit4 {
						delta = 2
					} else {
						delta = -2
					}
				case bit4:
					// VR(3) = 0000011, VL(3) = 0000010
					if s.done() {
						return false
					}
					if s.nextBit() {
						delta = 3
					} else {
						delta = -3
					}
				default:
					// Extension (0000001xxx) or EOFB.
					if s.done() {
						return false
					}
					if s.nextBit() {
						s.pos += 3
						continue
					}
					s.pos += 5
					return false
				}
			}
		}
		// V(0) = 1 leaves delta at zero.

		a1 := b1 + delta
		if !a0White {
			fillBlack(line, columns, a0, a1)
		}
		if a1 >= columns {
			return true
		}
		// Changing elements must move strictly right.
		if a0 >= a1 {
			return false
		}
		a0 = a1
		a0White = !a0White
	}
}

// readRunLength sums makeup and terminating codes for one run of the given
// colour. It returns a negative value on an invalid code.
func readRunLength(s *faxStream, white bool) int {
	table := faxBlackRunIns
	if white {
		table = faxWhiteRunIns
	}
	total := 0
	for {
		run := readRun(s, table)
		if run < 0 {
			return -1
		}
		total += run
		if run < 64 {
			return total
		}
	}
}

// readRun decodes one code from a run table laid out as, per code length,
// a count followed by (code, low, high) triples, terminated by 0xFF.
func readRun(s *faxStream, table []byte) int {
	var code uint32
	off := 0
	for {
		if s.done() {
			return -1
		}
		code <<= 1
		if s.nextBit() {
			code |= 1
		}

		count := table[off]
		if count == 0xFF {
			return -1
		}
		off++

		end := off + int(count)*3
		for ; off < end; off += 3 {
			if table[off] == byte(code) {
				return int(table[off+1]) | int(table[off+2])<<8
			}
		}
	}
}

// findB1B2 locates b1, the first changing element on the reference line to
// the right of a0 with the colour opposite to a0's, and b2, the next
// changing element after b1.
func findB1B2(refLine []byte, columns, a0 int, a0White bool) (int, int) {
	white := a0 < 0 || refLine[a0/8]&(1<<(7-a0%8)) != 0
	b1 := findBit(refLine, columns, a0+1, !white)
	if b1 >= columns {
		return columns, columns
	}
	if white == !a0White {
		b1 = findBit(refLine, columns, b1+1, white)
		white = !white
	}
	if b1 >= columns {
		return columns, columns
	}
	return b1, findBit(refLine, columns, b1+1, white)
}

// findBit returns the position of the first pixel at or after start whose
// bit equals bit, or maxPos when there is none.
func findBit(data []byte, maxPos, start int, bit bool) int {
	if start >= maxPos {
		return maxPos
	}

	// XOR so that the wanted pixels become set bits.
	var flip byte = 0xFF
	if bit {
		flip = 0x00
	}

	if off := start % 8; off != 0 {
		pos := start / 8
		if v := (data[pos] ^ flip) & (0xFF >> off); v != 0 {
			return min(pos*8+int(oneLeadPos[v]), maxPos)
		}
		start += 8 - off
	}

	maxByte := (maxPos + 7) / 8
	for pos := start / 8; pos < maxByte; pos++ {
		if v := data[pos] ^ flip; v != 0 {
			return min(pos*8+int(oneLeadPos[v]), maxPos)
		}
	}
	return maxPos
}

// fillBlack clears the bits in [start, end) clipped to columns.
func fillBlack(line []byte, columns, start, end int) {
	start = max(start, 0)
	end = min(end, columns)
	for x := start; x < end; {
		if x%8 == 0 && end-x >= 8 {
			line[x/8] = 0x00
			x += 8
			continue
		}
		line[x/8] &^= 1 << (7 - x%8)
		x++
	}
}
