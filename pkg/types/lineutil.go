package types

import "unicode/utf8"

// ComputeLineColumn computes line and column numbers from a byte offset in content.
// Lines and columns are 1-indexed (first line is 1, first column is 1).
func ComputeLineColumn(content []byte, byteOffset int) (line, column int) {
	line = 1
	column = 1
	for i := 0; i < byteOffset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// ComputeOffset is the inverse of ComputeLineColumn. It returns the byte
// offset of the 1-indexed line:column position. Columns past the end of a
// line clamp to the line's newline; lines past the end clamp to len(content).
func ComputeOffset(content []byte, line, column int) int {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	offset := 0
	for l := 1; l < line; l++ {
		for offset < len(content) && content[offset] != '\n' {
			offset++
		}
		if offset >= len(content) {
			return len(content)
		}
		offset++
	}
	for c := 1; c < column && offset < len(content) && content[offset] != '\n'; c++ {
		offset++
	}
	return offset
}

// RuneByteOffsets maps rune indices to byte offsets in s. The returned slice
// has one entry per rune plus a final entry equal to len(s), so a rune index
// equal to the rune count maps to the end of the string. Returns nil for
// pure-ASCII input, where rune and byte indices coincide.
func RuneByteOffsets(s string) []int {
	if utf8.RuneCountInString(s) == len(s) {
		return nil
	}
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// ByteOffset converts a rune index to a byte offset using a table built by
// RuneByteOffsets. A nil table means the identity mapping.
func ByteOffset(table []int, runeIndex int) int {
	if table == nil {
		return runeIndex
	}
	if runeIndex < 0 {
		return 0
	}
	if runeIndex >= len(table) {
		return table[len(table)-1]
	}
	return table[runeIndex]
}
