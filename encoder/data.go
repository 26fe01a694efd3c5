package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Amitc146/Assembler/parser"
)

// EncodeData turns a `.data` directive's operand text (a comma-separated
// list of signed integers) into data words. Values above
// LargestPossibleNumber saturate to it; values are otherwise encoded as
// plain 12-bit two's complement.
func EncodeData(operands string, pos parser.Position) ([]Word, error) {
	parts := strings.Split(operands, ",")
	if len(parts) == 0 || strings.TrimSpace(operands) == "" {
		return nil, NewEncodingError(pos, ".data requires at least one value")
	}

	words := make([]Word, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, NewEncodingError(pos, ".data contains an empty value")
		}
		value, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, NewEncodingError(pos, fmt.Sprintf("invalid integer %q in .data", part))
		}
		if value > LargestPossibleNumber {
			value = LargestPossibleNumber
		}
		words = append(words, EncodeDataWord(int32(value)))
	}
	return words, nil
}

// EncodeString turns a `.string` directive's operand text (a
// double-quoted, non-empty run of characters) into one data word per
// character plus a terminating zero word.
func EncodeString(operands string, pos parser.Position) ([]Word, error) {
	operands = strings.TrimSpace(operands)
	if len(operands) < 3 || operands[0] != '"' || operands[len(operands)-1] != '"' {
		return nil, NewEncodingError(pos, ".string operand must be a double-quoted string")
	}

	content := operands[1 : len(operands)-1]
	if content == "" {
		return nil, NewEncodingError(pos, ".string requires non-empty content")
	}

	words := make([]Word, 0, len(content)+1)
	for _, r := range content {
		words = append(words, EncodeDataWord(int32(r)))
	}
	words = append(words, EncodeDataWord(0))
	return words, nil
}
