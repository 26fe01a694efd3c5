package encoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Amitc146/Assembler/parser"
)

// Operand is one parsed instruction operand: its addressing mode and the
// raw token it came from (a register name, a literal, or a symbol name).
type Operand struct {
	Mode AddressingMode
	Text string
}

// Instruction is a fully parsed instruction-line, ready to be sized
// (pass one) and later encoded (pass two) once the symbol table is
// complete.
type Instruction struct {
	Pos      parser.Position
	Mnemonic string
	Opcode   uint16
	Src, Dst *Operand
}

// BuildInstruction parses a classified instruction line into an
// Instruction. It can be called during pass one: operand addressing
// modes are determined purely lexically, without needing the symbol
// table.
func BuildInstruction(line *parser.ClassifiedLine) (*Instruction, error) {
	op, ok := parser.LookupOperation(line.Mnemonic)
	if !ok {
		return nil, NewEncodingError(line.Pos, fmt.Sprintf("unknown operation %q", line.Mnemonic))
	}

	src, dst, err := ParseOperands(op, line.Operands, line.Pos)
	if err != nil {
		return nil, err
	}

	return &Instruction{
		Pos:      line.Pos,
		Mnemonic: op.Mnemonic,
		Opcode:   op.Opcode,
		Src:      src,
		Dst:      dst,
	}, nil
}

// ParseOperands splits and classifies an instruction's operand text
// according to how many operands op expects. A one-operand instruction's
// sole operand is returned as dst; src is nil, matching the convention
// that a lone operand occupies the destination field.
func ParseOperands(op parser.Operation, text string, pos parser.Position) (src, dst *Operand, err error) {
	text = strings.TrimSpace(text)

	switch op.Operands {
	case 0:
		if text != "" {
			return nil, nil, NewEncodingError(pos, fmt.Sprintf("%s takes no operands", op.Mnemonic))
		}
		return nil, nil, nil

	case 1:
		if text == "" {
			return nil, nil, NewEncodingError(pos, fmt.Sprintf("%s requires one operand", op.Mnemonic))
		}
		if strings.Contains(text, ",") {
			return nil, nil, NewEncodingError(pos, fmt.Sprintf("%s takes exactly one operand", op.Mnemonic))
		}
		mode, err := RecognizeOperand(text)
		if err != nil {
			return nil, nil, WrapEncodingError(pos, err)
		}
		return nil, &Operand{Mode: mode, Text: text}, nil

	case 2:
		parts := strings.SplitN(text, ",", 2)
		if len(parts) != 2 {
			return nil, nil, NewEncodingError(pos, fmt.Sprintf("%s requires two operands", op.Mnemonic))
		}
		srcText := strings.TrimSpace(parts[0])
		dstText := strings.TrimSpace(parts[1])
		if srcText == "" || dstText == "" {
			return nil, nil, NewEncodingError(pos, fmt.Sprintf("%s requires two operands", op.Mnemonic))
		}
		srcMode, err := RecognizeOperand(srcText)
		if err != nil {
			return nil, nil, WrapEncodingError(pos, err)
		}
		dstMode, err := RecognizeOperand(dstText)
		if err != nil {
			return nil, nil, WrapEncodingError(pos, err)
		}
		return &Operand{Mode: srcMode, Text: srcText}, &Operand{Mode: dstMode, Text: dstText}, nil

	default:
		return nil, nil, NewEncodingError(pos, "invalid operand count")
	}
}

// OperandWordCount returns how many operand words (beyond the opcode
// word) an instruction needs: one shared word when both operands are
// register-direct, otherwise one word per present operand.
func OperandWordCount(src, dst *Operand) int {
	if src != nil && dst != nil && src.Mode == ModeRegister && dst.Mode == ModeRegister {
		return 1
	}
	count := 0
	if src != nil && src.Mode != ModeNone {
		count++
	}
	if dst != nil && dst.Mode != ModeNone {
		count++
	}
	return count
}

// WordCount returns the total number of words this instruction occupies,
// including its opcode word.
func (inst *Instruction) WordCount() int {
	return 1 + OperandWordCount(inst.Src, inst.Dst)
}

func modeOf(op *Operand) AddressingMode {
	if op == nil {
		return ModeNone
	}
	return op.Mode
}

// Encode produces the instruction's full word sequence, starting at
// address. It requires a complete symbol table: every Direct operand
// must resolve, so this can only run in pass two.
func (inst *Instruction) Encode(symbols *parser.SymbolTable, address uint32) ([]Word, error) {
	first := EncodeFirstWord(modeOf(inst.Src), modeOf(inst.Dst), inst.Opcode)
	first.Address = address
	words := []Word{first}
	next := address + 1

	bothRegisters := inst.Src != nil && inst.Dst != nil &&
		inst.Src.Mode == ModeRegister && inst.Dst.Mode == ModeRegister

	if bothRegisters {
		srcReg, _ := ParseRegister(inst.Src.Text)
		dstReg, _ := ParseRegister(inst.Dst.Text)
		w := EncodeRegisterWord(srcReg, dstReg, true, true)
		w.Address = next
		words = append(words, w)
		return words, nil
	}

	if inst.Src != nil && inst.Src.Mode != ModeNone {
		w, err := encodeOperand(inst.Src, true, symbols, inst.Pos)
		if err != nil {
			return nil, err
		}
		w.Address = next
		next++
		words = append(words, w)
	}
	if inst.Dst != nil && inst.Dst.Mode != ModeNone {
		w, err := encodeOperand(inst.Dst, false, symbols, inst.Pos)
		if err != nil {
			return nil, err
		}
		w.Address = next
		words = append(words, w)
	}

	return words, nil
}

// encodeOperand builds the operand word for a single non-shared operand.
// isSrc selects which register sub-field a lone register operand lands
// in, since the shared-word case above is handled separately.
func encodeOperand(op *Operand, isSrc bool, symbols *parser.SymbolTable, pos parser.Position) (Word, error) {
	switch op.Mode {
	case ModeRegister:
		reg, _ := ParseRegister(op.Text)
		if isSrc {
			return EncodeRegisterWord(reg, 0, true, false), nil
		}
		return EncodeRegisterWord(0, reg, false, true), nil

	case ModeImmediate:
		value, err := strconv.ParseInt(op.Text, 10, 64)
		if err != nil {
			return Word{}, NewEncodingError(pos, fmt.Sprintf("invalid immediate value %q", op.Text))
		}
		return EncodeValueWord(int32(value), Absolute), nil

	case ModeDirect:
		sym, ok := symbols.Lookup(op.Text)
		if !ok {
			return Word{}, NewEncodingError(pos, fmt.Sprintf("undefined symbol %q", op.Text))
		}
		if sym.Kind == parser.SymbolExternal {
			w := EncodeValueWord(0, External)
			w.ExternalName = op.Text
			return w, nil
		}
		return EncodeValueWord(int32(sym.Value), Relocatable), nil

	default:
		return Word{}, NewEncodingError(pos, "operand has no encodable value")
	}
}
