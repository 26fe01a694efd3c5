package encoder

import (
	"testing"

	"github.com/Amitc146/Assembler/parser"
)

func buildLine(mnemonic, operands string) *parser.ClassifiedLine {
	return &parser.ClassifiedLine{
		Pos:      parser.Position{Filename: "t.as", Line: 1},
		Kind:     parser.LineInstruction,
		Mnemonic: mnemonic,
		Operands: operands,
	}
}

func TestParseOperandsZero(t *testing.T) {
	op, _ := parser.LookupOperation("stop")
	src, dst, err := ParseOperands(op, "", parser.Position{})
	if err != nil || src != nil || dst != nil {
		t.Fatalf("got src=%v dst=%v err=%v", src, dst, err)
	}
}

func TestParseOperandsOnePutsItInDst(t *testing.T) {
	op, _ := parser.LookupOperation("inc")
	src, dst, err := ParseOperands(op, "@r2", parser.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src != nil {
		t.Fatalf("expected nil src for a one-operand instruction, got %v", src)
	}
	if dst == nil || dst.Mode != ModeRegister || dst.Text != "@r2" {
		t.Fatalf("got dst=%v", dst)
	}
}

func TestParseOperandsTwo(t *testing.T) {
	op, _ := parser.LookupOperation("mov")
	src, dst, err := ParseOperands(op, "@r3,@r5", parser.Position{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src == nil || src.Mode != ModeRegister || src.Text != "@r3" {
		t.Fatalf("got src=%v", src)
	}
	if dst == nil || dst.Mode != ModeRegister || dst.Text != "@r5" {
		t.Fatalf("got dst=%v", dst)
	}
}

func TestParseOperandsWrongCount(t *testing.T) {
	op, _ := parser.LookupOperation("mov")
	if _, _, err := ParseOperands(op, "@r3", parser.Position{}); err == nil {
		t.Fatal("expected an error for too few operands")
	}
	opStop, _ := parser.LookupOperation("stop")
	if _, _, err := ParseOperands(opStop, "@r3", parser.Position{}); err == nil {
		t.Fatal("expected an error when a zero-operand instruction is given an operand")
	}
}

func TestOperandWordCountSharedRegisterWord(t *testing.T) {
	src := &Operand{Mode: ModeRegister, Text: "@r3"}
	dst := &Operand{Mode: ModeRegister, Text: "@r5"}
	if n := OperandWordCount(src, dst); n != 1 {
		t.Fatalf("expected a single shared register word, got %d", n)
	}
}

func TestOperandWordCountSeparateWords(t *testing.T) {
	src := &Operand{Mode: ModeImmediate, Text: "5"}
	dst := &Operand{Mode: ModeDirect, Text: "LABEL"}
	if n := OperandWordCount(src, dst); n != 2 {
		t.Fatalf("expected two separate words, got %d", n)
	}
}

func TestBuildInstructionAndWordCount(t *testing.T) {
	inst, err := BuildInstruction(buildLine("mov", "@r3,@r5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inst.WordCount() != 2 {
		t.Fatalf("expected mov @r3,@r5 to occupy 2 words, got %d", inst.WordCount())
	}
}

func TestBuildInstructionUnknownMnemonic(t *testing.T) {
	if _, err := BuildInstruction(buildLine("frob", "")); err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
}

func TestInstructionEncodeMovRegisterRegister(t *testing.T) {
	inst, err := BuildInstruction(buildLine("mov", "@r3,@r5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	symbols := parser.NewSymbolTable()
	words, err := inst.Encode(symbols, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if words[0].Bits != 0b101_0000_101_00 {
		t.Errorf("first word: got %012b", words[0].Bits)
	}
	wantRegWord := uint16(3)<<7 | uint16(5)<<2
	if words[1].Bits != wantRegWord {
		t.Errorf("register word: got %012b, want %012b", words[1].Bits, wantRegWord)
	}
	if words[0].Address != 100 || words[1].Address != 101 {
		t.Errorf("unexpected addresses: %d, %d", words[0].Address, words[1].Address)
	}
}

func TestInstructionEncodeExternalOperand(t *testing.T) {
	inst, err := BuildInstruction(buildLine("jmp", "K"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	symbols := parser.NewSymbolTable()
	_ = symbols.Insert("K", parser.SymbolExternal, 0, parser.Position{})

	words, err := inst.Encode(symbols, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(words))
	}
	if EncodingClass(words[1].Bits&0b11) != External {
		t.Errorf("expected the operand word's class bits to mark External")
	}
	if words[1].ExternalName != "K" {
		t.Errorf("expected ExternalName=K, got %q", words[1].ExternalName)
	}
}

func TestInstructionEncodeUndefinedSymbol(t *testing.T) {
	inst, err := BuildInstruction(buildLine("jmp", "GHOST"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	symbols := parser.NewSymbolTable()
	if _, err := inst.Encode(symbols, 100); err == nil {
		t.Fatal("expected an error encoding a reference to an undefined symbol")
	}
}
