// Package assembler drives the two-pass assembly of a single source
// file: pass one classifies every line, builds the tentative symbol
// table, and sizes each instruction; pass two, run only once the symbol
// table is final, encodes every instruction word and resolves every
// direct operand.
package assembler

import (
	"fmt"
	"strings"

	"github.com/Amitc146/Assembler/encoder"
	"github.com/Amitc146/Assembler/parser"
)

// Result is everything produced by assembling one file.
type Result struct {
	Filename         string
	BaseAddress      uint32
	InstructionWords []encoder.Word
	DataWords        []encoder.Word
	Entries          []*parser.Symbol
	Externals        []encoder.Word
	Errors           *parser.ErrorList
}

// pendingInstruction is an instruction sized during pass one, waiting for
// pass two to resolve its direct operands against the final symbol table.
type pendingInstruction struct {
	inst    *encoder.Instruction
	address uint32
}

// Assemble runs the full two-pass pipeline over source, isolated to this
// one file: a fresh symbol table, a fresh error list, nothing shared with
// any other file assembled in the same run.
func Assemble(filename, source string, baseAddress uint32) *Result {
	errors := &parser.ErrorList{}
	symbols := parser.NewSymbolTable()

	var pending []pendingInstruction
	var dataWords []encoder.Word
	var entryRequests []entryRequest

	instructionCount := uint32(0)

	for i, raw := range strings.Split(source, "\n") {
		lineNo := i + 1
		cl, ok := parser.ClassifyLine(raw, filename, lineNo, errors)
		if !ok {
			continue
		}

		switch cl.Kind {
		case parser.LineBlank, parser.LineComment:
			continue

		case parser.LineData:
			words, err := encoder.EncodeData(cl.Operands, cl.Pos)
			if err != nil {
				reportEncodingError(errors, err, parser.ErrorInvalidOperand, cl.Pos)
				continue
			}
			if cl.Label != "" {
				defineLabel(symbols, errors, cl.Label, parser.SymbolData, uint32(len(dataWords)), cl.Pos)
			}
			dataWords = append(dataWords, words...)

		case parser.LineString:
			words, err := encoder.EncodeString(cl.Operands, cl.Pos)
			if err != nil {
				reportEncodingError(errors, err, parser.ErrorInvalidString, cl.Pos)
				continue
			}
			if cl.Label != "" {
				defineLabel(symbols, errors, cl.Label, parser.SymbolData, uint32(len(dataWords)), cl.Pos)
			}
			dataWords = append(dataWords, words...)

		case parser.LineExtern:
			name := strings.TrimSpace(cl.Operands)
			if name == "" {
				errors.AddError(parser.NewError(cl.Pos, parser.ErrorSyntax, ".extern requires a symbol name"))
				continue
			}
			defineLabel(symbols, errors, name, parser.SymbolExternal, 0, cl.Pos)

		case parser.LineEntry:
			name := strings.TrimSpace(cl.Operands)
			if name == "" {
				errors.AddError(parser.NewError(cl.Pos, parser.ErrorSyntax, ".entry requires a symbol name"))
				continue
			}
			entryRequests = append(entryRequests, entryRequest{name: name, pos: cl.Pos})

		case parser.LineInstruction:
			if cl.Label != "" {
				defineLabel(symbols, errors, cl.Label, parser.SymbolCode, instructionCount, cl.Pos)
			}
			inst, err := encoder.BuildInstruction(cl)
			if err != nil {
				reportEncodingError(errors, err, parser.ErrorInvalidOperand, cl.Pos)
				continue
			}
			pending = append(pending, pendingInstruction{inst: inst, address: instructionCount})
			instructionCount += uint32(inst.WordCount())
		}
	}

	if errors.HasErrors() {
		return &Result{Filename: filename, Errors: errors}
	}

	symbols.RelocateData(instructionCount)
	symbols.Offset(baseAddress)

	for _, req := range entryRequests {
		if err := symbols.PromoteToEntry(req.name); err != nil {
			// An entry naming an undefined symbol is reported but does
			// not fail the whole file.
			errors.AddWarning(&parser.Warning{Pos: req.pos, Message: err.Error()})
		}
	}

	var instWords []encoder.Word
	for _, p := range pending {
		words, err := p.inst.Encode(symbols, baseAddress+p.address)
		if err != nil {
			reportEncodingError(errors, err, parser.ErrorUndefinedLabel, p.inst.Pos)
			continue
		}
		instWords = append(instWords, words...)
	}

	if errors.HasErrors() {
		return &Result{Filename: filename, Errors: errors}
	}

	for i := range dataWords {
		dataWords[i].Address = baseAddress + instructionCount + uint32(i)
	}

	var externals []encoder.Word
	for _, w := range instWords {
		if w.ExternalName != "" {
			externals = append(externals, w)
		}
	}

	return &Result{
		Filename:         filename,
		BaseAddress:      baseAddress,
		InstructionWords: instWords,
		DataWords:        dataWords,
		Entries:          symbols.Entries(),
		Externals:        externals,
		Errors:           errors,
	}
}

type entryRequest struct {
	name string
	pos  parser.Position
}

func defineLabel(symbols *parser.SymbolTable, errors *parser.ErrorList, name string, kind parser.SymbolKind, value uint32, pos parser.Position) {
	if err := symbols.Insert(name, kind, value, pos); err != nil {
		errors.AddError(parser.NewError(pos, parser.ErrorDuplicateLabel, err.Error()))
	}
}

// reportEncodingError records err on errors at the position carried by an
// *encoder.EncodingError, falling back to fallbackPos for any other error
// type, without double-prefixing the location the way naively wrapping
// err.Error() again would.
func reportEncodingError(errors *parser.ErrorList, err error, kind parser.ErrorKind, fallbackPos parser.Position) {
	if ee, ok := err.(*encoder.EncodingError); ok {
		msg := ee.Message
		if ee.Wrapped != nil {
			msg = fmt.Sprintf("%s: %v", ee.Message, ee.Wrapped)
		}
		errors.AddError(parser.NewError(ee.Pos, kind, msg))
		return
	}
	errors.AddError(parser.NewError(fallbackPos, kind, err.Error()))
}
