package parser

// MaxLineLength is the longest source line this assembler accepts,
// matching the original program's fixed line buffer.
const MaxLineLength = 82

// MaxLabelLength is the longest legal label name.
const MaxLabelLength = 31

// Operation describes one of the sixteen machine instructions: its
// opcode and how many operands it takes.
type Operation struct {
	Mnemonic string
	Opcode   uint16
	Operands int
}

// Operations lists every instruction in opcode order.
var Operations = []Operation{
	{"mov", 0, 2},
	{"cmp", 1, 2},
	{"add", 2, 2},
	{"sub", 3, 2},
	{"not", 4, 1},
	{"clr", 5, 1},
	{"lea", 6, 2},
	{"inc", 7, 1},
	{"dec", 8, 1},
	{"jmp", 9, 1},
	{"bne", 10, 1},
	{"red", 11, 1},
	{"prn", 12, 1},
	{"jsr", 13, 1},
	{"rts", 14, 0},
	{"stop", 15, 0},
}

var operationsByName map[string]Operation

func init() {
	operationsByName = make(map[string]Operation, len(Operations))
	for _, op := range Operations {
		operationsByName[op.Mnemonic] = op
	}
}

// LookupOperation returns the operation named mnemonic, if any.
func LookupOperation(mnemonic string) (Operation, bool) {
	op, ok := operationsByName[mnemonic]
	return op, ok
}

// reservedWords is the exact 28-entry keyword set the original assembler
// refuses as label names: the sixteen mnemonics, the four directive
// stems, and the eight register names.
var reservedWords = map[string]bool{
	"data": true, "string": true, "entry": true, "extern": true,
	"mov": true, "cmp": true, "add": true, "sub": true,
	"not": true, "clr": true, "lea": true, "inc": true,
	"dec": true, "jmp": true, "bne": true, "red": true,
	"prn": true, "jsr": true, "rts": true, "stop": true,
	"r0": true, "r1": true, "r2": true, "r3": true,
	"r4": true, "r5": true, "r6": true, "r7": true,
}

// isReservedWord reports whether name is one of the assembler's reserved
// keywords and therefore illegal as a label.
func isReservedWord(name string) bool {
	return reservedWords[name]
}
