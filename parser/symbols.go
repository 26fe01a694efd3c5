package parser

import (
	"fmt"
)

// SymbolKind records what kind of statement defined a symbol, or whether
// it was only declared external. Only SymbolData symbols are shifted by
// the final instruction count once pass one finishes.
type SymbolKind int

const (
	SymbolCode SymbolKind = iota
	SymbolData
	SymbolExternal
)

// Symbol represents a single entry in a file's symbol table.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Value uint32
	Entry bool
	Pos   Position
}

// SymbolTable holds every label, extern declaration, and entry promotion
// for one source file. Entries keep their insertion order so that the
// final `.ent` listing enumerates symbols in the order they were declared,
// not in whatever order a map would iterate them.
type SymbolTable struct {
	order   []string
	symbols map[string]*Symbol
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]*Symbol),
	}
}

// Insert adds a new symbol. It fails if the name collides with a reserved
// word or with a symbol already in the table; a file with a duplicate
// label is rejected outright, matching the original assembler's
// all-or-nothing table construction.
func (st *SymbolTable) Insert(name string, kind SymbolKind, value uint32, pos Position) error {
	if isReservedWord(name) {
		return fmt.Errorf("%q is a reserved word and cannot be used as a label", name)
	}
	if existing, exists := st.symbols[name]; exists {
		return fmt.Errorf("symbol %q already defined at %s", name, existing.Pos)
	}

	st.symbols[name] = &Symbol{
		Name:  name,
		Kind:  kind,
		Value: value,
		Pos:   pos,
	}
	st.order = append(st.order, name)
	return nil
}

// Lookup looks up a symbol by name.
func (st *SymbolTable) Lookup(name string) (*Symbol, bool) {
	sym, exists := st.symbols[name]
	return sym, exists
}

// PromoteToEntry marks an existing symbol as an entry point. Unlike the
// original implementation this reports an error rather than silently
// doing nothing when the name is not defined anywhere in the file.
func (st *SymbolTable) PromoteToEntry(name string) error {
	sym, exists := st.symbols[name]
	if !exists {
		return fmt.Errorf("entry symbol %q is not defined in this file", name)
	}
	if sym.Kind == SymbolExternal {
		return fmt.Errorf("symbol %q cannot be both external and an entry point", name)
	}
	sym.Entry = true
	return nil
}

// RelocateData shifts every data symbol's value by the number of
// instruction words the file assembled to, once that count is final.
// Code and external symbols are left untouched.
func (st *SymbolTable) RelocateData(instructionCount uint32) {
	for _, name := range st.order {
		sym := st.symbols[name]
		if sym.Kind == SymbolData {
			sym.Value += instructionCount
		}
	}
}

// Offset shifts every non-external symbol's value by base. It is applied
// once, after RelocateData, to turn the running 0-based counts pass one
// builds into the absolute addresses pass two and the `.ent` listing need.
func (st *SymbolTable) Offset(base uint32) {
	for _, name := range st.order {
		sym := st.symbols[name]
		if sym.Kind != SymbolExternal {
			sym.Value += base
		}
	}
}

// All returns every symbol in insertion order.
func (st *SymbolTable) All() []*Symbol {
	result := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		result = append(result, st.symbols[name])
	}
	return result
}

// Entries returns every symbol promoted to an entry point, in insertion
// order.
func (st *SymbolTable) Entries() []*Symbol {
	var result []*Symbol
	for _, name := range st.order {
		if sym := st.symbols[name]; sym.Entry {
			result = append(result, sym)
		}
	}
	return result
}
