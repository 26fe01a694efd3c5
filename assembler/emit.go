package assembler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Amitc146/Assembler/config"
	"github.com/Amitc146/Assembler/encoder"
	"github.com/Amitc146/Assembler/parser"
)

// base64Alphabet is the custom 64-character alphabet the object file
// format uses to print a 12-bit word as two characters.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// encodeWord renders a 12-bit word as two base64Alphabet characters: the
// upper 6 bits, then the lower 6.
func encodeWord(bits uint16) string {
	upper := (bits >> 6) & 0x3F
	lower := bits & 0x3F
	return string([]byte{base64Alphabet[upper], base64Alphabet[lower]})
}

// WriteObject writes the `.ob` listing: a header line of instruction and
// data word counts, followed by one encoded word per line, instructions
// first.
func WriteObject(w io.Writer, instructionWords, dataWords []encoder.Word) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", len(instructionWords), len(dataWords)); err != nil {
		return err
	}
	for _, word := range instructionWords {
		if _, err := fmt.Fprintln(w, encodeWord(word.Bits)); err != nil {
			return err
		}
	}
	for _, word := range dataWords {
		if _, err := fmt.Fprintln(w, encodeWord(word.Bits)); err != nil {
			return err
		}
	}
	return nil
}

// WriteEntries writes the `.ent` listing: one line per entry symbol, name
// padded to 10 characters, a space, then its value.
func WriteEntries(w io.Writer, entries []*parser.Symbol) error {
	for _, sym := range entries {
		if _, err := fmt.Fprintf(w, "%-10s %d\n", sym.Name, sym.Value); err != nil {
			return err
		}
	}
	return nil
}

// WriteExternals writes the `.ext` listing: one line per instruction word
// referencing an external symbol, name padded to 10 characters, a space,
// then the address of that word.
func WriteExternals(w io.Writer, externals []encoder.Word) error {
	for _, word := range externals {
		if _, err := fmt.Fprintf(w, "%-10s %d\n", word.ExternalName, word.Address); err != nil {
			return err
		}
	}
	return nil
}

// AssembleFile runs the full pipeline for one base file name: reads
// basePath+".as", assembles it, and writes out the `.ob` and (when
// non-empty) `.ent`/`.ext` listings next to it or under cfg.OutputDir.
func AssembleFile(basePath string, cfg *config.Config) error {
	srcPath := basePath + ".as"
	source, err := os.ReadFile(srcPath) // #nosec G304 -- user-provided assembly file path
	if err != nil {
		return fmt.Errorf("%s: %w", srcPath, err)
	}

	filename := filepath.Base(srcPath)
	result := Assemble(filename, string(source), cfg.Assembler.BaseAddress)

	if result.Errors.HasErrors() {
		fmt.Fprint(os.Stderr, result.Errors.Error())
		return fmt.Errorf("%s: failed with %d error(s)", filename, len(result.Errors.Errors))
	}
	fmt.Fprint(os.Stderr, result.Errors.PrintWarnings())

	outDir := cfg.Assembler.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(basePath)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	name := filepath.Base(basePath)

	if err := writeListing(filepath.Join(outDir, name+".ob"), func(w io.Writer) error {
		return WriteObject(w, result.InstructionWords, result.DataWords)
	}); err != nil {
		return err
	}

	if len(result.Entries) > 0 {
		if err := writeListing(filepath.Join(outDir, name+".ent"), func(w io.Writer) error {
			return WriteEntries(w, result.Entries)
		}); err != nil {
			return err
		}
	}

	if len(result.Externals) > 0 {
		if err := writeListing(filepath.Join(outDir, name+".ext"), func(w io.Writer) error {
			return WriteExternals(w, result.Externals)
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeListing(path string, write func(io.Writer) error) error {
	f, err := os.Create(path) // #nosec G304 -- path built from user-supplied base name
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
