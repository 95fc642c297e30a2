// Package tactic loads EPD test suites and checks the engine against them.
package tactic

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amarchess/amarchess/internal/notation"
	"github.com/amarchess/amarchess/internal/rules"
)

// ErrMalformedEPD is returned for lines that are not valid EPD records.
var ErrMalformedEPD = errors.New("malformed EPD")

//go:embed suites/*.epd
var suites embed.FS

// Puzzle is one EPD record with its expected best moves.
type Puzzle struct {
	ID        string
	Position  rules.Position
	BestMoves []rules.Move
	Line      string
}

// Accepts reports whether m is one of the puzzle's best moves.
func (p Puzzle) Accepts(m rules.Move) bool {
	for _, bm := range p.BestMoves {
		if bm == m {
			return true
		}
	}
	return false
}

// ParseEPD parses a record such as
//
//	2k3r1/5r2/8/8/8/8/8/7K b - - bm Rh7#; id "mate1.02";
func ParseEPD(line string) (Puzzle, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Puzzle{}, fmt.Errorf("%w: %q", ErrMalformedEPD, line)
	}

	pos, err := rules.FromFEN(strings.Join(fields[:4], " "))
	if err != nil {
		return Puzzle{}, fmt.Errorf("%w: %v", ErrMalformedEPD, err)
	}

	p := Puzzle{Position: pos, Line: line}
	ops := strings.Join(fields[4:], " ")
	for _, op := range strings.Split(ops, ";") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		opcode, operand, _ := strings.Cut(op, " ")
		switch opcode {
		case "bm":
			for _, san := range strings.Fields(operand) {
				m, err := notation.ParseSAN(pos, san)
				if err != nil {
					return Puzzle{}, fmt.Errorf("%w: %v", ErrMalformedEPD, err)
				}
				p.BestMoves = append(p.BestMoves, m)
			}
		case "id":
			p.ID = strings.Trim(strings.TrimSpace(operand), `"`)
		}
	}

	if len(p.BestMoves) == 0 {
		return Puzzle{}, fmt.Errorf("%w: no best move in %q", ErrMalformedEPD, line)
	}
	return p, nil
}

// Load reads puzzles from r, one per line. Blank lines and lines starting
// with '#' are skipped.
func Load(r io.Reader) ([]Puzzle, error) {
	var puzzles []Puzzle
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		p, err := ParseEPD(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("line.%d", n)
		}
		puzzles = append(puzzles, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return puzzles, nil
}

// LoadFile reads puzzles from an EPD file.
func LoadFile(path string) ([]Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadBuiltin reads one of the suites bundled with the binary, e.g. "basic".
func LoadBuiltin(name string) ([]Puzzle, error) {
	f, err := suites.Open("suites/" + name + ".epd")
	if err != nil {
		return nil, fmt.Errorf("builtin suite %q: %w", name, err)
	}
	defer f.Close()
	return Load(f)
}
