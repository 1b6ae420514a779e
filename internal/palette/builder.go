package palette

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jsvensson/unipalette/internal/color"
	"github.com/jsvensson/unipalette/internal/parser"
)

type state int

const (
	stateEmpty state = iota
	stateBuilding
	stateBuilt
)

// Builder assembles a Palette one definition at a time. Color definitions
// are resolved as they are added, against whatever the palette holds at
// that moment. Function definitions are stored as written and resolved at
// each call.
type Builder struct {
	state state
	p     *Palette
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{p: newPalette()}
}

// Line parses one line of palette source and adds the definition it holds.
// Blank and comment lines are ignored. Errors are wrapped in *LineError.
func (b *Builder) Line(n int, text string) error {
	if b.state == stateBuilt {
		return ErrBuilt
	}
	item, err := parser.ParseLine(0, text)
	if err != nil {
		return &LineError{Line: n, Err: err}
	}
	if item == nil {
		return nil
	}
	if err := b.Add(item); err != nil {
		return &LineError{Line: n, Err: err}
	}
	return nil
}

// Add installs a parsed definition. A color that fails to resolve is not
// inserted. Redefining a name replaces the earlier binding.
func (b *Builder) Add(item parser.Item) error {
	if b.state == stateBuilt {
		return ErrBuilt
	}
	b.state = stateBuilding

	switch d := item.(type) {
	case *parser.ColorDef:
		c, err := b.p.Resolve(d.Expr)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", d.Name, err)
		}
		if _, exists := b.p.colors[d.Name]; !exists {
			b.p.order = append(b.p.order, d.Name)
		}
		b.p.colors[d.Name] = c
	case *parser.FuncDef:
		b.p.funcs[d.Name] = d
	default:
		return fmt.Errorf("unsupported palette item %T", item)
	}
	return nil
}

// Color returns the current binding of name while the palette is being
// built.
func (b *Builder) Color(name string) (color.Color, bool) {
	return b.p.Color(name)
}

// Finish ends construction and returns the palette. Later calls to Add or
// Line fail with ErrBuilt.
func (b *Builder) Finish() *Palette {
	b.state = stateBuilt
	return b.p
}

// Load reads palette source from r. The first failing line aborts loading;
// no partial palette is returned.
func Load(r io.Reader) (*Palette, error) {
	b := NewBuilder()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := b.Line(n, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	return b.Finish(), nil
}

// LoadFile reads and builds the palette stored at path.
func LoadFile(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening palette: %w", err)
	}
	defer f.Close()

	p, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
