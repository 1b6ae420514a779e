// Package format rewrites palette sources and HCL config files in canonical
// style.
package format

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/unipalette/internal/parser"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

// File formats content according to the type implied by path: HCL for
// .hcl files, palette source otherwise.
func File(path, content string) (string, error) {
	if filepath.Ext(path) == ".hcl" {
		return Config(content)
	}
	return Palette(content)
}

// Palette returns palette source in canonical form: one definition per line
// printed as "name = expr" or "fn name(a, b) = expr", comments kept with
// surrounding whitespace removed, at most one blank line in a row and a
// single trailing newline. Unparsable lines are reported as errors.
func Palette(content string) (string, error) {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if parser.IsComment(trimmed) {
			out = append(out, trimmed)
			continue
		}
		item, err := parser.ParseLine(i+1, line)
		if err != nil {
			return "", err
		}
		out = append(out, parser.PrintItem(item))
	}

	formatted := multipleBlankLines.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	formatted = strings.Trim(formatted, "\n")
	if formatted == "" {
		return "", nil
	}
	return formatted + "\n", nil
}

// Config formats HCL project files with hclwrite, collapses runs of blank
// lines and drops blank lines just inside block braces. Incomplete HCL is
// formatted on a best-effort basis and never fails.
func Config(content string) (string, error) {
	out := string(hclwrite.Format([]byte(content)))
	out = multipleBlankLines.ReplaceAllString(out, "\n\n")
	out = blankLineAfterOpenBrace.ReplaceAllString(out, "{\n")
	out = blankLineBeforeCloseBrace.ReplaceAllString(out, "\n${1}")
	return out, nil
}

// Check reports whether content is already formatted.
func Check(path, content string) (bool, error) {
	formatted, err := File(path, content)
	if err != nil {
		return false, fmt.Errorf("formatting %s: %w", path, err)
	}
	return formatted == content, nil
}
