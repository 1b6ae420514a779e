// Package expand replaces color tags in template files with rendered colors.
//
// A tag has the form ~~!<flag><selector><expression>! where the optional
// flag is "a" (alpha after the channels) or "A" (alpha before them) and the
// selector is one of # (hex), ~ (linear hex), $ (CSS rgb) or ! (CSS lch).
package expand

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jsvensson/unipalette/internal/palette"
	"github.com/jsvensson/unipalette/internal/render"
)

var tagPattern = regexp.MustCompile(`~~!([aA])?([#~$!])([^!]*)!`)

// Diagnostic reports a tag that could not be expanded. The tag is replaced
// with the empty string.
type Diagnostic struct {
	File string
	Line int
	Expr string
	Err  error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d: %q: %v", d.File, d.Line, d.Expr, d.Err)
}

// Substitute expands every tag in src. name identifies src in diagnostics.
// It returns the expanded text, the number of tags found and a diagnostic
// for each tag that failed.
func Substitute(p *palette.Palette, name, src string) (string, int, []Diagnostic) {
	matches := tagPattern.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, 0, nil
	}

	var (
		b     strings.Builder
		diags []Diagnostic
		last  int
	)
	b.Grow(len(src))
	for _, m := range matches {
		b.WriteString(src[last:m[0]])
		last = m[1]

		flag := ""
		if m[2] >= 0 {
			flag = src[m[2]:m[3]]
		}
		expr := src[m[6]:m[7]]
		out, err := expandTag(p, flag, src[m[4]], expr)
		if err != nil {
			diags = append(diags, Diagnostic{
				File: name,
				Line: strings.Count(src[:m[0]], "\n") + 1,
				Expr: expr,
				Err:  err,
			})
			continue
		}
		b.WriteString(out)
	}
	b.WriteString(src[last:])
	return b.String(), len(matches), diags
}

func expandTag(p *palette.Palette, flag string, selector byte, expr string) (string, error) {
	rep, err := render.ParseRepresentation(selector)
	if err != nil {
		return "", err
	}
	alpha, err := render.AlphaFlag(flag)
	if err != nil {
		return "", err
	}
	c, err := p.Eval(expr)
	if err != nil {
		return "", err
	}
	return render.Render(c, rep, alpha), nil
}
