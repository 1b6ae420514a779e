package parser

import (
	"strconv"
	"strings"
)

// binding strength, loosest first
const (
	precMix = iota + 1
	precUnary
	precPostfix
	precAtom
)

func precedence(e Expr) int {
	switch e.(type) {
	case *Mix:
		return precMix
	case *Complement:
		return precUnary
	case *Shade, *Saturate, *WithChroma, *WithLightness, *WithAlpha:
		return precPostfix
	default:
		return precAtom
	}
}

// Print renders e in canonical source form. Parsing the result yields a
// tree equal to e apart from spans.
func Print(e Expr) string {
	var b strings.Builder
	write(&b, e)
	return b.String()
}

// PrintItem renders a palette line in canonical form.
func PrintItem(it Item) string {
	switch d := it.(type) {
	case *ColorDef:
		return d.Name + " = " + Print(d.Expr)
	case *FuncDef:
		return "fn " + d.Name + "(" + strings.Join(d.Params, ", ") + ") = " + Print(d.Body)
	}
	return ""
}

func write(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Ident:
		b.WriteString(n.Name)
	case *Named:
		b.WriteString("$" + n.Name)
	case *Literal:
		b.WriteString("L" + num(n.L) + "C" + num(n.C) + "H" + num(n.H))
	case *Shade:
		postfix(b, n.X, "li", n.Percent)
	case *Saturate:
		postfix(b, n.X, "st", n.Percent)
	case *WithChroma:
		postfix(b, n.X, "ch", n.Value)
	case *WithLightness:
		postfix(b, n.X, "li=", n.Value)
	case *WithAlpha:
		postfix(b, n.X, "a", n.Percent)
	case *Complement:
		b.WriteByte('~')
		operand(b, n.X, precedence(n.X) < precUnary)
	case *Mix:
		operand(b, n.A, precedence(n.A) < precMix)
		b.WriteString(" *" + num(n.Percent) + "* ")
		operand(b, n.B, precedence(n.B) <= precMix)
	case *Call:
		b.WriteString(n.Name + "(")
		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, arg)
		}
		b.WriteByte(')')
	}
}

func postfix(b *strings.Builder, x Expr, kw string, v float64) {
	operand(b, x, precedence(x) < precPostfix)
	b.WriteString(" " + kw + " " + num(v))
}

func operand(b *strings.Builder, e Expr, parens bool) {
	if parens {
		b.WriteByte('(')
	}
	write(b, e)
	if parens {
		b.WriteByte(')')
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
