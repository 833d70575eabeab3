package calc

import (
	"slices"
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// parsectx holds the settings of one parse.
type parsectx struct {
	// stops lists the whitespace runes that the lexer reports as EOF.
	stops string
	// comma and semi allow an expression to end at a comma or semicolon.
	comma, semi bool
}

type stopopt parsectx

func (o stopopt) parseOption(parsectx) parsectx {
	return parsectx(o)
}

// StopOn tells the parser to end the expression at any of the given runes.
// Each must be a comma, a semicolon, or whitespace; StopOn panics otherwise.
// Whitespace only ends an expression where an operator could appear, so
// "1 +\n2" is still one expression when stopping on newlines. Commas inside
// argument lists separate arguments as usual.
//
// StopOn replaces any earlier StopOn. With no arguments, expressions run to
// the end of the input.
func StopOn(chars ...rune) ParseOption {
	var o stopopt
	var ws []rune
	for _, r := range chars {
		switch {
		case r == ',':
			o.comma = true
		case r == ';':
			o.semi = true
		case unicode.IsSpace(r):
			if !slices.Contains(ws, r) {
				ws = append(ws, r)
			}
		default:
			panic("calc: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.stops = string(ws)
	return o
}
