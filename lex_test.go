package calc

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
		errs   int
	}{
		// spaces
		{"", nil, 0},
		{" \t \r\n ", nil, 0},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 1}}, 0},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 1}}, 0},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 1}}, 0},
		{"1.", []lexToken{{text: "1.", kind: tokenNum, pos: 1}}, 0},
		{"-1", []lexToken{{text: "-", kind: tokenOp, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"1e1", []lexToken{{text: "1e1", kind: tokenNum, pos: 1}}, 0},
		{"1E1", []lexToken{{text: "1E1", kind: tokenNum, pos: 1}}, 0},
		{"1e+1", []lexToken{{text: "1e+1", kind: tokenNum, pos: 1}}, 0},
		{"1.5e-3", []lexToken{{text: "1.5e-3", kind: tokenNum, pos: 1}}, 0},
		{"0xFF", []lexToken{{text: "0xFF", kind: tokenNum, pos: 1}}, 0},
		{"0x1f", []lexToken{{text: "0x1f", kind: tokenNum, pos: 1}}, 0},
		{"0b101", []lexToken{{text: "0b101", kind: tokenNum, pos: 1}}, 0},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 1}, {text: "+", kind: tokenOp, pos: 2}, {text: "0", kind: tokenNum, pos: 3}}, 0},
		{"(1)", []lexToken{{text: "(", kind: tokenOpen, pos: 1}, {text: "1", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}, 0},
		// incomplete literals leave the rest for the next token
		{"2e", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}}, 0},
		{"2ex", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "ex", kind: tokenIdent, pos: 2}}, 0},
		{"2e+", []lexToken{{text: "2", kind: tokenNum, pos: 1}, {text: "e", kind: tokenIdent, pos: 2}, {text: "+", kind: tokenOp, pos: 3}}, 0},
		{"0x", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {text: "x", kind: tokenIdent, pos: 2}}, 0},
		{"0b2", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {text: "b", kind: tokenIdent, pos: 2}, {text: "2", kind: tokenNum, pos: 3}}, 0},
		{"0xg", []lexToken{{text: "0", kind: tokenNum, pos: 1}, {text: "xg", kind: tokenIdent, pos: 2}}, 0},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 1}}, 0},
		{"e1", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "1", kind: tokenNum, pos: 2}}, 0},
		{"π", []lexToken{{text: "π", kind: tokenIdent, pos: 1}}, 0},
		{"eπ", []lexToken{{text: "eπ", kind: tokenIdent, pos: 1}}, 0},
		{"e(", []lexToken{{text: "e", kind: tokenIdent, pos: 1}, {text: "(", kind: tokenOpen, pos: 2}}, 0},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 1}}, 0},
		{"++", []lexToken{{text: "+", kind: tokenOp, pos: 1}, {text: "+", kind: tokenOp, pos: 2}}, 0},
		{"a--b", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {text: "-", kind: tokenOp, pos: 2}, {text: "-", kind: tokenOp, pos: 3}, {text: "b", kind: tokenIdent, pos: 4}}, 0},
		{"x=3!", []lexToken{{text: "x", kind: tokenIdent, pos: 1}, {text: "=", kind: tokenOp, pos: 2}, {text: "3", kind: tokenNum, pos: 3}, {text: "!", kind: tokenOp, pos: 4}}, 0},
		// separators
		{"f(a,b);", []lexToken{
			{text: "f", kind: tokenIdent, pos: 1},
			{text: "(", kind: tokenOpen, pos: 2},
			{text: "a", kind: tokenIdent, pos: 3},
			{text: ",", kind: tokenSep, pos: 4},
			{text: "b", kind: tokenIdent, pos: 5},
			{text: ")", kind: tokenClose, pos: 6},
			{text: ";", kind: tokenSep, pos: 7},
		}, 0},
		// erroneous symbols
		{"$", []lexToken{{pos: 1}}, 1},
		{".", []lexToken{{pos: 1}}, 1},
		{"[", []lexToken{{pos: 1}}, 1},
		{"a$", []lexToken{{text: "a", kind: tokenIdent, pos: 1}, {pos: 2}}, 1},
		{"$a", []lexToken{{pos: 1}, {text: "a", kind: tokenIdent, pos: 2}}, 1},
		{"$0", []lexToken{{pos: 1}, {text: "0", kind: tokenNum, pos: 2}}, 1},
		{"$$", []lexToken{{pos: 1}, {pos: 2}}, 2},
	}

	for _, c := range cases {
		scan := lex(strings.NewReader(c.src))
		for _, want := range c.tokens {
			got, err := scan.next("")
			if err == io.EOF {
				t.Errorf("scanning %q: expected token %v but got EOF", c.src, want)
				continue
			}
			if got != want {
				t.Errorf("scanning %q: want %v, got %v", c.src, want, got)
			}
			if err != nil {
				if c.errs > 0 {
					c.errs--
					continue
				}
				t.Errorf("scanning %q: unexpected error %v", c.src, err)
			}
		}
		got, err := scan.next("")
		if err != nil || got.kind != tokenEOF {
			t.Errorf("scanning %q: want EOF token, got %v with error %v", c.src, got, err)
		}
		for got, err := scan.next(""); err != io.EOF; got, err = scan.next("") {
			t.Errorf("scanning %q: extra token %v with error: %v", c.src, got, err)
		}
		if c.errs > 0 {
			t.Errorf("scanning %q: not enough errors", c.src)
		}
	}
}

func TestLexWhitespaceEOF(t *testing.T) {
	scan := lex(strings.NewReader("1\n2"))
	tok, err := scan.next("\n")
	if err != nil || tok != (lexToken{text: "1", kind: tokenNum, pos: 1}) {
		t.Fatalf("wrong first token: %v with error %v", tok, err)
	}
	tok, err = scan.next("\n")
	if err != nil || tok.kind != tokenEOF || tok.pos != 2 {
		t.Fatalf("wrong EOF token: %v with error %v", tok, err)
	}
	if _, err := scan.next("\n"); err != io.EOF {
		t.Errorf("want io.EOF after EOF token, got %v", err)
	}
}

func TestLexError(t *testing.T) {
	scan := lex(strings.NewReader("1 + $"))
	var err error
	for err == nil {
		_, err = scan.next("")
	}
	var le *LexError
	if !errors.As(err, &le) {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
	if le.Text != "$" {
		t.Errorf("wrong error text: want %q, got %q", "$", le.Text)
	}
	if !errors.Is(err, ErrSyntax) {
		t.Errorf("%v does not match ErrSyntax", err)
	}
	if !strings.Contains(err.Error(), "$") {
		t.Errorf("error message %q does not mention the invalid rune", err.Error())
	}
}
