package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal, hexadecimal, or binary integer, or a decimal
	// float.
	tokenNum
	// tokenIdent is a variable, constant, or function name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is a function arguments separator , or an expression
	// terminator ;.
	tokenSep
)

var tokenKindNames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/%^!="

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var operstrs = byteidcs(Operators)

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
	// held is runes read past the end of a number literal that turned out
	// not to belong to it, most recent last. A RuneScanner only guarantees a
	// single unread, but backing out of "2e+" needs three.
	held []rune
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calc: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune and updates the lexer's position info.
func (l *lexer) readRune() (rune, error) {
	if n := len(l.held); n > 0 {
		r := l.held[n-1]
		l.held = l.held[:n-1]
		l.rune++
		return r, nil
	}
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune returns r to the input so that it is the next rune read.
func (l *lexer) unreadRune(r rune) {
	l.held = append(l.held, r)
	l.rune--
}

// peekRune reads a rune and immediately unreads it. ok is false at EOF.
func (l *lexer) peekRune() (r rune, ok bool, err error) {
	r, err = l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	l.unreadRune(r)
	return r, true, nil
}

// next scans the next token from the input. The first time EOF is encountered
// before any non-whitespace characters, the result is an EOF token with a nil
// error. Subsequent times, if the EOF token is not pushed, the result is an
// empty token with io.EOF. Whitespace runes in wseof are lexed as EOF.
func (l *lexer) next(wseof string) (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			if strings.ContainsRune(wseof, r) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			tok.pos++
			continue
		case '0' <= r && r <= '9':
			l.unreadRune(r)
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case unicode.IsLetter(r):
			l.unreadRune(r)
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenIdent
			return tok, nil
		case r == ',':
			tok.text = ","
			tok.kind = tokenSep
			return tok, nil
		case r == ';':
			tok.text = ";"
			tok.kind = tokenSep
			return tok, nil
		case r == '(':
			tok.text = "("
			tok.kind = tokenOpen
			return tok, nil
		case r == ')':
			tok.text = ")"
			tok.kind = tokenClose
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = operstrs[k]
				tok.kind = tokenOp
				return tok, nil
			}
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error("")
		}
	}
}

// scanNum scans the longest numeric literal at the current position. The
// first rune is known to be a decimal digit. Anything that would make an
// incomplete literal, like an exponent marker with no digits or a 0x prefix
// with no hex digits, is left for the next token.
func (l *lexer) scanNum() error {
	r, err := l.readRune()
	if err != nil {
		return err
	}
	l.buf.WriteRune(r)
	if r == '0' {
		ok, err := l.scanPrefixed()
		if err != nil || ok {
			return err
		}
	}
	if err := l.scanDigits(isDigit); err != nil {
		return err
	}
	r, ok, err := l.peekRune()
	if err != nil {
		return err
	}
	if ok && r == '.' {
		l.readRune()
		l.buf.WriteRune('.')
		if err := l.scanDigits(isDigit); err != nil {
			return err
		}
	}
	return l.scanExponent()
}

// scanPrefixed scans the remainder of a 0x or 0b literal after the leading 0
// has been written. If the prefix isn't followed by a digit of its base, the
// prefix letter is unread and the result is false.
func (l *lexer) scanPrefixed() (bool, error) {
	p, ok, err := l.peekRune()
	if err != nil || !ok {
		return false, err
	}
	var digit func(rune) bool
	switch p {
	case 'x':
		digit = isHexDigit
	case 'b':
		digit = isBinDigit
	default:
		return false, nil
	}
	l.readRune()
	d, ok, err := l.peekRune()
	if err != nil {
		return false, err
	}
	if !ok || !digit(d) {
		l.unreadRune(p)
		return false, nil
	}
	l.buf.WriteRune(p)
	return true, l.scanDigits(digit)
}

// scanExponent scans an optional exponent suffix of a decimal literal.
func (l *lexer) scanExponent() error {
	e, ok, err := l.peekRune()
	if err != nil || !ok || (e != 'e' && e != 'E') {
		return err
	}
	l.readRune()
	s, ok, err := l.peekRune()
	if err != nil {
		return err
	}
	if !ok {
		l.unreadRune(e)
		return nil
	}
	if s == '+' || s == '-' {
		l.readRune()
		d, ok, err := l.peekRune()
		if err != nil {
			return err
		}
		if !ok || !isDigit(d) {
			l.unreadRune(s)
			l.unreadRune(e)
			return nil
		}
		l.buf.WriteRune(e)
		l.buf.WriteRune(s)
		return l.scanDigits(isDigit)
	}
	if !isDigit(s) {
		l.unreadRune(e)
		return nil
	}
	l.buf.WriteRune(e)
	return l.scanDigits(isDigit)
}

// scanDigits writes runes to the buffer as long as they satisfy digit.
func (l *lexer) scanDigits(digit func(rune) bool) error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !digit(r) {
			l.unreadRune(r)
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func (l *lexer) scanIdent() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// next unreads the rune that decides ident scanning before
				// calling scanIdent, so we have scanned at least one rune.
				return nil
			}
			return err
		}
		if !unicode.IsLetter(r) {
			l.unreadRune(r)
			return nil
		}
		l.buf.WriteRune(r)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= r && r <= 'f' || 'A' <= r && r <= 'F'
}

func isBinDigit(r rune) bool {
	return r == '0' || r == '1'
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text: l.buf.String(),
		Kind: kind,
		Col:  l.rune,
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning, or the empty string
	// if a token kind hadn't been decided.
	Kind string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

// Is reports whether target is ErrSyntax.
func (err *LexError) Is(target error) bool {
	return target == ErrSyntax
}
