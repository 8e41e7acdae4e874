package curves

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
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
	// tokenNum is a decimal number.
	tokenNum
	// tokenIdent is a variable or constant name.
	tokenIdent
	// tokenFunc is an allowed function name followed by an open paren.
	tokenFunc
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is (.
	tokenOpen
	// tokenClose is ).
	tokenClose
	// tokenSep is the argument separator ,.
	tokenSep
)

var tokenNames = [...]string{
	tokenNone:  "None",
	tokenEOF:   "EOF",
	tokenNum:   "Num",
	tokenIdent: "Ident",
	tokenFunc:  "Func",
	tokenOp:    "Op",
	tokenOpen:  "Open",
	tokenClose: "Close",
	tokenSep:   "Sep",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// Operators contains the runes which are considered to be operators. A pair
// of asterisks is also accepted as exponentiation.
const Operators = "+-*/^×÷"

// DefaultMaxLength is the default limit on the number of runes in an
// expression.
const DefaultMaxLength = 1000

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	fold cases.Caser
	rune int
	p    lexToken
	eof  bool
}

// lex creates a lexer over src. If src is longer than max runes, the result
// is an error instead.
func lex(src string, max int) (*lexer, error) {
	if n := utf8.RuneCountInString(src); max > 0 && n > max {
		return nil, &LexError{Kind: ExpressionTooLong, Col: max + 1, Text: strconv.Itoa(n)}
	}
	return &lexer{
		src:  strings.NewReader(src),
		fold: cases.Fold(),
		rune: 1,
	}, nil
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("curves: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("curves: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
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
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.pos); err != nil {
				return tok, err
			}
			tok.text = l.buf.String()
			tok.kind = tokenNum
			return tok, nil
		case r == '_', unicode.IsLetter(r):
			l.unreadRune()
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text = l.fold.String(l.buf.String())
			tok.kind = tokenIdent
			if l.callFollows() {
				if lookupBuiltin(tok.text) == nil {
					return tok, &ParseError{Kind: UnknownFunction, Col: tok.pos, Token: tok.text}
				}
				tok.kind = tokenFunc
			}
			return tok, nil
		case r == ',':
			tok.text = ","
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
		case r == '*':
			tok.kind = tokenOp
			tok.text = "*"
			if s, err := l.readRune(); err == nil {
				if s == '*' {
					tok.text = "^"
				} else {
					l.unreadRune()
				}
			}
			return tok, nil
		default:
			if k := strings.IndexRune(Operators, r); k >= 0 {
				tok.text = string(r)
				tok.kind = tokenOp
				return tok, nil
			}
			return tok, &LexError{Kind: InvalidCharacter, Col: tok.pos, Text: string(r)}
		}
	}
}

// scanNum scans a number starting at column col.
func (l *lexer) scanNum(col int) error {
	var dig, dot bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if r == '.' {
			if dot {
				l.buf.WriteRune(r)
				return &LexError{Kind: InvalidNumberFormat, Col: col, Text: l.buf.String()}
			}
			dot = true
			l.buf.WriteRune(r)
			continue
		}
		if r < '0' || r > '9' {
			l.unreadRune()
			break
		}
		dig = true
		l.buf.WriteRune(r)
	}
	if !dig {
		return &LexError{Kind: InvalidNumberFormat, Col: col, Text: l.buf.String()}
	}
	return nil
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
		switch {
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			l.buf.WriteRune(r)
		default:
			l.unreadRune()
			return nil
		}
	}
}

// callFollows reports whether the next non-space rune is an open paren. It
// consumes the spaces but not the rune after them.
func (l *lexer) callFollows() bool {
	for {
		r, err := l.readRune()
		if err != nil {
			return false
		}
		if unicode.IsSpace(r) {
			continue
		}
		l.unreadRune()
		return r == '('
	}
}

// tokens scans all of src. It is mostly useful for inspecting the lexer.
func tokens(src string, max int) ([]lexToken, error) {
	l, err := lex(src, max)
	if err != nil {
		return nil, err
	}
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.kind == tokenEOF {
			return toks, nil
		}
	}
}
