package curves

import (
	"strconv"
)

// LexErrorKind classifies a LexError.
type LexErrorKind int

const (
	// InvalidCharacter is a rune that cannot begin any token.
	InvalidCharacter LexErrorKind = iota + 1
	// InvalidNumberFormat is a number with no digits or more than one point.
	InvalidNumberFormat
	// ExpressionTooLong is an expression exceeding the length limit.
	ExpressionTooLong
)

func (k LexErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case InvalidNumberFormat:
		return "InvalidNumberFormat"
	case ExpressionTooLong:
		return "ExpressionTooLong"
	default:
		return "LexErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Kind is the type of problem.
	Kind LexErrorKind
	// Text is the offending text. For ExpressionTooLong, it is the length of
	// the input in runes.
	Text string
	// Col is the column of the start of the token. For ExpressionTooLong, it
	// is the first column past the limit.
	Col int
}

func (err *LexError) Error() string {
	switch err.Kind {
	case InvalidCharacter:
		if err.Text == "=" {
			return errpos(err.Col, `"=" is not supported; enter an expression like x^2 instead of y = x^2`)
		}
		return errpos(err.Col, "invalid character "+strconv.Quote(err.Text))
	case InvalidNumberFormat:
		return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
	case ExpressionTooLong:
		return "expression too long: " + err.Text + " characters, limit is " + strconv.Itoa(err.Col-1)
	default:
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
}

func (err *LexError) Pos() int {
	return err.Col
}

// ParseErrorKind classifies a ParseError.
type ParseErrorKind int

const (
	// UnmatchedParenthesis is an open paren with no close or vice versa.
	UnmatchedParenthesis ParseErrorKind = iota + 1
	// UnexpectedToken is a token that cannot appear where it does.
	UnexpectedToken
	// UnknownFunction is a call to a name which is not an allowed function.
	UnknownFunction
	// ArityMismatch is a call with the wrong number of arguments.
	ArityMismatch
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnmatchedParenthesis:
		return "UnmatchedParenthesis"
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnknownFunction:
		return "UnknownFunction"
	case ArityMismatch:
		return "ArityMismatch"
	default:
		return "ParseErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseError is an error indicating a syntactically invalid expression. It
// implements InputError.
type ParseError struct {
	// Kind is the type of problem.
	Kind ParseErrorKind
	// Token is the text of the offending token, or the function name for
	// UnknownFunction and ArityMismatch. It is empty for the end of input.
	Token string
	// Col is the position of the offending token. For UnmatchedParenthesis,
	// it is the position of the paren that has no partner.
	Col int
	// Args is the number of arguments given for ArityMismatch.
	Args int
}

func (err *ParseError) Error() string {
	switch err.Kind {
	case UnmatchedParenthesis:
		if err.Token == ")" {
			return errpos(err.Col, "close paren with no open paren")
		}
		return errpos(err.Col, "open paren with no close paren")
	case UnexpectedToken:
		if err.Token == "" {
			return errpos(err.Col, "unexpected end of expression")
		}
		return errpos(err.Col, "unexpected "+strconv.Quote(err.Token))
	case UnknownFunction:
		return errpos(err.Col, "unknown function "+strconv.Quote(err.Token))
	case ArityMismatch:
		return errpos(err.Col, "cannot call "+err.Token+" with "+strconv.Itoa(err.Args)+" arguments")
	default:
		return errpos(err.Col, "invalid expression")
	}
}

func (err *ParseError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid expression text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the 1-based column of the
	// first rune of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*ParseError)(nil)
)
