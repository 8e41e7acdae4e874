package curves

import (
	"errors"
	"strconv"
)

// Expr = num | const | name | Call | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr | Expr '**' Expr
//
// From loosest to tightest binding: additive, multiplicative, unary, power.
// Power is right-associative, and its right operand may itself be unary, so
// "-x^2" is "-(x^2)" and "2^-x" is "2^(-x)".

type parser struct {
	scan *lexer
}

// parse parses and validates src. maxlen limits the length of src in runes;
// non-positive means no limit.
func parse(src string, maxlen int) (*node, []string, error) {
	scan, err := lex(src, maxlen)
	if err != nil {
		return nil, nil, err
	}
	p := parser{scan: scan}
	n, err := p.term(exprprec)
	if err != nil {
		return nil, nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF: // do nothing
	case tokenClose:
		return nil, nil, &ParseError{Kind: UnmatchedParenthesis, Token: tok.text, Col: tok.pos}
	default:
		return nil, nil, unexpected(tok)
	}
	vars, err := validate(n)
	if err != nil {
		return nil, nil, err
	}
	return n, vars, nil
}

// term parses a single term containing only operators more binding than
// until. If there is no error, then term pushes the token that ended it.
func (p *parser) term(until operator) (*node, error) {
	n, err := p.lhs(until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, unexpected(tok)
			}
			if !prec.moreBinding(until) {
				p.scan.push(tok)
				return n, nil
			}
			rhs, err := p.term(prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs, pos: tok.pos}
		case tokenClose, tokenSep, tokenEOF:
			// End of term.
			p.scan.push(tok)
			return n, nil
		case tokenNum, tokenIdent, tokenFunc, tokenOpen:
			// Two terms in a row with no operator between.
			return nil, unexpected(tok)
		default:
			panic("curves: unknown token: " + tok.String())
		}
	}
}

// lhs parses the first component of a term. Operators are unary, and any
// token encountered must be valid as the start of a subexpression.
func (p *parser) lhs(until operator) (*node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &LexError{Kind: InvalidNumberFormat, Text: tok.text, Col: tok.pos}
		}
		return &node{kind: nodeNum, name: tok.text, num: v, pos: tok.pos}, nil
	case tokenIdent:
		if v, ok := constants[tok.text]; ok {
			return &node{kind: nodeConst, name: tok.text, num: v, pos: tok.pos}, nil
		}
		return &node{kind: nodeName, name: tok.text, pos: tok.pos}, nil
	case tokenFunc:
		return p.call(tok)
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, unexpected(tok)
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the enclosing operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := p.term(prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, left: rhs, pos: tok.pos}, nil
	case tokenOpen:
		rhs, err := p.term(exprprec)
		if err != nil {
			return nil, err
		}
		if err := p.close(tok); err != nil {
			return nil, err
		}
		return rhs, nil
	case tokenClose, tokenSep, tokenEOF:
		return nil, unexpected(tok)
	default:
		panic("curves: unknown token: " + tok.String())
	}
}

// call parses the argument list of a call to the function named by tok.
func (p *parser) call(tok lexToken) (*node, error) {
	fn := lookupBuiltin(tok.text)
	if fn == nil {
		// The lexer only produces function tokens for known names.
		panic("curves: function token for unknown function " + tok.String())
	}
	open, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if open.kind != tokenOpen {
		panic("curves: function token not followed by paren: " + open.String())
	}
	n := &node{kind: nodeCall, name: tok.text, fn: fn, pos: tok.pos}
	end, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if end.kind != tokenClose {
		p.scan.push(end)
		for {
			arg, err := p.term(exprprec)
			if err != nil {
				return nil, err
			}
			n.args = append(n.args, arg)
			end = p.scan.must()
			if end.kind != tokenSep {
				break
			}
		}
		p.scan.push(end)
		if err := p.close(open); err != nil {
			return nil, err
		}
	}
	if !fn.CanCall(len(n.args)) {
		return nil, &ParseError{Kind: ArityMismatch, Token: tok.text, Col: tok.pos, Args: len(n.args)}
	}
	return n, nil
}

// close scans the paren matching open from the pushed token.
func (p *parser) close(open lexToken) error {
	switch end := p.scan.must(); end.kind {
	case tokenClose:
		return nil
	case tokenEOF:
		return &ParseError{Kind: UnmatchedParenthesis, Token: open.text, Col: open.pos}
	default:
		return unexpected(end)
	}
}

// unexpected creates an error for a token that cannot appear where it did.
func unexpected(tok lexToken) error {
	return &ParseError{Kind: UnexpectedToken, Token: tok.text, Col: tok.pos}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*", "×":
		return operator{5, false, nodeMul}
	case "/", "÷":
		return operator{5, false, nodeDiv}
	case "^":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
