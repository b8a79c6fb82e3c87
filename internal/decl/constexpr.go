package decl

import (
	"math"

	"cfront/internal/diag"
	"cfront/internal/symbols"
	"cfront/internal/token"
)

const (
	minInt = math.MinInt32
	maxInt = math.MaxInt32
)

var binaryPrec = map[token.Kind]int{
	token.Or:    1,
	token.Xor:   2,
	token.Amp:   3,
	token.Shl:   4,
	token.Shr:   4,
	token.Plus:  5,
	token.Minus: 5,
	token.Star:  6,
	token.Slash: 6,
	token.Mod:   6,
}

// constExpr evaluates an integer constant expression: literals,
// enumerators, sizeof, unary - ~ ! and the arithmetic and bitwise binary
// operators.
func (p *Processor) constExpr() (int64, bool) {
	return p.constBinary(1)
}

func (p *Processor) constBinary(minPrec int) (int64, bool) {
	lhs, ok := p.constUnary()
	if !ok {
		return 0, false
	}
	for {
		op := p.peek()
		prec, isOp := binaryPrec[op.Kind]
		if !isOp || prec < minPrec {
			return lhs, true
		}
		p.advance()
		rhs, ok := p.constBinary(prec + 1)
		if !ok {
			return 0, false
		}
		switch op.Kind {
		case token.Or:
			lhs |= rhs
		case token.Xor:
			lhs ^= rhs
		case token.Amp:
			lhs &= rhs
		case token.Shl, token.Shr:
			if rhs < 0 || rhs > 63 {
				p.errAt(op.Span, diag.SemaNotConstant, "shift count out of range")
				return 0, false
			}
			if op.Kind == token.Shl {
				lhs <<= rhs
			} else {
				lhs >>= rhs
			}
		case token.Plus:
			lhs += rhs
		case token.Minus:
			lhs -= rhs
		case token.Star:
			lhs *= rhs
		case token.Slash, token.Mod:
			if rhs == 0 {
				p.errAt(op.Span, diag.SemaNotConstant, "division by zero in constant expression")
				return 0, false
			}
			if op.Kind == token.Slash {
				lhs /= rhs
			} else {
				lhs %= rhs
			}
		}
	}
}

func (p *Processor) constUnary() (int64, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Minus, token.Plus, token.Invert, token.LogNot:
		p.advance()
		v, ok := p.constUnary()
		if !ok {
			return 0, false
		}
		switch tok.Kind {
		case token.Minus:
			return -v, true
		case token.Invert:
			return ^v, true
		case token.LogNot:
			if v == 0 {
				return 1, true
			}
			return 0, true
		}
		return v, true
	case token.LParen:
		p.advance()
		v, ok := p.constExpr()
		if !ok {
			return 0, false
		}
		_, ok = p.expect(token.RParen, diag.SynExpectRParen, "expected ')'")
		return v, ok
	case token.IntLit:
		p.advance()
		return tok.Value, true
	case token.KwSizeof:
		return p.constSizeof()
	case token.Ident:
		p.advance()
		id, ok := p.t.FindEnumValue(tok.Text)
		if !ok {
			if _, known := p.t.FindSymbol(tok.Text); known {
				p.errAt(tok.Span, diag.SemaNotConstant, "'"+tok.Text+"' is not a constant")
			} else {
				p.errAt(tok.Span, diag.SemaUnresolvedSymbol, "undeclared identifier '"+tok.Text+"'")
			}
			return 0, false
		}
		return int64(p.t.Get(id).EnumValue()), true
	default:
		p.err(diag.SynExpectConstant, "expected a constant, found "+describe(tok))
		return 0, false
	}
}

// constSizeof handles sizeof(type) and sizeof(name).
func (p *Processor) constSizeof() (int64, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after sizeof"); !ok {
		return 0, false
	}
	var size int
	if p.atTypeStart() {
		dt, ok := p.parseBaseType()
		if !ok {
			return 0, false
		}
		typ := p.parseStars(dt.typ)
		sym := symbols.Symbol{Type: typ, Composite: dt.composite}
		n, err := p.t.SizeOf(&sym)
		if err != nil {
			p.errAt(kw.Span, diag.SemaIncompleteType, "sizeof applied to "+err.Error())
			return 0, false
		}
		size = n
	} else {
		name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected a type or name in sizeof")
		if !ok {
			return 0, false
		}
		id, found := p.t.FindSymbol(name.Text)
		if !found {
			p.errAt(name.Span, diag.SemaUnresolvedSymbol, "undeclared identifier '"+name.Text+"'")
			return 0, false
		}
		size = p.t.Get(id).Size
	}
	_, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after sizeof operand")
	return int64(size), ok
}
