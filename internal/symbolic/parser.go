package symbolic

import "fmt"

// notationHint is appended to every parse error so callers can surface
// the expected input conventions without extra wrapping.
const notationHint = "expected notation like 3*x**2 + sin(x), with explicit * between factors and ** or ^ for powers"

// Operator precedence levels, lowest first. Power is right
// associative; everything else associates left.
const (
	precSum = iota + 1
	precProduct
	precPower
)

func infixPrecedence(t TokenType) (int, bool) {
	switch t {
	case TokenPlus, TokenMinus:
		return precSum, true
	case TokenStar, TokenSlash:
		return precProduct, true
	case TokenCaret:
		return precPower, true
	}
	return 0, false
}

// Parser turns a token stream into a canonical expression tree by
// precedence climbing.
type Parser struct {
	tokens  []Token
	current int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse converts expression text into a canonical Expr. Unary plus and
// minus bind tighter than multiplication but looser than powers, so
// -x**2 parses as -(x**2). Unknown characters, unknown functions and
// stray tokens all produce an error carrying the byte offset.
func Parse(input string) (Expr, error) {
	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, notationHint)
	}
	parser := NewParser(tokens)
	expr, err := parser.parseExpression(precSum)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, notationHint)
	}
	if tok := parser.peek(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %s at offset %d (%s)", describeToken(tok), tok.Position, notationHint)
	}
	return expr, nil
}

func (p *Parser) parseExpression(minPrec int) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		prec, ok := infixPrecedence(tok.Type)
		if !ok || prec < minPrec {
			return left, nil
		}
		p.advance()

		nextMin := prec + 1
		if tok.Type == TokenCaret {
			nextMin = prec
		}
		right, err := p.parseExpression(nextMin)
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case TokenPlus:
			left = AddOf(left, right)
		case TokenMinus:
			left = SubOf(left, right)
		case TokenStar:
			left = MulOf(left, right)
		case TokenSlash:
			left = DivOf(left, right)
		case TokenCaret:
			left = PowOf(left, right)
		}
	}
}

func (p *Parser) parseUnary() (Expr, error) {
	switch p.peek().Type {
	case TokenMinus:
		p.advance()
		operand, err := p.parseExpression(precPower)
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), operand), nil
	case TokenPlus:
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenNumber:
		p.advance()
		n, ok := numFromString(tok.Value)
		if !ok {
			return nil, fmt.Errorf("malformed number %q at offset %d", tok.Value, tok.Position)
		}
		return n, nil
	case TokenIdent:
		p.advance()
		if p.peek().Type == TokenLParen {
			p.advance()
			arg, err := p.parseExpression(precSum)
			if err != nil {
				return nil, err
			}
			if err := p.expectRParen(); err != nil {
				return nil, err
			}
			return buildCall(tok, arg)
		}
		return S(tok.Value), nil
	case TokenLParen:
		p.advance()
		inner, err := p.parseExpression(precSum)
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, fmt.Errorf("unexpected %s at offset %d", describeToken(tok), tok.Position)
}

func buildCall(tok Token, arg Expr) (Expr, error) {
	switch tok.Value {
	case "sin":
		return SinOf(arg), nil
	case "cos":
		return CosOf(arg), nil
	case "tan":
		return TanOf(arg), nil
	case "exp":
		return ExpOf(arg), nil
	case "log", "ln":
		return LogOf(arg), nil
	case "sqrt":
		return SqrtOf(arg), nil
	}
	return nil, fmt.Errorf("unknown function %q at offset %d (supported: sin, cos, tan, exp, log, sqrt)", tok.Value, tok.Position)
}

func (p *Parser) expectRParen() error {
	tok := p.peek()
	if tok.Type != TokenRParen {
		return fmt.Errorf(`expected ")", found %s at offset %d`, describeToken(tok), tok.Position)
	}
	p.advance()
	return nil
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() {
	if p.tokens[p.current].Type != TokenEOF {
		p.current++
	}
}

func describeToken(tok Token) string {
	if tok.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Value)
}
