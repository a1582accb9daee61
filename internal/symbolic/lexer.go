package symbolic

import "fmt"

// TokenType identifies the lexical class of an input token.
type TokenType int

const (
	TokenNumber TokenType = iota
	TokenIdent
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
	TokenEOF
)

// Token is one lexical unit of an input expression. Position is the
// byte offset in the source text, used in error messages.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

// Lexer splits an expression string into tokens. Both ** and ^ lex as
// the power operator. Whitespace separates tokens and is otherwise
// ignored. There is no implicit multiplication: "3x" lexes as a number
// followed by an identifier and is rejected by the parser.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the whole input, returning the token stream
// terminated by a TokenEOF entry.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		ch := l.input[l.position]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			l.position++
		case isDigit(ch) || ch == '.':
			l.lexNumber()
		case isIdentStart(ch):
			l.lexIdent()
		case ch == '*':
			if l.position+1 < len(l.input) && l.input[l.position+1] == '*' {
				l.addToken(TokenCaret, "**", l.position)
				l.position += 2
			} else {
				l.addToken(TokenStar, "*", l.position)
				l.position++
			}
		case ch == '^':
			l.addToken(TokenCaret, "^", l.position)
			l.position++
		case ch == '+':
			l.addToken(TokenPlus, "+", l.position)
			l.position++
		case ch == '-':
			l.addToken(TokenMinus, "-", l.position)
			l.position++
		case ch == '/':
			l.addToken(TokenSlash, "/", l.position)
			l.position++
		case ch == '(':
			l.addToken(TokenLParen, "(", l.position)
			l.position++
		case ch == ')':
			l.addToken(TokenRParen, ")", l.position)
			l.position++
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", string(ch), l.position)
		}
	}
	l.addToken(TokenEOF, "", len(l.input))
	return l.tokens, nil
}

func (l *Lexer) lexNumber() {
	start := l.position
	for l.position < len(l.input) && (isDigit(l.input[l.position]) || l.input[l.position] == '.') {
		l.position++
	}
	l.addToken(TokenNumber, l.input[start:l.position], start)
}

func (l *Lexer) lexIdent() {
	start := l.position
	for l.position < len(l.input) && isIdentPart(l.input[l.position]) {
		l.position++
	}
	l.addToken(TokenIdent, l.input[start:l.position], start)
}

func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{Type: tokenType, Value: value, Position: pos})
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool { return isIdentStart(ch) || isDigit(ch) }
