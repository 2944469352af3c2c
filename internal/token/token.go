// Package token defines the tagged-union token kinds produced by the lexer
// and consumed one at a time by the compiler's Pratt parser.
package token

import "fmt"

// Kind identifies which variant of token a Token holds. Number and
// Identifier additionally carry a payload (Num / Ident respectively);
// every other kind is a bare tag.
type Kind int

const (
	// literals
	Number Kind = iota
	Identifier

	// keywords
	True
	False
	If
	Else
	And
	Or
	Var
	While
	Not
	Fn

	// built-in CHIP-8 globals
	DT
	ST
	I

	// built-in functions
	Rand
	Draw
	Key

	// single-char punctuation
	LeftParen
	RightParen
	LeftBrace
	RightBrace
	Plus
	Minus
	ForwardSlash
	Semicolon
	Equals
	Comma

	// two-char punctuation
	EqualsEquals
	NotEquals

	EndOfFile
	ErrorToken
)

var kindNames = map[Kind]string{
	Number:       "Number",
	Identifier:   "Identifier",
	True:         "True",
	False:        "False",
	If:           "If",
	Else:         "Else",
	And:          "And",
	Or:           "Or",
	Var:          "Var",
	While:        "While",
	Not:          "Not",
	Fn:           "Fn",
	DT:           "DT",
	ST:           "ST",
	I:            "I",
	Rand:         "Rand",
	Draw:         "Draw",
	Key:          "Key",
	LeftParen:    "LeftParen",
	RightParen:   "RightParen",
	LeftBrace:    "LeftBrace",
	RightBrace:   "RightBrace",
	Plus:         "Plus",
	Minus:        "Minus",
	ForwardSlash: "ForwardSlash",
	Semicolon:    "Semicolon",
	Equals:       "Equals",
	Comma:        "Comma",
	EqualsEquals: "EqualsEquals",
	NotEquals:    "NotEquals",
	EndOfFile:    "EndOfFile",
	ErrorToken:   "ErrorToken",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps reserved source words to their token kind. Anything that
// fails this lookup lexes as a plain Identifier.
var Keywords = map[string]Kind{
	"true":  True,
	"false": False,
	"if":    If,
	"else":  Else,
	"and":   And,
	"or":    Or,
	"var":   Var,
	"while": While,
	"fn":    Fn,
	"DT":    DT,
	"ST":    ST,
	"I":     I,
	"RAND":  Rand,
	"DRAW":  Draw,
	"KEY":   Key,
}

// Token is a single lexical unit: its kind, source line, and (for Number
// and Identifier) a payload.
type Token struct {
	Kind  Kind
	Line  uint32
	Num   uint16
	Ident string
}

// New builds a bare token carrying no literal payload.
func New(kind Kind, line uint32) Token {
	return Token{Kind: kind, Line: line}
}

// NewNumber builds a Number token.
func NewNumber(value uint16, line uint32) Token {
	return Token{Kind: Number, Line: line, Num: value}
}

// NewIdentifier builds an Identifier token.
func NewIdentifier(text string, line uint32) Token {
	return Token{Kind: Identifier, Line: line, Ident: text}
}

func (t Token) String() string {
	switch t.Kind {
	case Number:
		return fmt.Sprintf("Number(%d)", t.Num)
	case Identifier:
		return fmt.Sprintf("Identifier(%q)", t.Ident)
	default:
		return t.Kind.String()
	}
}
