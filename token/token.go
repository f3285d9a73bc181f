package token

const (
	ILLEGAL = "ILLEGAL" // a character (or lone '=' / ':') the language has no token for
	EOF     = "EOF"     // end of the line, the parser stops here

	// identifiers + literals
	IDENT  = "IDENT"  // add, x, foo_1, ...
	NUMBER = "NUMBER" // 12, 3.25
	STRING = "STRING" // "text", no escapes

	// operators
	ASSIGN   = ":="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	BANG     = "!"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	LT_EQ  = "<="
	GT     = ">"
	GT_EQ  = ">="

	// delimiters
	COMMA     = ","
	SEMICOLON = ";"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// keywords
	PRINT    = "PRINT"
	WHILE    = "WHILE"
	IF       = "IF"
	ELSE     = "ELSE"
	FUNCTION = "FUNCTION"
	RETURN   = "RETURN"
	VAR      = "VAR"
	TRUE     = "TRUE"
	FALSE    = "FALSE"
)

var keywords = map[string]TokenType{
	"println": PRINT,
	"while":   WHILE,
	"true":    TRUE,
	"false":   FALSE,
	"if":      IF,
	"else":    ELSE,
	"def":     FUNCTION,
	"return":  RETURN,
	"var":     VAR,
}

type TokenType string

type Token struct {
	Type    TokenType
	Literal string
}

func (t Token) String() string {
	return "[ " + string(t.Type) + ", " + t.Literal + " ]"
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}

	return IDENT
}

// IsRelational reports whether t is one of == != < <= > >=.
func IsRelational(t TokenType) bool {
	switch t {
	case EQ, NOT_EQ, LT, LT_EQ, GT, GT_EQ:
		return true
	}
	return false
}
