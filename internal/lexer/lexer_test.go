package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	src := `let x: Int = -3
var y = 2.5
fn f(a: Int) -> Int { if ieq(a, 0) { 1 } else { a } } // trailing comment
/* block
   comment */
while true { x }
`
	want := []TokenType{
		LET, IDENT, COLON, IDENT, ASSIGN, INT,
		VAR, IDENT, ASSIGN, FLOAT,
		FN, IDENT, LPAREN, IDENT, COLON, IDENT, RPAREN, ARROW, IDENT, LBRACE,
		IF, IDENT, LPAREN, IDENT, COMMA, INT, RPAREN, LBRACE, INT, RBRACE, ELSE, LBRACE, IDENT, RBRACE,
		RBRACE,
		WHILE, IDENT, LBRACE, IDENT, RBRACE,
		EOF,
	}

	l := New(string(Normalize([]byte(src))), "t.epl")
	for i, wantType := range want {
		tok := l.NextToken()
		if tok.Type != wantType {
			t.Fatalf("token %d: want %s, got %s (%q)", i, wantType, tok.Type, tok.Literal)
		}
	}
}

func TestNegativeNumberLiteral(t *testing.T) {
	l := New("-42 -1.5", "t.epl")
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "-42" {
		t.Fatalf("got %v", tok)
	}
	tok = l.NextToken()
	if tok.Type != FLOAT || tok.Literal != "-1.5" {
		t.Fatalf("got %v", tok)
	}
}

func TestArrowNotConfusedWithMinus(t *testing.T) {
	l := New("a -> b - 1", "t.epl")
	toks := []TokenType{IDENT, ARROW, IDENT}
	for _, want := range toks {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("want %s got %s", want, tok.Type)
		}
	}
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("want ILLEGAL for bare '-' before a number, got %s", tok.Type)
	}
}
