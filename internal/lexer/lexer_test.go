package lexer

import "testing"

func TestTokenizeStraightLine(t *testing.T) {
	src := "x = 1\ny = x + 2\npass\n"
	l := New(src)

	var got []TokenType
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == EOF {
			break
		}
	}

	want := []TokenType{
		IDENT, ASSIGN, INT, NEWLINE,
		IDENT, ASSIGN, IDENT, PLUS, INT, NEWLINE,
		PASS, NEWLINE,
		EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenizeIndentation(t *testing.T) {
	src := "while x:\n    y = 1\n    z = 2\npass\n"
	l := New(src)

	var got []TokenType
	for {
		tok := l.NextToken()
		got = append(got, tok.Type)
		if tok.Type == EOF {
			break
		}
	}

	want := []TokenType{
		WHILE, IDENT, COLON, NEWLINE,
		INDENT,
		IDENT, ASSIGN, INT, NEWLINE,
		IDENT, ASSIGN, INT, NEWLINE,
		DEDENT,
		PASS, NEWLINE,
		EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexerErrorsOnUnterminatedString(t *testing.T) {
	l := New("x = \"unterminated\n")
	for l.NextToken().Type != EOF {
	}
	if len(l.Errors()) == 0 {
		t.Fatalf("expected a lexer error for the unterminated string")
	}
}
