package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/token"
)

func collect(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	toks := collect("let x = 1;")
	require.Len(t, toks, 6)
	assert.Equal(t, token.LET, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, "x", toks[1].Lexeme)
	assert.Equal(t, token.ASSIGN, toks[2].Type)
	assert.Equal(t, token.INT, toks[3].Type)
	assert.Equal(t, "1", toks[3].Lexeme)
	assert.Equal(t, token.SEMICOLON, toks[4].Type)
	assert.Equal(t, token.EOF, toks[5].Type)
}

func TestNextToken_TwoCharOperators(t *testing.T) {
	cases := []struct {
		src  string
		want token.Type
	}{
		{"==", token.EQ},
		{"!=", token.NOT_EQ},
		{"<=", token.LTE},
		{">=", token.GTE},
		{"->", token.ARROW},
	}
	for _, c := range cases {
		toks := collect(c.src)
		require.Len(t, toks, 2)
		assert.Equal(t, c.want, toks[0].Type, c.src)
	}
}

func TestNextToken_FloatVsInt(t *testing.T) {
	toks := collect("3.14 7")
	require.Len(t, toks, 3)
	assert.Equal(t, token.FLOAT, toks[0].Type)
	assert.Equal(t, "3.14", toks[0].Lexeme)
	assert.Equal(t, token.INT, toks[1].Type)
	assert.Equal(t, "7", toks[1].Lexeme)
}

func TestNextToken_String(t *testing.T) {
	toks := collect(`"hi\nthere"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hi\nthere", toks[0].Lexeme)
}

func TestNextToken_SkipsComments(t *testing.T) {
	toks := collect("// a comment\nlet")
	require.Len(t, toks, 2)
	assert.Equal(t, token.LET, toks[0].Type)
}

func TestNextToken_IllegalChar(t *testing.T) {
	toks := collect("@")
	require.Len(t, toks, 2)
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
}
