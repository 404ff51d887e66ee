package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStringMatchesFixture(t *testing.T) {
	tok := Token{
		Ident:     "fx-ident-01",
		Exp:       "2024-10-09T16:00:00Z",
		Signature: "fx-sign",
	}

	assert.Equal(t, "ZngtaWRlbnQtMDE.MjAyNC0xMC0wOVQxNjowMDowMFo.fx-sign", tok.String())
}

func TestParseFixture(t *testing.T) {
	tok, err := Parse("ZngtaWRlbnQtMDE.MjAyNC0xMC0wOVQxNjowMDowMFo.fx-sign")
	require.NoError(t, err)

	assert.Equal(t, Token{
		Ident:     "fx-ident-01",
		Exp:       "2024-10-09T16:00:00Z",
		Signature: "fx-sign",
	}, tok)
}

func TestParseRoundTrip(t *testing.T) {
	tokens := []Token{
		{Ident: "demo1", Exp: "2030-01-01T00:00:00Z", Signature: "c2lnbg"},
		{Ident: "user.with.dots", Exp: "2030-01-01T00:00:00.123456789Z", Signature: "abc-_"},
		{Ident: "ünïcødé", Exp: "2030-01-01T12:30:00+02:00", Signature: ""},
		{Ident: "", Exp: "", Signature: "x"},
	}
	for _, tok := range tokens {
		s := tok.String()
		parsed, err := Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, tok, parsed)
		assert.Equal(t, s, parsed.String())
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		in   string
		want error
	}{
		"empty":           {in: "", want: ErrInvalidFormat},
		"two parts":       {in: "ZGVtbw.ZXhw", want: ErrInvalidFormat},
		"four parts":      {in: "a.b.c.d", want: ErrInvalidFormat},
		"padded ident":    {in: "ZGVtbzE=.ZXhw.sig", want: ErrCannotDecodeIdent},
		"std alphabet":    {in: "+/+/.ZXhw.sig", want: ErrCannotDecodeIdent},
		"bad exp":         {in: "ZGVtbw.!!!.sig", want: ErrCannotDecodeExp},
		"non utf8 ident":  {in: "_w.ZXhw.sig", want: ErrCannotDecodeIdent},
		"only separators": {in: "..", want: nil},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.in)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestExpiresAt(t *testing.T) {
	exp, err := Token{Exp: "2024-10-09T16:00:00Z"}.ExpiresAt()
	require.NoError(t, err)
	assert.Equal(t, 2024, exp.Year())

	_, err = Token{Exp: "yesterday"}.ExpiresAt()
	assert.ErrorIs(t, err, ErrExpNotIso)
}
