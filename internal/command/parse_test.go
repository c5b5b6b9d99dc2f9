package command

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasasbot/internal/rates"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"/start", Help{}},
		{"/start@TasasBot", Help{}},
		{"/start ref123", Help{}},
		{"Hola", Help{}},
		{"AYUDA!", Help{}},
		{"/paralelo 20", LocalRate{Kind: KindParallel, AmountText: "20"}},
		{"paralelo", LocalRate{Kind: KindParallel}},
		{"/oficial", LocalRate{Kind: KindOfficial}},
		{"BCV 1.500,50", LocalRate{Kind: KindOfficial, AmountText: "1.500,50"}},
		{"/paralelo@TasasBot 0", LocalRate{Kind: KindParallel, AmountText: "0"}},
		{"chile-venezuela 2.500,75", Conversion{Origin: "chile", Destination: "venezuela", AmountText: "2.500,75"}},
		{"chile venezuela 2500", Conversion{Origin: "chile", Destination: "venezuela", AmountText: "2500"}},
		{"España - Perú 100", Conversion{Origin: "España", Destination: "Perú", AmountText: "100"}},
		{"  chile   venezuela  2500 ", Conversion{Origin: "chile", Destination: "venezuela", AmountText: "2500"}},
		{"rep.dominicana chile 10", Conversion{Origin: "rep.dominicana", Destination: "chile", AmountText: "10"}},
		{"rep. dominicana venezuela 10", Conversion{Origin: "rep. dominicana", Destination: "venezuela", AmountText: "10"}},
		{"venezuela-Rep. Dominicana 5", Conversion{Origin: "venezuela", Destination: "Rep. Dominicana", AmountText: "5"}},
		{"Espan\u0303a peru 10", Conversion{Origin: "Espan\u0303a", Destination: "peru", AmountText: "10"}},
		{"???", Unrecognized{Text: "???"}},
		{"", Unrecognized{Text: ""}},
		{"chile venezuela", Unrecognized{Text: "chile venezuela"}},
		{"chile venezuela mil", Unrecognized{Text: "chile venezuela mil"}},
		{"/starting", Unrecognized{Text: "/starting"}},
	}

	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, Parse(tc.in)); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestConversionRequest(t *testing.T) {
	c, ok := Parse("chile-venezuela 2.500,75").(Conversion)
	require.True(t, ok)

	req, err := c.Request()
	require.NoError(t, err)
	assert.Equal(t, rates.Request{Origin: "chile", Destination: "venezuela", Amount: 2500.75}, req)

	spaced, ok := Parse("chile venezuela 2500").(Conversion)
	require.True(t, ok)
	req2, err := spaced.Request()
	require.NoError(t, err)
	assert.Equal(t, req.Origin, req2.Origin)
	assert.Equal(t, req.Destination, req2.Destination)
	assert.Equal(t, 2500.0, req2.Amount)
}

func TestConversionRequestMultiWordAndDecomposed(t *testing.T) {
	c, ok := Parse("rep. dominicana Espan\u0303a 10").(Conversion)
	require.True(t, ok)

	req, err := c.Request()
	require.NoError(t, err)
	assert.Equal(t, rates.Request{Origin: "repdominicana", Destination: "espana", Amount: 10}, req)
}

func TestConversionRequestInvalidAmount(t *testing.T) {
	for _, in := range []string{"chile venezuela 0", "chile venezuela 1,2,3", "chile venezuela 0,00"} {
		c, ok := Parse(in).(Conversion)
		require.True(t, ok, in)
		_, err := c.Request()
		assert.ErrorIs(t, err, rates.ErrInvalidAmount, in)
	}
}

func TestLocalRateAmount(t *testing.T) {
	amount, ok, err := LocalRate{Kind: KindParallel, AmountText: "20"}.Amount()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 20.0, amount)

	_, ok, err = LocalRate{Kind: KindParallel}.Amount()
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = LocalRate{Kind: KindParallel, AmountText: "0"}.Amount()
	assert.True(t, ok)
	assert.ErrorIs(t, err, rates.ErrInvalidAmount)
}

func TestName(t *testing.T) {
	assert.Equal(t, "help", Name(Help{}))
	assert.Equal(t, "local-rate", Name(LocalRate{}))
	assert.Equal(t, "conversion", Name(Conversion{}))
	assert.Equal(t, "unrecognized", Name(Unrecognized{}))
}
