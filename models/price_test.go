package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceJSON(t *testing.T) {
	t.Run("fixed price is a bare number", func(t *testing.T) {
		body, err := json.Marshal(FixedPrice(decimal.NewFromFloat(15.5)))
		require.NoError(t, err)
		assert.Equal(t, `15.5`, string(body))

		var p Price
		require.NoError(t, json.Unmarshal([]byte(`4500`), &p))
		amount, ok := p.Amount()
		assert.True(t, ok)
		assert.True(t, decimal.NewFromInt(4500).Equal(amount))
		_, isText := p.Text()
		assert.False(t, isText)
	})

	t.Run("display price is a localized object", func(t *testing.T) {
		var p Price
		require.NoError(t, json.Unmarshal([]byte(`{"vi":"Liên hệ","en":"Ask us","zh":"询价"}`), &p))
		assert.False(t, p.IsFixed())
		assert.True(t, p.Numeric().IsZero())

		text, ok := p.Text()
		require.True(t, ok)
		assert.Equal(t, "Ask us", text.Get(LangEN))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		var p Price
		assert.Error(t, json.Unmarshal([]byte(`"cheap"`), &p))
	})
}

func TestFormatDisplayPrice(t *testing.T) {
	testCases := []struct {
		name             string
		price            Price
		lang             Language
		includeSecondary bool
		expected         PriceLabel
	}{
		{
			name:             "fixed with secondary currency",
			price:            FixedPrice(decimal.NewFromInt(1500)),
			lang:             LangVI,
			includeSecondary: true,
			expected:         PriceLabel{Primary: "1,500 LKR", Secondary: "≈ 132.000 VND"},
		},
		{
			name:     "fixed without secondary currency",
			price:    FixedPrice(decimal.NewFromInt(250)),
			lang:     LangEN,
			expected: PriceLabel{Primary: "250 LKR"},
		},
		{
			name:             "display text ignores secondary currency",
			price:            DisplayPrice(LocalizedString{VI: "Giá thị trường", EN: "Market price", ZH: "时价"}),
			lang:             LangZH,
			includeSecondary: true,
			expected:         PriceLabel{Primary: "时价"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatDisplayPrice(tc.price, tc.lang, tc.includeSecondary))
		})
	}
}

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage("")
	require.NoError(t, err)
	assert.Equal(t, LangVI, lang)

	lang, err = ParseLanguage("EN")
	require.NoError(t, err)
	assert.Equal(t, LangEN, lang)

	_, err = ParseLanguage("fr")
	assert.Error(t, err)
}
