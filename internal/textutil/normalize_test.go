package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text is a no-op", "원달러 환율 상승", "원달러 환율 상승"},
		{"strips bold tags", "<b>환율</b> 1,390원 돌파", "환율 1,390원 돌파"},
		{"decodes quot", "&quot;달러 강세&quot; 전망", `"달러 강세" 전망`},
		{"decodes amp", "S&amp;P 500", "S&P 500"},
		{"decodes angle brackets", "&lt;속보&gt;", "<속보>"},
		{"decodes nbsp and trims", "  환율&nbsp;급등  ", "환율 급등"},
		{"decodes apostrophe", "It&#39;s up", "It's up"},
		{"mixed tags and entities", "<b>&quot;원화&quot;</b> 약세", `"원화" 약세`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "<b>환율</b> &amp; 금리 전망"
	once := Normalize(in)
	assert.Equal(t, once, Normalize(once))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "환율...", Truncate("환율이 올랐다", 2))
	assert.Equal(t, "anything", Truncate("anything", 0))
}
