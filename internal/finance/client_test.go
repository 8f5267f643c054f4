package finance

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// servePage serves html EUC-KR-encoded, matching the portal's charset.
func servePage(t *testing.T, html string) *httptest.Server {
	t.Helper()
	encoded, _, err := transform.String(korean.EUCKR.NewEncoder(), html)
	require.NoError(t, err)

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=EUC-KR")
		_, _ = w.Write([]byte(encoded))
	}))
}

func testClient(srv *httptest.Server) *Client {
	c := NewClient()
	c.client = srv.Client()
	c.indexURL = srv.URL + "/marketindex/"
	c.newsURL = srv.URL + "/news/mainnews.naver?category=forex"
	c.now = func() time.Time { return time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC) }
	return c
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,392.50", 1392.50},
		{" 4.30 ", 4.30},
		{"", 0},
		{"n/a", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseNumber(tt.in), "parseNumber(%q)", tt.in)
	}
}
