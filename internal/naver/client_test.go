package naver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResponse = `{
	"total": 2,
	"start": 1,
	"display": 2,
	"items": [
		{
			"title": "원/달러 환율 <b>하락</b> 출발&nbsp;1,390원대",
			"originallink": "https://www.yna.co.kr/view/AKR20260302001",
			"link": "https://n.news.naver.com/mnews/article/001/0015000001?sid=101",
			"description": "&quot;달러 약세&quot; 흐름이 이어졌다.",
			"pubDate": "Mon, 02 Mar 2026 09:12:00 +0900"
		},
		{
			"title": "외환시장 동향",
			"originallink": "",
			"link": "https://n.news.naver.com/mnews/article/009/0005000002",
			"description": "",
			"pubDate": "not-a-date"
		},
		{
			"title": "",
			"link": "https://n.news.naver.com/mnews/article/009/0005000003",
			"pubDate": "Mon, 02 Mar 2026 08:00:00 +0900"
		}
	]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	c := NewClient("test-id", "test-secret")
	c.client = srv.Client()
	c.baseURL = srv.URL
	return srv, c
}

func TestSearchNews(t *testing.T) {
	var gotReq *http.Request
	srv, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponse))
	})
	defer srv.Close()

	got, err := c.SearchNews(context.Background(), "환율", 20)
	require.NoError(t, err)

	require.NotNil(t, gotReq)
	assert.Equal(t, "test-id", gotReq.Header.Get("X-Naver-Client-Id"))
	assert.Equal(t, "test-secret", gotReq.Header.Get("X-Naver-Client-Secret"))
	assert.Equal(t, "환율", gotReq.URL.Query().Get("query"))
	assert.Equal(t, "20", gotReq.URL.Query().Get("display"))
	assert.Equal(t, "date", gotReq.URL.Query().Get("sort"))

	// The titleless item is dropped.
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "원/달러 환율 하락 출발 1,390원대", first.Title)
	assert.Equal(t, "https://www.yna.co.kr/view/AKR20260302001", first.OriginalURL)
	assert.Equal(t, "https://n.news.naver.com/mnews/article/001/0015000001", first.CanonicalURL)
	assert.Equal(t, `"달러 약세" 흐름이 이어졌다.`, first.Snippet)
	assert.Equal(t,
		time.Date(2026, 3, 2, 9, 12, 0, 0, time.FixedZone("", 9*60*60)).Unix(),
		first.PublishedAt.Unix())

	second := got[1]
	// Missing original link falls back to the portal link.
	assert.Equal(t, "https://n.news.naver.com/mnews/article/009/0005000002", second.OriginalURL)
	// Unparseable dates degrade to the zero time.
	assert.True(t, second.PublishedAt.IsZero())
}

func TestSearchNewsMissingCredentials(t *testing.T) {
	c := NewClient("", "secret")
	_, err := c.SearchNews(context.Background(), "환율", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")

	c = NewClient("id", "")
	_, err = c.SearchNews(context.Background(), "환율", 10)
	require.Error(t, err)
}

func TestSearchNewsAPIError(t *testing.T) {
	srv, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"errorMessage": "Rate limit exceeded"}`))
	})
	defer srv.Close()

	_, err := c.SearchNews(context.Background(), "환율", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearchNewsMalformedResponse(t *testing.T) {
	srv, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	defer srv.Close()

	_, err := c.SearchNews(context.Background(), "환율", 10)
	require.Error(t, err)
}

func TestSearchNewsDefaultDisplay(t *testing.T) {
	srv, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("display"))
		_, _ = w.Write([]byte(`{"total": 0, "items": []}`))
	})
	defer srv.Close()

	got, err := c.SearchNews(context.Background(), "환율", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
