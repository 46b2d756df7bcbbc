package openlibrary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"978-0-13-468599-1", "9780134685991"},
		{"0 201 53082 1", "0201530821"},
		{"  9780134685991  ", "9780134685991"},
		{"013468599X", "013468599X"},
		{"013468599x", "013468599X"},
		{"0-439-42089-x", "043942089X"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeISBN(tt.in))
		})
	}
}

func TestFetchByISBN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/books", r.URL.Path)
		assert.Equal(t, "ISBN:9780134685991", r.URL.Query().Get("bibkeys"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "data", r.URL.Query().Get("jscmd"))

		fmt.Fprint(w, `{"ISBN:9780134685991": {
			"title": "Effective Java",
			"url": "https://openlibrary.org/books/OL26333680M/Effective_Java",
			"publish_date": "December 27, 2017",
			"authors": [{"name": "Joshua Bloch"}],
			"publishers": [{"name": "Addison-Wesley"}, {"name": "Pearson"}]
		}}`)
	})

	meta, err := client.FetchByISBN(context.Background(), "978-0-13-468599-1")
	require.NoError(t, err)

	assert.Equal(t, "Effective Java", meta.Title)
	assert.Equal(t, "Joshua Bloch", meta.Authors)
	assert.Equal(t, "Addison-Wesley", meta.Publisher)
	assert.Equal(t, "9780134685991", meta.ISBN)
	assert.Equal(t, "https://openlibrary.org/books/OL26333680M/Effective_Java", meta.URL)
	require.NotNil(t, meta.Year)
	assert.Equal(t, 2017, *meta.Year)
}

func TestFetchByISBNCheckDigitX(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ISBN:043942089X", r.URL.Query().Get("bibkeys"))
		fmt.Fprint(w, `{"ISBN:043942089X": {"title": "Harry Potter and the Order of the Phoenix"}}`)
	})

	meta, err := client.FetchByISBN(context.Background(), "0-439-42089-x")
	require.NoError(t, err)
	assert.Equal(t, "043942089X", meta.ISBN)
}

func TestFetchByISBNDefaultsMissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ISBN:9780134685991": {"publish_date": "circa 1890"}}`)
	})

	meta, err := client.FetchByISBN(context.Background(), "9780134685991")
	require.NoError(t, err)

	assert.Equal(t, "Unknown Title", meta.Title)
	assert.Equal(t, "", meta.Authors)
	assert.Equal(t, "", meta.Publisher)
	assert.Nil(t, meta.Year) // 1890 predates the recognized range
}

func TestFetchByISBNRejectsInvalid(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // must never be reached

	tests := []struct {
		name string
		isbn string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too short", "12345"},
		{"letters", "abcdefghij"},
		{"twelve digits", "978013468599"},
		{"x not last", "04394X2089"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.FetchByISBN(context.Background(), tt.isbn)
			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr))
		})
	}
}

func TestFetchByISBNNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.FetchByISBN(context.Background(), "9780134685991")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Msg, "not found")
}

func TestFetchByISBNServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchByISBN(context.Background(), "9780134685991")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Msg, "502")
}
