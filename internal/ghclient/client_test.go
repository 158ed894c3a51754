package ghclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client pointed at an httptest server serving the
// given handler.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(context.Background(), "test-token", "acme/widgets")
	require.NoError(t, err)
	require.NoError(t, client.SetBaseURL(srv.URL))
	return client
}

func TestSplitSlug(t *testing.T) {
	tests := map[string]struct {
		slug      string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		"valid": {
			slug:      "acme/widgets",
			wantOwner: "acme",
			wantRepo:  "widgets",
		},
		"missing name": {
			slug:    "acme/",
			wantErr: true,
		},
		"missing owner": {
			slug:    "/widgets",
			wantErr: true,
		},
		"no separator": {
			slug:    "widgets",
			wantErr: true,
		},
		"empty": {
			slug:    "",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			owner, repo, err := SplitSlug(tc.slug)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, owner)
			assert.Equal(t, tc.wantRepo, repo)
		})
	}
}

func TestPullAuthor(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/42", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"number":42,"user":{"login":"alice"}}`)
	}))

	login, err := client.PullAuthor(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "alice", login)
}

func TestPullAuthorNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))

	_, err := client.PullAuthor(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#42")
}

func TestPullAuthorMissingLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"number":42}`)
	}))

	_, err := client.PullAuthor(context.Background(), 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no submitter login")
}

func TestRepoHTMLURL(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets", r.URL.Path)
		fmt.Fprint(w, `{"html_url":"https://github.com/acme/widgets"}`)
	}))

	url, err := client.RepoHTMLURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets", url)
}

func TestRepoHTMLURLFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bad credentials"}`, http.StatusUnauthorized)
	}))

	_, err := client.RepoHTMLURL(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acme/widgets")
}
