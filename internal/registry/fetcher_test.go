package registry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qcerrors "github.com/quickcode-ui/quickcode/internal/errors"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/components-map.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jsonMap))
	})
	r.Get("/ui/{file}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("// " + chi.URLParam(r, "file")))
	})
	r.Get("/moved", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMovedPermanently)
	})
	r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRawURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   "https://github.com/iamsufiyan560/QuickCode/blob/main/ui/Button.tsx",
			want: "https://raw.githubusercontent.com/iamsufiyan560/QuickCode/main/ui/Button.tsx",
		},
		{
			in:   "https://github.com/o/r/blob/feature/x/hooks/useToggle.ts",
			want: "https://raw.githubusercontent.com/o/r/feature/x/hooks/useToggle.ts",
		},
		{
			in:   "https://raw.githubusercontent.com/o/r/main/ui/Button.tsx",
			want: "https://raw.githubusercontent.com/o/r/main/ui/Button.tsx",
		},
		{
			in:   "https://github.com/o/r/tree/main/ui",
			want: "https://github.com/o/r/tree/main/ui",
		},
		{
			in:   "https://example.com/o/r/blob/main/x.tsx",
			want: "https://example.com/o/r/blob/main/x.tsx",
		},
		{
			in:   "s3://bucket/map.json",
			want: "s3://bucket/map.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RawURL(tt.in))
		})
	}
}

func TestHTTPFetcher_OK(t *testing.T) {
	srv := newTestServer(t)

	body, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), srv.URL+"/ui/Button.tsx")
	require.NoError(t, err)
	assert.Equal(t, "// Button.tsx", string(body))
}

func TestHTTPFetcher_Non200IsError(t *testing.T) {
	srv := newTestServer(t)
	f := NewHTTPFetcherWithClient(&http.Client{
		// Do not follow: only a literal 200 counts as success.
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	})

	for _, path := range []string{"/missing", "/moved"} {
		_, err := f.Fetch(context.Background(), srv.URL+path)
		require.Error(t, err, path)
		assert.True(t, qcerrors.HasCode(err, "E103"), "got %v", err)
	}
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	srv := newTestServer(t)
	addr := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(time.Second).Fetch(context.Background(), addr+"/ui/Button.tsx")
	require.Error(t, err)
	assert.True(t, qcerrors.HasCode(err, "E103"))
}

func TestHTTPFetcher_ContextCancel(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewHTTPFetcher(0).Fetch(ctx, srv.URL+"/slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFileFetcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonMap), 0644))

	for _, ref := range []string{path, "file://" + filepath.ToSlash(path)} {
		data, err := FileFetcher{}.Fetch(context.Background(), ref)
		require.NoError(t, err, ref)
		assert.Equal(t, jsonMap, string(data))
	}

	_, err := FileFetcher{}.Fetch(context.Background(), filepath.Join(dir, "nope.json"))
	assert.True(t, qcerrors.HasCode(err, "E103"))
}

func TestMuxFetcher_Dispatch(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()
	local := filepath.Join(dir, "Local.tsx")
	require.NoError(t, os.WriteFile(local, []byte("local"), 0644))

	s3 := &fakeS3{objects: map[string]string{"mirror/ui/Card.tsx": "from s3"}}
	mux := NewMuxFetcher(FetcherOptions{Timeout: time.Second, S3: s3})

	got, err := mux.Fetch(context.Background(), srv.URL+"/ui/Card.tsx")
	require.NoError(t, err)
	assert.Equal(t, "// Card.tsx", string(got))

	got, err = mux.Fetch(context.Background(), "s3://mirror/ui/Card.tsx")
	require.NoError(t, err)
	assert.Equal(t, "from s3", string(got))

	got, err = mux.Fetch(context.Background(), local)
	require.NoError(t, err)
	assert.Equal(t, "local", string(got))

	_, err = mux.Fetch(context.Background(), "ftp://host/file")
	assert.True(t, qcerrors.HasCode(err, "E103"))
}

func TestMuxFetcher_Handle(t *testing.T) {
	mux := NewMuxFetcher(FetcherOptions{S3: &fakeS3{}})
	mux.Handle("mem", FetcherFunc(func(ctx context.Context, rawURL string) ([]byte, error) {
		return []byte(rawURL), nil
	}))

	got, err := mux.Fetch(context.Background(), "mem://x")
	require.NoError(t, err)
	assert.Equal(t, "mem://x", string(got))
}

func TestLoad(t *testing.T) {
	srv := newTestServer(t)
	f := NewHTTPFetcher(time.Second)

	reg, err := Load(context.Background(), f, srv.URL+"/components-map.json")
	require.NoError(t, err)
	assert.Len(t, reg.Components, 2)

	_, err = Load(context.Background(), f, srv.URL+"/missing.json")
	require.Error(t, err)
	assert.True(t, qcerrors.HasCode(err, "E104"), "got %v", err)
}

func TestLoad_RewritesBlobURL(t *testing.T) {
	var fetched string
	f := FetcherFunc(func(ctx context.Context, rawURL string) ([]byte, error) {
		fetched = rawURL
		return []byte(jsonMap), nil
	})

	_, err := Load(context.Background(), f, "https://github.com/o/r/blob/main/components-map.json")
	require.NoError(t, err)
	assert.Equal(t, "https://raw.githubusercontent.com/o/r/main/components-map.json", fetched)
}

func TestScheme(t *testing.T) {
	assert.Equal(t, "https", scheme("HTTPS://x"))
	assert.Equal(t, "s3", scheme("s3://b/k"))
	assert.Equal(t, "", scheme("/tmp/map.json"))
	assert.Equal(t, "", scheme(`C:\map.json`))
}
