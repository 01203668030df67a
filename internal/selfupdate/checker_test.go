package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewer(t *testing.T) {
	tests := []struct {
		latest, current string
		want            bool
	}{
		{"v1.2.0", "v1.1.9", true},
		{"v1.10.0", "v1.9.0", true},
		{"1.2.0", "v1.2.0", false},
		{"v1.2.0", "v1.2.0-rc.1", true},
		{"v1.0.0", "v2.0.0", false},
		{"v2.0.0", "(devel)", false},
		{"garbage", "v1.0.0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, newer(tt.latest, tt.current), "%s vs %s", tt.latest, tt.current)
	}
}

func TestIsDevBuild(t *testing.T) {
	assert.True(t, IsDevBuild("(devel)"))
	assert.True(t, IsDevBuild(""))
	assert.False(t, IsDevBuild("v0.3.1"))
	assert.False(t, IsDevBuild("0.3.1"))
}

func TestCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/kids/board/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"v0.4.0","html_url":"https://example.com/v0.4.0",
			"assets":[{"name":"checksums.txt","browser_download_url":"https://example.com/sums"}]}`))
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL), WithRepository("kids", "board"))

	got, err := checker.Check(context.Background(), &CheckInput{Version: "v0.3.2"})
	require.NoError(t, err)
	assert.Equal(t, &CheckResult{
		CurrentVersion: "v0.3.2",
		Release: &Release{
			Tag:    "v0.4.0",
			URL:    "https://example.com/v0.4.0",
			Assets: map[string]string{"checksums.txt": "https://example.com/sums"},
		},
		UpdateAvailable: true,
	}, got)
	assert.Equal(t, "v0.4.0", got.LatestVersion())
}

func TestCheck_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}
