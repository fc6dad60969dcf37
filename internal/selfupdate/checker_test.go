package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/focusflow/focusflow/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	const body = `{"tag_name":"v1.2.0","html_url":"https://example.com/v1.2.0"}`

	tests := []struct {
		name      string
		current   string
		available bool
	}{
		{"older", "v1.1.9", true},
		{"same", "v1.2.0", false},
		{"newer", "v1.3.0", false},
		{"without v prefix", "1.0.0", true},
		{"prerelease of latest", "v1.2.0-rc.1", true},
		{"devel", "(devel)", false},
	}

	server := latestServer(t, http.StatusOK, body)
	checker := NewChecker(WithBaseURL(server.URL))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, "v1.2.0", res.LatestVersion)
			assert.Equal(t, "https://example.com/v1.2.0", res.ReleaseURL)
			assert.Equal(t, tt.available, res.UpdateAvailable)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		server := latestServer(t, http.StatusInternalServerError, "")
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("invalid tag", func(t *testing.T) {
		server := latestServer(t, http.StatusOK, `{"tag_name":"latest"}`)
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid version")
	})

	t.Run("other repository", func(t *testing.T) {
		server := latestServer(t, http.StatusOK, `{"tag_name":"v9.0.0"}`)
		_, err := NewChecker(WithBaseURL(server.URL), WithRepository("someone", "else")).
			Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
	})
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, "v1.2.3", canonical("1.2.3"))
	assert.Equal(t, "v1.2.3", canonical("v1.2.3"))
	assert.Equal(t, "", canonical("(devel)"))
	assert.Equal(t, "", canonical(""))
}
