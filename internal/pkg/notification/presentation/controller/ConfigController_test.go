package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		enabled bool
		key     string
		wantKey string
	}{
		{name: "happy path - enabled exposes key", enabled: true, key: "BPub", wantKey: "BPub"},
		{name: "happy path - disabled hides key", enabled: false, key: "BPub", wantKey: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/config", NewConfigController(tc.enabled, tc.key).Handle())

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/config", nil))
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Enabled   bool   `json:"enabled"`
				PublicKey string `json:"publicKey"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.enabled, body.Enabled)
			assert.Equal(t, tc.wantKey, body.PublicKey)
		})
	}
}
