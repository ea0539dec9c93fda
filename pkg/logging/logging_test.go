package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestInitJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	defer Init(Config{})

	Info().Str("msv", "SV001").Msg("user registered")
	Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, `"msv":"SV001"`)
	assert.Contains(t, out, `"message":"user registered"`)
	assert.NotContains(t, out, "hidden")
}

func TestFatalEventCarriesLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})
	defer Init(Config{})

	// Building the event without sending it must not exit.
	ev := Fatal()
	assert.NotNil(t, ev)
	assert.True(t, ev.Enabled())
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"WARN":    "warn",
		"warning": "warn",
		"error":   "error",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in).String(), "level %q", in)
	}
}

func TestMiddlewareLogsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	defer Init(Config{})

	router := gin.New()
	router.Use(Middleware())
	router.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "nope"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
