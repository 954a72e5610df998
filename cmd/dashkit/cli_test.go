package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/dashkit/api/chat"
	"github.com/kochabx/dashkit/api/dashboard"
	"github.com/kochabx/dashkit/api/survey"
	"github.com/kochabx/dashkit/errors"
	"github.com/kochabx/dashkit/log"
	"github.com/kochabx/dashkit/transport/http/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type backend struct {
	survey   survey.Form
	expense  dashboard.ExpenseRequest
	messages atomic.Int32
}

func newBackend(t *testing.T) (*backend, string) {
	t.Helper()
	b := &backend{}

	r := gin.New()
	r.GET("/settings/locations", func(c *gin.Context) {
		response.OK(c, []dashboard.Location{{Name: "North", ID: "loc-1"}})
	})
	r.GET("/settings/missing", func(c *gin.Context) {
		response.Fail(c, errors.NotFound("not found"))
	})
	r.POST("/settings/empty", func(c *gin.Context) {
		response.Empty(c)
	})
	r.POST("/reports/stats/:resource", func(c *gin.Context) {
		if c.Param("resource") == "Broken" {
			c.String(http.StatusInternalServerError, "boom")
			return
		}
		c.JSON(http.StatusOK, gin.H{"Data": 42})
	})
	r.POST("/reports/setExpense", func(c *gin.Context) {
		_ = c.ShouldBindJSON(&b.expense)
		response.Empty(c)
	})
	r.POST("/survey/:location/:workflow", func(c *gin.Context) {
		_ = c.ShouldBindJSON(&b.survey)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/rc/update", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})
	r.GET("/rc/chats/:location", func(c *gin.Context) {
		c.JSON(http.StatusOK, []chat.ChatInfo{{ChatID: 17}})
	})
	r.GET("/rc/messages/:chat", func(c *gin.Context) {
		b.messages.Add(1)
		c.JSON(http.StatusOK, []chat.Message{{MessageID: "m1", Text: "hi", Inbound: true}})
	})
	r.POST("/rc/message", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ID": 17})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return b, server.URL
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dashkit.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func run(t *testing.T, fallback string, args ...string) (string, error) {
	t.Helper()
	cfg := writeConfig(t, "log:\n  level: error\n")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", cfg, "--fallback", fallback}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestReloadKeepsFlags(t *testing.T) {
	cfg := writeConfig(t, "log:\n  level: error\nhost:\n  fallback: http://file.example\n")
	c := &cli{configPath: cfg, logLevel: "debug", fallback: "http://flag.example"}
	require.NoError(t, c.init())

	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: warn\nhost:\n  fallback: http://other.example\n"), 0o600))
	require.NoError(t, c.config.Reload())

	c.config.Read(func() {
		assert.Equal(t, "debug", c.settings.Log.Level)
		assert.Equal(t, "http://flag.example", c.settings.Host.Fallback)
	})
	assert.Equal(t, zerolog.DebugLevel, log.G.GetLevel())
}

func TestReloadFollowsFileLevel(t *testing.T) {
	cfg := writeConfig(t, "log:\n  level: error\n")
	c := &cli{configPath: cfg, fallback: "http://flag.example"}
	require.NoError(t, c.init())

	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: warn\n"), 0o600))
	require.NoError(t, c.config.Reload())
	assert.Equal(t, zerolog.WarnLevel, log.G.GetLevel())
}

func TestGet(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "get", "settings/locations")
	require.NoError(t, err)

	var locs []dashboard.Location
	require.NoError(t, json.Unmarshal([]byte(out), &locs))
	assert.Equal(t, []dashboard.Location{{Name: "North", ID: "loc-1"}}, locs)
}

func TestGetEmpty(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "get", "/settings/empty", "--data", `{"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, "null\n", out)
}

func TestGetRaw(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "get", "/rc/chats/loc-1", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, `"chatId": 17`)
}

func TestGetFailure(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "get", "/settings/missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, errors.FromError(err).GetCode())
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, out)
}

func TestFallbackRequired(t *testing.T) {
	out, err := run(t, "", "locations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a fallback host")
	assert.Empty(t, out)
}

func TestHostnameFlag(t *testing.T) {
	_, url := newBackend(t)

	// a production hostname never uses the fallback; nothing listens on 443
	_, err := run(t, url, "--hostname", "127.0.0.1", "locations")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, errors.FromError(err).GetCode())
}

func TestLocations(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "locations")
	require.NoError(t, err)
	assert.Contains(t, out, `"loc-1"`)
}

func TestReportTiles(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "report", "tiles",
		"--resource", "Sales", "--resource", "Broken",
		"--location", "loc-1", "--from", "2026-01-01", "--to", "2026-02-01")
	require.NoError(t, err)

	var tiles []tileOutput
	require.NoError(t, json.Unmarshal([]byte(out), &tiles))
	require.Len(t, tiles, 2)
	assert.Equal(t, "Sales", tiles[0].Resource)
	assert.EqualValues(t, 42, tiles[0].Data)
	assert.Empty(t, tiles[0].Error)
	assert.Equal(t, "Broken", tiles[1].Resource)
	assert.NotEmpty(t, tiles[1].Error)
}

func TestReportTilesAllFailed(t *testing.T) {
	_, url := newBackend(t)

	_, err := run(t, url, "report", "tiles", "--resource", "Broken", "--location", "loc-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 tiles failed")
}

func TestReportExpense(t *testing.T) {
	b, url := newBackend(t)

	out, err := run(t, url, "report", "expense",
		"--location", "loc-1", "--total", "120.5", "--from", "2026-01-01", "--to", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, "expense saved\n", out)
	assert.Equal(t, []string{"loc-1"}, b.expense.Locations)
	assert.Equal(t, 120.5, b.expense.Total)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), b.expense.From.UTC())
}

func TestSurveySubmit(t *testing.T) {
	b, url := newBackend(t)

	out, err := run(t, url, "survey", "submit",
		"--location", "loc-1", "--workflow", "wf-1",
		"--name", "Jane Roe", "--phone", "+1 555 010 2030", "--email", "jane@example.com",
		"--answer", "Which area bothers you most?=Stomach")
	require.NoError(t, err)
	assert.Equal(t, "survey submitted\n", out)
	assert.Equal(t, "Jane Roe", b.survey.Name)
	assert.Equal(t, []survey.Answer{{Question: "Which area bothers you most?", Answer: "Stomach"}}, b.survey.Answers)
}

func TestSurveySubmitInvalid(t *testing.T) {
	_, url := newBackend(t)

	_, err := run(t, url, "survey", "submit", "--location", "loc-1", "--workflow", "wf-1", "--answer", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --answer")

	_, err = run(t, url, "survey", "submit", "--location", "loc-1", "--workflow", "wf-1", "--name", "x")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, errors.FromError(err).GetCode())
}

func TestChatSend(t *testing.T) {
	_, url := newBackend(t)

	out, err := run(t, url, "chat", "send", "--location", "loc-1", "--contact", "c-1", "--text", "hello")
	require.NoError(t, err)
	assert.Equal(t, "sent to chat 17\n", out)
}

func TestChatWatchOnce(t *testing.T) {
	b, url := newBackend(t)
	cfg := writeConfig(t, "log:\n  level: error\nchat:\n  location_id: loc-1\n  chat_ids: [18]\n")

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--config", cfg, "--fallback", url, "chat", "watch", "--once"})
	require.NoError(t, root.Execute())

	// chat 17 from the location plus the configured chat 18
	assert.EqualValues(t, 2, b.messages.Load())
}

func TestPeriod(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	from, to, err := (&period{}).resolve(now)
	require.NoError(t, err)
	assert.Equal(t, now, to)
	assert.Equal(t, time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC), from)

	_, _, err = (&period{from: "2026-03-02", to: "2026-03-01"}).resolve(now)
	assert.Error(t, err)

	_, _, err = (&period{to: "March"}).resolve(now)
	assert.Error(t, err)
}
