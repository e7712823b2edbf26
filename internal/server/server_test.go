package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/colorblend/internal/archive"
	"github.com/MeKo-Tech/colorblend/internal/blend"
	"github.com/MeKo-Tech/colorblend/internal/imageio"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	srv, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestParseSwatchPath(t *testing.T) {
	t.Run("mode name", func(t *testing.T) {
		mode, ok := parseSwatchPath("/swatches/color-dodge.png")
		if !ok {
			t.Fatalf("expected ok")
		}
		if mode != blend.ColorDodge {
			t.Fatalf("unexpected mode: %s", mode)
		}
	})

	t.Run("alias", func(t *testing.T) {
		mode, ok := parseSwatchPath("/swatches/plus.png")
		if !ok || mode != blend.Lighter {
			t.Fatalf("expected lighter, got %s (ok=%v)", mode, ok)
		}
	})

	t.Run("reject non-png", func(t *testing.T) {
		if _, ok := parseSwatchPath("/swatches/multiply.jpg"); ok {
			t.Fatalf("expected not ok")
		}
	})

	t.Run("reject unknown mode", func(t *testing.T) {
		if _, ok := parseSwatchPath("/swatches/sideways.png"); ok {
			t.Fatalf("expected not ok")
		}
	})

	t.Run("reject other prefix", func(t *testing.T) {
		if _, ok := parseSwatchPath("/tiles/multiply.png"); ok {
			t.Fatalf("expected not ok")
		}
	})
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestModes(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, body := get(t, ts.URL+"/modes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var infos []ModeInfo
	require.NoError(t, json.Unmarshal(body, &infos))
	require.Len(t, infos, len(blend.Modes()))
	assert.Equal(t, ModeInfo{Name: "clear", Family: "compositing"}, infos[0])
}

func TestMix(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, body := get(t, ts.URL+"/mix?src=ff8040&dst=%23808080&mode=multiply")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "multiply", out["mode"])
	assert.Equal(t, "src-over", out["op"])
	assert.Equal(t, "#804020ff", out["result"])

	resp, _ = get(t, ts.URL+"/mix?src=ff0000&dst=0000ff&mode=xor")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	for _, q := range []string{
		"src=zz&dst=000000",
		"src=000000&dst=12",
		"src=000000&dst=000000&mode=sideways",
		"src=000000&dst=000000&gamma=3.0",
		"src=000000&dst=000000&mode=screen&op=multiply",
	} {
		resp, body := get(t, ts.URL+"/mix?"+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		assert.Contains(t, string(body), "error", q)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, Config{})
	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/mix", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
}

func TestSwatchesRenderedOnDemand(t *testing.T) {
	srv, err := New(Config{GenerateMissing: true, SwatchSize: 16, MaxConcurrentRenders: 2}, nil)
	require.NoError(t, err)
	defer srv.Close()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/swatches/multiply.png")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := imageio.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())

	resp, again := get(t, ts.URL+"/swatches/multiply.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, body, again)

	status := srv.swatches.Status()
	assert.Equal(t, int64(1), status.TotalRendered)
	assert.Equal(t, int64(1), status.CacheHits)
	assert.False(t, status.Archive)

	resp, _ = get(t, ts.URL+"/swatches/sideways.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = get(t, ts.URL+"/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var decoded SwatchStatus
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, 2, decoded.MaxConcurrent)
}

func TestSwatchesMissingWithoutRendering(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, _ := get(t, ts.URL+"/swatches/multiply.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSwatchesFromArchive(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "swatches.db")

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))

	w, err := archive.New(dbPath, archive.Metadata{Name: "test", Format: "png", Size: 4})
	require.NoError(t, err)
	require.NoError(t, w.WriteSwatch(blend.SrcOver, 4, buf.Bytes()))
	require.NoError(t, w.Close())

	srv, err := New(Config{ArchivePath: dbPath, CacheControl: "public, max-age=60"}, nil)
	require.NoError(t, err)
	defer srv.Close()
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/swatches/src-over.png")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, buf.Bytes(), body)
	assert.Equal(t, "public, max-age=60", resp.Header.Get("Cache-Control"))
	assert.Equal(t, int64(1), srv.swatches.Status().ArchiveHits)

	resp, _ = get(t, ts.URL+"/swatches/screen.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNewRejectsMissingArchive(t *testing.T) {
	_, err := New(Config{ArchivePath: filepath.Join(t.TempDir(), "missing.db")}, nil)
	assert.Error(t, err)
}
