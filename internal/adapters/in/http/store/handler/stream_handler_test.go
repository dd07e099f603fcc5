package storeHandler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bannerdom "sristi/internal/domain/banner"
)

func TestCatalogStreamHandler(t *testing.T) {
	e := newEnv()
	h := NewCatalogStreamHandler(e.catalogUC)

	w := doAs(t, h, http.MethodGet, "/store/products/stream", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "data: "))
	assert.Contains(t, body, "Lavender Soap")
}

func TestBannerStreamHandler(t *testing.T) {
	h := NewBannerStreamHandler(&memBannerRepo{posters: []string{"https://cdn/p1.png"}})

	w := doAs(t, h, http.MethodGet, "/store/banners/home/stream", "", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://cdn/p1.png")
}

// tickerBannerRepo emits a snapshot every interval, count times, then closes.
type tickerBannerRepo struct {
	posters  []string
	count    int
	interval time.Duration
}

func (r *tickerBannerRepo) GetHome(context.Context) (*bannerdom.Banner, error) {
	return &bannerdom.Banner{Posters: append([]string{}, r.posters...)}, nil
}

func (r *tickerBannerRepo) SubscribeHome(ctx context.Context) (<-chan []string, func(), error) {
	ch := make(chan []string)
	go func() {
		defer close(ch)
		for i := 0; i < r.count; i++ {
			select {
			case <-time.After(r.interval):
			case <-ctx.Done():
				return
			}
			select {
			case ch <- append([]string{}, r.posters...):
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, func() {}, nil
}

// The stream must keep delivering events past the server's global write
// deadline; a severed connection shows up as a scanner error and fewer
// events than the repo emitted.
func TestBannerStreamHandler_OutlivesServerWriteTimeout(t *testing.T) {
	repo := &tickerBannerRepo{
		posters:  []string{"https://cdn/p1.png"},
		count:    6,
		interval: 40 * time.Millisecond,
	}
	ts := httptest.NewUnstartedServer(NewBannerStreamHandler(repo))
	ts.Config.WriteTimeout = 100 * time.Millisecond
	ts.Start()
	defer ts.Close()

	start := time.Now()
	resp, err := http.Get(ts.URL + "/store/banners/home/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	events := 0
	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		if strings.HasPrefix(sc.Text(), "data: ") {
			events++
		}
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, repo.count, events)
	assert.Greater(t, time.Since(start), ts.Config.WriteTimeout)
}
