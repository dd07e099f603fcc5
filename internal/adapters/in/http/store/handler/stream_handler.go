// internal/adapters/in/http/store/handler/stream_handler.go
package storeHandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	usecase "sristi/internal/application/usecase"
	bannerdom "sristi/internal/domain/banner"
)

// CatalogStreamHandler serves GET /store/products/stream as server-sent
// events: the full catalog is re-emitted on every snapshot change, the same
// contract the mobile client previously got from a direct listener.
type CatalogStreamHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogStreamHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &CatalogStreamHandler{uc: uc}
}

func (h *CatalogStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "catalog stream handler is not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch, stop, err := h.uc.Subscribe(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer stop()

	beginEventStream(w)
	flusher.Flush()

	for {
		select {
		case products, open := <-ch:
			if !open {
				return
			}
			writeSSE(w, flusher, map[string]any{"products": products})
		case <-r.Context().Done():
			return
		}
	}
}

// BannerStreamHandler serves GET /store/banners/home/stream the same way.
type BannerStreamHandler struct {
	repo bannerdom.Repository
}

func NewBannerStreamHandler(repo bannerdom.Repository) http.Handler {
	return &BannerStreamHandler{repo: repo}
}

func (h *BannerStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if h.repo == nil {
		writeErr(w, http.StatusInternalServerError, "banner stream handler is not configured")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeErr(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch, stop, err := h.repo.SubscribeHome(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer stop()

	beginEventStream(w)
	flusher.Flush()

	for {
		select {
		case posters, open := <-ch:
			if !open {
				return
			}
			writeSSE(w, flusher, map[string]any{"posters": posters})
		case <-r.Context().Done():
			return
		}
	}
}

// beginEventStream sets the SSE headers and lifts the server-wide write
// deadline: the stream lives as long as the request context, not the
// server's WriteTimeout.
func beginEventStream(w http.ResponseWriter) {
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Printf("[store_stream_handler] WARN: clear write deadline: %v", err)
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", b)
	flusher.Flush()
}
