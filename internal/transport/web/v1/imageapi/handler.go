package imageapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/logx"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/mw"
	v1 "github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1"
)

// Resolver — то, что хендлеру нужно от резолвера картинок.
type Resolver interface {
	Normalize(raw string) string
	MarkValid(url string)
	MarkFailed(url string)
	Reset()
}

// Prefetcher скачивает картинку в блоб-кэш. nil, если префетч выключен.
type Prefetcher interface {
	Fetch(ctx context.Context, rawPath string) (string, error)
}

// Blobs отдаёт кэшированные байты. nil, если префетч выключен.
type Blobs interface {
	Get(ctx context.Context, storageKey string) (io.ReadCloser, int64, string, error)
}

type Handler struct {
	Log      *log.Logger
	Images   Resolver
	Prefetch Prefetcher
	Blobs    Blobs
}

type resolveResponse struct {
	URL string `json:"url"` // "" — показывать плейсхолдер
}

// Resolve godoc
// @Summary     Normalize image path
// @Description Приводит сырой путь к абсолютному URL; пустой url — плейсхолдер.
// @Tags        images
// @Produce     json
// @Param       path query string true "сырой путь картинки"
// @Success     200 {object} domain.APIEnvelope{response=resolveResponse}
// @Router      /v1/images/resolve [get]
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	const op = "images.resolve"
	reqID := mw.RequestIDFromCtx(r.Context())

	u := h.Images.Normalize(r.URL.Query().Get("path"))
	logx.Info(h.Log, reqID, op, "ok", "url", u)
	v1.WriteOKResponse(w, r, resolveResponse{URL: u})
}

type markRequest struct {
	URL string `json:"url"`
	OK  bool   `json:"ok"`
}

// Mark godoc
// @Summary     Report image load result
// @Description Экран сообщает, загрузилась ли картинка; упавшие URL дальше
// @Description резолвятся в плейсхолдер без похода в сеть.
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       request body markRequest true "url, ok"
// @Success     200 {object} domain.APIEnvelope{data=string}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/images/mark [post]
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	const op = "images.mark"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req markRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		logx.Error(h.Log, reqID, op, "bad params", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if req.OK {
		h.Images.MarkValid(req.URL)
	} else {
		h.Images.MarkFailed(req.URL)
	}
	logx.Info(h.Log, reqID, op, "ok", "url", req.URL, "valid", req.OK)
	v1.WriteOKData(w, r, "ok")
}

// Reset godoc
// @Summary     Reset image cache
// @Description Сброс обоих наборов; зовётся при уходе с экрана и retry.
// @Tags        images
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=string}
// @Router      /v1/images/reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	const op = "images.reset"
	reqID := mw.RequestIDFromCtx(r.Context())

	h.Images.Reset()
	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, "ok")
}

type prefetchRequest struct {
	Path string `json:"path"`
}

type prefetchResponse struct {
	Key string `json:"key"` // "" — картинки нет
}

// Prefetch godoc
// @Summary     Prefetch image into blob cache
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       request body prefetchRequest true "path"
// @Success     200 {object} domain.APIEnvelope{response=prefetchResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/images/prefetch [post]
func (h *Handler) DoPrefetch(w http.ResponseWriter, r *http.Request) {
	const op = "images.prefetch"
	reqID := mw.RequestIDFromCtx(r.Context())

	if h.Prefetch == nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	var req prefetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	key, err := h.Prefetch.Fetch(r.Context(), req.Path)
	if err != nil {
		// упавший URL уже помечен, экран покажет плейсхолдер
		logx.Error(h.Log, reqID, op, "fetch failed", err, "path", req.Path)
		v1.WriteOKResponse(w, r, prefetchResponse{Key: ""})
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "key", key)
	v1.WriteOKResponse(w, r, prefetchResponse{Key: key})
}

// Blob godoc
// @Summary     Serve cached image bytes
// @Tags        images
// @Produce     octet-stream
// @Param       key query string true "ключ блоба (sha256/...)"
// @Success     200
// @Failure     400 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Router      /v1/images/blob [get]
func (h *Handler) Blob(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		v1.WriteError(w, http.StatusBadRequest, "missing key")
		return
	}
	if h.Blobs == nil {
		v1.WriteError(w, http.StatusNotFound, "blob cache disabled")
		return
	}

	rc, size, contentType, err := h.Blobs.Get(r.Context(), key)
	if err != nil {
		h.Log.Printf("blob %s: %v", key, err)
		v1.WriteError(w, http.StatusNotFound, "not found")
		return
	}
	defer rc.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	_, _ = io.Copy(w, rc)
}
