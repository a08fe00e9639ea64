package favorites

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/logx"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/mw"
	v1 "github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1"
)

// Store — то, что хендлеру нужно от стора избранного.
type Store interface {
	Load(ctx context.Context) []domain.ProductID
	IsFavorite(p domain.ProductID) bool
	Toggle(ctx context.Context, p domain.ProductID) bool
}

type Handler struct {
	Log  *log.Logger
	Favs Store
}

type toggleRequest struct {
	ProductID domain.ProductID `json:"id"`
}

type toggleResponse struct {
	ProductID domain.ProductID `json:"id"`
	Favorite  bool             `json:"favorite"`
}

// List godoc
// @Summary     List favorites
// @Description Избранное текущей идентичности (перечитывает хранилище).
// @Tags        favorites
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]int64}
// @Router      /v1/favorites [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "favorites.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	ids := h.Favs.Load(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "count", len(ids))
	v1.WriteOKData(w, r, ids)
}

type containsResponse struct {
	ProductID domain.ProductID `json:"id"`
	Favorite  bool             `json:"favorite"`
}

// Contains godoc
// @Summary     Is product a favorite
// @Description Синхронная проверка по снимку в памяти, хранилище не трогает.
// @Tags        favorites
// @Produce     json
// @Param       id query int true "id товара"
// @Success     200 {object} domain.APIEnvelope{response=containsResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/favorites/contains [get]
func (h *Handler) Contains(w http.ResponseWriter, r *http.Request) {
	const op = "favorites.contains"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		logx.Error(h.Log, reqID, op, "bad id", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	fav := h.Favs.IsFavorite(id)
	logx.Info(h.Log, reqID, op, "ok", "id", id, "favorite", fav)
	v1.WriteOKResponse(w, r, containsResponse{ProductID: id, Favorite: fav})
}

// Toggle godoc
// @Summary     Toggle favorite
// @Description Переключает товар в избранном; в ответе — новое состояние.
// @Tags        favorites
// @Accept      json
// @Produce     json
// @Param       request body toggleRequest true "id товара"
// @Success     200 {object} domain.APIEnvelope{response=toggleResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/favorites/toggle [post]
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	const op = "favorites.toggle"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.ProductID <= 0 {
		logx.Error(h.Log, reqID, op, "bad product id", domain.ErrBadParams, "id", req.ProductID)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	fav := h.Favs.Toggle(r.Context(), req.ProductID)
	logx.Info(h.Log, reqID, op, "ok", "id", req.ProductID, "favorite", fav)
	v1.WriteOKResponse(w, r, toggleResponse{ProductID: req.ProductID, Favorite: fav})
}
