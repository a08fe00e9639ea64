package cartapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/store/cart"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/logx"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/mw"
	v1 "github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1"
)

// Store — то, что хендлеру нужно от стора корзины.
type Store interface {
	Load(ctx context.Context) []domain.CartLine
	Add(ctx context.Context, line domain.CartLine) cart.AddResult
	Remove(ctx context.Context, p domain.ProductID)
	UpdateQuantity(ctx context.Context, p domain.ProductID, q int)
	Clear(ctx context.Context)
}

type Handler struct {
	Log  *log.Logger
	Cart Store
}

type addResponse struct {
	Added         bool `json:"added"`
	RequiresLogin bool `json:"requires_login,omitempty"`
}

// Get godoc
// @Summary     Cart contents
// @Description Корзина текущей идентичности; у гостя всегда пустая.
// @Tags        cart
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.CartLine}
// @Router      /v1/cart [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "cart.get"
	reqID := mw.RequestIDFromCtx(r.Context())

	lines := h.Cart.Load(r.Context())
	if lines == nil {
		lines = []domain.CartLine{}
	}
	logx.Info(h.Log, reqID, op, "ok", "lines", len(lines))
	v1.WriteOKData(w, r, lines)
}

// Add godoc
// @Summary     Add to cart
// @Description Кладёт товар в корзину. Правило "не больше 5 штук" проверяется
// @Description здесь, до обращения к стору — сам стор верхнюю границу не знает.
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       request body domain.CartLine true "позиция"
// @Success     200 {object} domain.APIEnvelope{response=addResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/cart [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	const op = "cart.add"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	var line domain.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if line.ProductID <= 0 {
		logx.Error(h.Log, reqID, op, "bad product id", domain.ErrBadParams, "id", line.ProductID)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// кап количества: стор при повторном Add инкрементирует, значит
	// уже набранные MaxQuantity штук — отказ до мутации
	for _, l := range h.Cart.Load(r.Context()) {
		if l.ProductID == line.ProductID && l.Quantity >= domain.MaxQuantity {
			logx.Error(h.Log, reqID, op, "quantity cap reached", domain.ErrBadParams, "id", line.ProductID)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	}

	switch h.Cart.Add(r.Context(), line) {
	case cart.Added:
		logx.Info(h.Log, reqID, op, "ok", "id", line.ProductID)
		v1.WriteOKResponse(w, r, addResponse{Added: true})
	case cart.RequiresLogin:
		// экран по этому ответу уводит на логин
		logx.Info(h.Log, reqID, op, "requires login", "id", line.ProductID)
		v1.WriteEnvelope(w, r, http.StatusUnauthorized, domain.Fail(domain.ErrCodeUnauth, "login required"))
	default:
		logx.Error(h.Log, reqID, op, "add failed", domain.ErrUnexpected, "id", line.ProductID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
	}
}

type quantityRequest struct {
	ProductID domain.ProductID `json:"id"`
	Quantity  int              `json:"cantidad"`
}

// UpdateQuantity godoc
// @Summary     Set line quantity
// @Description Количество валидируется здесь: [1,5].
// @Tags        cart
// @Accept      json
// @Produce     json
// @Param       request body quantityRequest true "id, cantidad"
// @Success     200 {object} domain.APIEnvelope{data=string}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/cart/quantity [put]
func (h *Handler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	const op = "cart.quantity"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.ProductID <= 0 || !domain.ValidQuantity(req.Quantity) {
		logx.Error(h.Log, reqID, op, "bad params", domain.ErrBadParams, "id", req.ProductID, "cantidad", req.Quantity)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	h.Cart.UpdateQuantity(r.Context(), req.ProductID, req.Quantity)
	logx.Info(h.Log, reqID, op, "ok", "id", req.ProductID, "cantidad", req.Quantity)
	v1.WriteOKData(w, r, "ok")
}

// Remove godoc
// @Summary     Remove line
// @Tags        cart
// @Produce     json
// @Param       id query int true "id товара"
// @Success     200 {object} domain.APIEnvelope{data=string}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/cart [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	const op = "cart.remove"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil || id <= 0 {
		logx.Error(h.Log, reqID, op, "bad id", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	h.Cart.Remove(r.Context(), id)
	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKData(w, r, "ok")
}

// Clear godoc
// @Summary     Clear cart
// @Tags        cart
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=string}
// @Router      /v1/cart/clear [post]
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	const op = "cart.clear"
	reqID := mw.RequestIDFromCtx(r.Context())

	h.Cart.Clear(r.Context())
	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, "ok")
}
