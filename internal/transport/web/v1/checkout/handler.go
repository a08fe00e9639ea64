package checkout

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/logx"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/mw"
	v1 "github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1"
)

// Orders — то, что хендлеру нужно от клиента каталога.
type Orders interface {
	CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (int64, error)
}

// Cart — корзина для оформления: прочитать и опустошить после успеха.
type Cart interface {
	Load(ctx context.Context) []domain.CartLine
	Clear(ctx context.Context)
}

type Handler struct {
	Log    *log.Logger
	Cart   Cart
	Orders Orders
	KV     domain.KeyedStore
}

type checkoutResponse struct {
	OrderID int64 `json:"order_id"`
	Items   int   `json:"items"`
}

// Checkout godoc
// @Summary     Create order from cart
// @Description Отправляет позиции корзины бекенду и опустошает корзину при успехе.
// @Tags        checkout
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{response=checkoutResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/checkout [post]
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "checkout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	lines := h.Cart.Load(r.Context())
	if len(lines) == 0 {
		logx.Error(h.Log, reqID, op, "cart empty", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	token, ok, err := h.KV.Get(r.Context(), domain.KeyUserToken)
	if err != nil || !ok || strings.TrimSpace(token) == "" {
		logx.Error(h.Log, reqID, op, "no session token", domain.ErrUnauth)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}

	orderID, err := h.Orders.CreateOrder(r.Context(), token, items)
	if err != nil {
		logx.Error(h.Log, reqID, op, "create order failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Cart.Clear(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "order_id", orderID, "items", len(items))
	v1.WriteOKResponse(w, r, checkoutResponse{OrderID: orderID, Items: len(items)})
}
