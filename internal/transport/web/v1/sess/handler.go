package sess

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/logx"
	"github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/mw"
	v1 "github.com/jonandervallejo/Ohana-App-sub000/internal/transport/web/v1"
)

// Manager — то, что хендлеру нужно от менеджера сессии.
type Manager interface {
	Save(ctx context.Context, token string, u domain.SessionUser) error
	Clear(ctx context.Context) error
}

type Handler struct {
	Log     *log.Logger
	Session Manager
	Ids     domain.IdentityResolver
}

type loginRequest struct {
	Token string             `json:"token"`
	User  domain.SessionUser `json:"user"`
}

type sessionResponse struct {
	Identity domain.IdentityKey `json:"identity"`
}

// Login godoc
// @Summary     Save session
// @Description Сохраняет токен и запись пользователя, выданные бекендом при логине.
// @Tags        session
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "token, user"
// @Success     200 {object} domain.APIEnvelope{response=sessionResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/session [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "session.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if strings.TrimSpace(req.Token) == "" {
		logx.Error(h.Log, reqID, op, "empty token", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Session.Save(r.Context(), req.Token, req.User); err != nil {
		logx.Error(h.Log, reqID, op, "save session failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	id := h.Ids.Resolve(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "identity", id)
	v1.WriteOKResponse(w, r, sessionResponse{Identity: id})
}

// Logout godoc
// @Summary     Clear session
// @Description Стирает запись сессии. Сохранённые избранное и корзина остаются.
// @Tags        session
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{response=sessionResponse}
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/session [delete]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "session.logout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	if err := h.Session.Clear(r.Context()); err != nil {
		logx.Error(h.Log, reqID, op, "clear session failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKResponse(w, r, sessionResponse{Identity: domain.IdentityAnonymous})
}

// Whoami godoc
// @Summary     Current identity
// @Tags        session
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{response=sessionResponse}
// @Router      /v1/session [get]
func (h *Handler) Whoami(w http.ResponseWriter, r *http.Request) {
	const op = "session.whoami"
	reqID := mw.RequestIDFromCtx(r.Context())

	id := h.Ids.Resolve(r.Context())
	logx.Info(h.Log, reqID, op, "ok", "identity", id)
	v1.WriteOKResponse(w, r, sessionResponse{Identity: id})
}
