package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

// Client — типизированный клиент удалённого API магазина.
// Контракт бекенда для нас непрозрачный JSON: разбираем только нужные поля,
// лишние молча игнорируем.
type Client struct {
	log  *log.Logger
	base string
	http *http.Client
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

func New(baseURL string, logger *log.Logger) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		log:  logger,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.getJSON(ctx, "/productos", nil, &out); err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id domain.ProductID) (domain.Product, error) {
	var out domain.Product
	if err := c.getJSON(ctx, fmt.Sprintf("/productos/%d", id), nil, &out); err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, err)
	}
	return out, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.getJSON(ctx, "/categorias", nil, &out); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return out, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Product, error) {
	var out []domain.Product
	q := url.Values{"q": {query}}
	if err := c.getJSON(ctx, "/productos/buscar", q, &out); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return out, nil
}

type orderResponse struct {
	ID int64 `json:"id"`
}

// CreateOrder оформляет заказ из позиций корзины. Токен сессии уходит
// бекенду как есть: проверка — его забота.
func (c *Client) CreateOrder(ctx context.Context, token string, items []domain.OrderItem) (int64, error) {
	body, err := json.Marshal(map[string]any{"productos": items})
	if err != nil {
		return 0, fmt.Errorf("marshal order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/pedidos", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	if err := statusErr(resp.StatusCode); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	var out orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode order response: %w", err)
	}
	c.log.Printf("order created id=%d items=%d", out.ID, len(items))
	return out.ID, nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := statusErr(resp.StatusCode); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func statusErr(code int) error {
	switch {
	case code == http.StatusOK || code == http.StatusCreated:
		return nil
	case code == http.StatusNotFound:
		return domain.ErrNotFound
	case code == http.StatusUnauthorized:
		return domain.ErrUnauth
	default:
		return fmt.Errorf("status %d: %w", code, domain.ErrUnexpected)
	}
}
