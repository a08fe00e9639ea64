package images

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jonandervallejo/Ohana-App-sub000/internal/domain"
)

// Prefetcher скачивает нормализованные картинки и складывает байты
// в блоб-кэш. Результат загрузки попадает в Resolver: успех — MarkValid,
// сбой — MarkFailed, после чего Normalize отдаёт "" без похода в сеть.
type Prefetcher struct {
	log   *log.Logger
	res   *Resolver
	blobs domain.BlobStore
	http  *http.Client
}

func NewPrefetcher(res *Resolver, blobs domain.BlobStore, logger *log.Logger) *Prefetcher {
	return &Prefetcher{
		res:   res,
		blobs: blobs,
		log:   logger,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch качает картинку по сырому пути и возвращает ключ блоба.
// Пустой ключ без ошибки — картинки нет (пустой путь или известно-битый URL).
func (p *Prefetcher) Fetch(ctx context.Context, rawPath string) (string, error) {
	u := p.res.Normalize(rawPath)
	if u == "" {
		return "", nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		p.res.MarkFailed(u)
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		p.res.MarkFailed(u)
		p.log.Printf("fetch %s failed: %v", u, err)
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.res.MarkFailed(u)
		p.log.Printf("fetch %s: status %d", u, resp.StatusCode)
		return "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	key, size, err := p.blobs.Put(ctx, resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		// сеть отдала картинку, упал только наш кэш — URL не виноват
		p.log.Printf("store %s failed: %v", u, err)
		return "", fmt.Errorf("store image: %w", err)
	}

	p.res.MarkValid(u)
	p.log.Printf("cached %s -> %s (%d bytes)", u, key, size)
	return key, nil
}
