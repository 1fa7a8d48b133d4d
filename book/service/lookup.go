package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"campusbooks/backend/book/models"
	"campusbooks/backend/pkg/cache"
	apperrors "campusbooks/backend/pkg/errors"
	"campusbooks/backend/pkg/logger"
	"campusbooks/backend/pkg/resilience"
)

// LookupConfig configures the book metadata client.
type LookupConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// LookupClient resolves ISBNs to book metadata through the Google Books
// volumes API. Results are cached in-process; the upstream call is guarded
// by a circuit breaker.
type LookupClient struct {
	config  LookupConfig
	client  *http.Client
	breaker *resilience.CircuitBreaker
	cache   *cache.Cache
	log     *logger.Logger
}

// NewLookupClient creates a metadata lookup client.
func NewLookupClient(config LookupConfig, store *cache.Cache, log *logger.Logger) *LookupClient {
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = time.Hour
	}
	return &LookupClient{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		breaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("books-lookup"), log),
		cache:   store,
		log:     log,
	}
}

// volumesResponse mirrors the slice of the upstream payload we consume.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			Description   string   `json:"description"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// LookupISBN returns metadata for the given ISBN.
func (l *LookupClient) LookupISBN(ctx context.Context, isbn string) (*models.Metadata, error) {
	if isbn == "" {
		return nil, apperrors.NewBadRequestError("MISSING_ISBN", "ISBN is required")
	}

	cacheKey := "isbn:" + isbn
	if l.cache != nil {
		if v, ok := l.cache.Get(cacheKey); ok {
			if meta, ok := v.(*models.Metadata); ok {
				return meta, nil
			}
		}
	}

	// A semantic miss (unknown ISBN) is a healthy upstream answer; only
	// transport and server failures count against the breaker.
	var meta *models.Metadata
	var semanticErr *apperrors.AppError
	err := l.breaker.Execute(func() error {
		var fetchErr error
		meta, fetchErr = l.fetch(ctx, isbn)
		if appErr, ok := fetchErr.(*apperrors.AppError); ok {
			semanticErr = appErr
			return nil
		}
		return fetchErr
	})
	if err != nil {
		l.log.LogError(err, "book metadata lookup failed", "isbn", isbn)
		return nil, apperrors.NewInternalServerError("LOOKUP_FAILED", "Book metadata lookup failed")
	}
	if semanticErr != nil {
		return nil, semanticErr
	}

	if l.cache != nil {
		l.cache.SetWithExpiration(cacheKey, meta, l.config.CacheTTL)
	}
	return meta, nil
}

func (l *LookupClient) fetch(ctx context.Context, isbn string) (*models.Metadata, error) {
	query := url.Values{}
	query.Set("q", "isbn:"+isbn)
	if l.config.APIKey != "" {
		query.Set("key", l.config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.config.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from books API", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if len(payload.Items) == 0 {
		return nil, apperrors.NewNotFoundError("BOOK_NOT_FOUND", "No book found for this ISBN")
	}

	info := payload.Items[0].VolumeInfo
	meta := &models.Metadata{
		Title:         info.Title,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		Thumbnail:     info.ImageLinks.Thumbnail,
	}
	if meta.Authors == nil {
		meta.Authors = []string{}
	}
	return meta, nil
}
