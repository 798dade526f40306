package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"galeri_app_echo/internal/models"
)

// Labels shown when a record is missing or cannot be fetched.
const (
	FallbackPersonName  = "Unknown"
	FallbackRecordTitle = "Untitled"
)

// Title kinds, as passed to Forget.
const (
	TitleKindCreator       = "creator"
	TitleKindUser          = "user"
	TitleKindPrompt        = "prompt"
	TitleKindCollection    = "collection"
	TitleKindExhibit       = "exhibit"
	TitleKindPortfolioItem = "portfolio_item"
)

// TitleService resolves display titles for breadcrumb labels. Every method
// returns a fallback instead of an error so pages can always render.
type TitleService struct {
	db    *gorm.DB
	cache *RedisCache
	ttl   time.Duration
	log   *zap.Logger
}

// NewTitleService creates a TitleService. cache may be nil.
func NewTitleService(db *gorm.DB, cache *RedisCache, ttl time.Duration, log *zap.Logger) *TitleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &TitleService{db: db, cache: cache, ttl: ttl, log: log}
}

// CreatorName returns the display name of the creator with this handle.
func (s *TitleService) CreatorName(ctx context.Context, handle string) string {
	if handle == "" {
		return FallbackPersonName
	}
	return s.lookup(ctx, TitleKindCreator, handle, FallbackPersonName, func(db *gorm.DB) (string, error) {
		var user models.User
		if err := db.Select("name", "handle").Where("handle = ?", handle).First(&user).Error; err != nil {
			return "", err
		}
		return user.DisplayName(), nil
	})
}

// UserName returns the display name of the user with this numeric id.
func (s *TitleService) UserName(ctx context.Context, id string) string {
	n, ok := parseID(id)
	if !ok {
		return FallbackPersonName
	}
	return s.lookup(ctx, TitleKindUser, id, FallbackPersonName, func(db *gorm.DB) (string, error) {
		var user models.User
		if err := db.Select("name", "handle").First(&user, n).Error; err != nil {
			return "", err
		}
		return user.DisplayName(), nil
	})
}

func (s *TitleService) PromptTitle(ctx context.Context, id string) string {
	return s.recordTitle(ctx, TitleKindPrompt, &models.Prompt{}, id)
}

func (s *TitleService) CollectionTitle(ctx context.Context, id string) string {
	return s.recordTitle(ctx, TitleKindCollection, &models.Collection{}, id)
}

func (s *TitleService) ExhibitTitle(ctx context.Context, id string) string {
	return s.recordTitle(ctx, TitleKindExhibit, &models.Exhibit{}, id)
}

func (s *TitleService) PortfolioItemTitle(ctx context.Context, id string) string {
	return s.recordTitle(ctx, TitleKindPortfolioItem, &models.PortfolioItem{}, id)
}

// Forget drops a cached title after the record was renamed.
func (s *TitleService) Forget(ctx context.Context, kind, id string) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheKey(kind, id)); err != nil {
		s.log.Warn("failed to drop cached title", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
	}
}

// recordTitle reads the title column of model by numeric id.
func (s *TitleService) recordTitle(ctx context.Context, kind string, model interface{}, id string) string {
	n, ok := parseID(id)
	if !ok {
		return FallbackRecordTitle
	}
	return s.lookup(ctx, kind, id, FallbackRecordTitle, func(db *gorm.DB) (string, error) {
		var titles []string
		if err := db.Model(model).Where("id = ?", n).Limit(1).Pluck("title", &titles).Error; err != nil {
			return "", err
		}
		if len(titles) == 0 {
			return "", gorm.ErrRecordNotFound
		}
		return titles[0], nil
	})
}

func (s *TitleService) lookup(ctx context.Context, kind, id, fallback string, fetch func(*gorm.DB) (string, error)) string {
	if s == nil || s.db == nil {
		return fallback
	}

	load := func() (string, error) {
		return fetch(s.db.WithContext(ctx))
	}

	var title string
	var err error
	if s.cache != nil {
		title, err = GetOrSet(s.cache, ctx, cacheKey(kind, id), s.ttl, load)
	} else {
		title, err = load()
	}

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("title lookup failed", zap.String("kind", kind), zap.String("id", id), zap.Error(err))
		}
		return fallback
	}
	if strings.TrimSpace(title) == "" {
		return fallback
	}
	return title
}

func cacheKey(kind, id string) string {
	return "title:" + kind + ":" + id
}

func parseID(id string) (uint64, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
