package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/kim-DL/onnuri-inven/internal/apierror"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const expiryDaysCacheKey = "settings:expiry_warning_days"

// SettingsService serves the expiry-warning threshold with a read-through
// Redis cache. The cache is a performance optimization only: it is
// invalidated on write and treated as eventually consistent, and a nil Redis
// client (unit tests, degraded mode) falls straight through to the database.
type SettingsService interface {
	GetExpiryWarningDays(ctx context.Context) (int, error)
	SetExpiryWarningDays(ctx context.Context, actor *model.UserProfile, days int) error
}

type settingsService struct {
	repo repository.SettingRepository
	rdb  *redis.Client
}

func NewSettingsService(repo repository.SettingRepository, rdb *redis.Client) SettingsService {
	return &settingsService{repo: repo, rdb: rdb}
}

func (s *settingsService) GetExpiryWarningDays(ctx context.Context) (int, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, expiryDaysCacheKey).Result(); err == nil {
			if days, convErr := strconv.Atoi(cached); convErr == nil {
				return days, nil
			}
		}
	}

	days := model.DefaultExpiryWarningDays
	setting, err := s.repo.Get(ctx, model.SettingKeyExpiryWarningDays)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	} else {
		days = setting.Value
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, expiryDaysCacheKey, strconv.Itoa(days), 0).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to cache expiry warning days")
		}
	}
	return days, nil
}

func (s *settingsService) SetExpiryWarningDays(ctx context.Context, actor *model.UserProfile, days int) error {
	if !actor.IsAdmin() {
		return apierror.AdminOnly()
	}
	if days < 1 || days > 365 {
		return apierror.InvalidDays()
	}
	if err := s.repo.Upsert(ctx, model.SettingKeyExpiryWarningDays, days); err != nil {
		return err
	}
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, expiryDaysCacheKey).Err(); err != nil {
			// Stale reads self-correct on the next cache miss; don't fail the write.
			log.Warn().Err(err).Msg("failed to invalidate expiry warning days cache")
		}
	}
	return nil
}
