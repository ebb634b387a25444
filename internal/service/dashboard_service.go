package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kim-DL/onnuri-inven/internal/dto"
	"github.com/kim-DL/onnuri-inven/internal/expiry"
	"github.com/kim-DL/onnuri-inven/internal/model"
	"github.com/kim-DL/onnuri-inven/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ExpiryAlertsKey is the redis key the periodic scan publishes to and the
// dashboard reads through.
const ExpiryAlertsKey = "alerts:expiry"

const expiryAlertsTTL = 24 * time.Hour

type DashboardService interface {
	Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error)
	// ExpiryAlerts serves the last published scan result; on a cache miss it
	// computes the alerts inline so the endpoint never goes dark when the
	// worker is down.
	ExpiryAlerts(ctx context.Context) (*dto.ExpiryAlertsResponse, error)
	// RefreshExpiryAlerts recomputes the alerts and publishes them to redis.
	// The background scan calls this on a schedule.
	RefreshExpiryAlerts(ctx context.Context) (*dto.ExpiryAlertsResponse, error)
}

type dashboardService struct {
	productRepo repository.ProductRepository
	zoneRepo    repository.ZoneRepository
	inventory   InventoryService
	settings    SettingsService
	rdb         *redis.Client
}

func NewDashboardService(
	productRepo repository.ProductRepository,
	zoneRepo repository.ZoneRepository,
	inventory InventoryService,
	settings SettingsService,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		productRepo: productRepo,
		zoneRepo:    zoneRepo,
		inventory:   inventory,
		settings:    settings,
		rdb:         rdb,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (*dto.DashboardSummaryResponse, error) {
	total, err := s.productRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	byZone, unzoned, err := s.productRepo.CountActiveByZone(ctx)
	if err != nil {
		return nil, err
	}
	zones, err := s.zoneRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.inventory.RecentActivity(ctx, RecentActivityLimit)
	if err != nil {
		return nil, err
	}

	counts := make([]dto.ZoneCount, 0, len(zones))
	for _, z := range zones {
		counts = append(counts, dto.ZoneCount{
			ZoneID: z.ID.String(),
			Name:   z.Name,
			Count:  byZone[z.ID],
		})
	}

	return &dto.DashboardSummaryResponse{
		TotalProducts:  total,
		ZoneCounts:     counts,
		UnzonedCount:   unzoned,
		RecentActivity: recent,
	}, nil
}

func (s *dashboardService) ExpiryAlerts(ctx context.Context) (*dto.ExpiryAlertsResponse, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, ExpiryAlertsKey).Result()
		if err == nil {
			var resp dto.ExpiryAlertsResponse
			if jsonErr := json.Unmarshal([]byte(raw), &resp); jsonErr == nil {
				return &resp, nil
			}
			log.Warn().Str("key", ExpiryAlertsKey).Msg("discarding malformed cached alerts")
		} else if err != redis.Nil {
			log.Warn().Err(err).Msg("expiry alerts cache read failed")
		}
	}
	return s.RefreshExpiryAlerts(ctx)
}

func (s *dashboardService) RefreshExpiryAlerts(ctx context.Context) (*dto.ExpiryAlertsResponse, error) {
	resp, err := s.computeExpiryAlerts(ctx)
	if err != nil {
		return nil, err
	}
	if s.rdb != nil {
		raw, err := json.Marshal(resp)
		if err == nil {
			if err := s.rdb.Set(ctx, ExpiryAlertsKey, raw, expiryAlertsTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("expiry alerts cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *dashboardService) computeExpiryAlerts(ctx context.Context) (*dto.ExpiryAlertsResponse, error) {
	threshold, err := s.settings.GetExpiryWarningDays(ctx)
	if err != nil {
		threshold = model.DefaultExpiryWarningDays
	}
	products, err := s.productRepo.ListExpiring(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alerts := make([]dto.ExpiryAlert, 0)
	for i := range products {
		p := &products[i]
		status := expiry.Classify(p.ExpiryDate, now, threshold)
		if status == expiry.StatusNone {
			continue
		}
		alerts = append(alerts, dto.ExpiryAlert{
			ProductID:  p.ID.String(),
			Name:       p.Name,
			ExpiryDate: p.ExpiryDate.In(expiry.Location).Format(dateLayout),
			DaysLeft:   expiry.DaysLeft(*p.ExpiryDate, now),
			Status:     string(status),
		})
	}

	return &dto.ExpiryAlertsResponse{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Alerts:      alerts,
	}, nil
}
