package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/havenpoint/recovery-platform/internal/api/metrics"
	"github.com/havenpoint/recovery-platform/internal/core/domain"
	"github.com/havenpoint/recovery-platform/internal/core/ports"
)

const defaultFanoutLimit = 16

type feedService struct {
	profiles    ports.ProfileRepository
	enrollments ports.EnrollmentRepository
	events      ports.HouseEventRepository
	fanoutLimit int
	log         zerolog.Logger
}

// NewFeedService returns a FeedService implementation. fanoutLimit caps the
// number of tenant partitions read in parallel for one feed request; a
// resident enrolled in more tenants than the cap sees the oldest
// enrollments' tenants only.
func NewFeedService(
	profiles ports.ProfileRepository,
	enrollments ports.EnrollmentRepository,
	events ports.HouseEventRepository,
	fanoutLimit int,
	log zerolog.Logger,
) ports.FeedService {
	if fanoutLimit <= 0 {
		fanoutLimit = defaultFanoutLimit
	}
	return &feedService{
		profiles:    profiles,
		enrollments: enrollments,
		events:      events,
		fanoutLimit: fanoutLimit,
		log:         log,
	}
}

// Feed assembles the merged event feed for the principal's linked resident:
// resolve the resident's granting enrollments via the cross-tenant secondary
// index, read each tenant's events in parallel, then merge-sort. The merge
// key includes the tenant id because event ids are tenant-scoped.
func (s *feedService) Feed(ctx context.Context, p domain.Principal, from time.Time) ([]ports.FeedItem, error) {
	profile, err := s.profiles.FindByUID(ctx, p.UID)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	if profile.ResidentID == "" {
		return nil, domain.ErrResidentNotLinked
	}

	all, err := s.enrollments.ListByResident(ctx, profile.ResidentID)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}

	tenantIDs := make([]string, 0, len(all))
	for _, e := range all {
		if e.Status.Grants() {
			tenantIDs = append(tenantIDs, e.TenantID)
		}
	}
	if len(tenantIDs) > s.fanoutLimit {
		s.log.Warn().
			Str("resident_id", profile.ResidentID).
			Int("enrollments", len(tenantIDs)).
			Int("limit", s.fanoutLimit).
			Msg("feed fan-out capped")
		tenantIDs = tenantIDs[:s.fanoutLimit]
	}
	metrics.FeedFanoutTenants.Observe(float64(len(tenantIDs)))

	if len(tenantIDs) == 0 {
		return []ports.FeedItem{}, nil
	}

	// One read per tenant partition, joined before merging. Results land in
	// a pre-sized slice indexed by goroutine, so no locking is needed.
	perTenant := make([][]*domain.HouseEvent, len(tenantIDs))
	errs := make([]error, len(tenantIDs))
	var wg sync.WaitGroup
	for i, tenantID := range tenantIDs {
		wg.Add(1)
		go func(i int, tenantID string) {
			defer wg.Done()
			perTenant[i], errs[i] = s.events.ListByTenant(ctx, tenantID, from)
		}(i, tenantID)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("feed: tenant %s: %w", tenantIDs[i], err)
		}
	}

	seen := make(map[string]struct{})
	items := make([]ports.FeedItem, 0)
	for _, events := range perTenant {
		for _, ev := range events {
			key := ev.TenantID + ":" + ev.ID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, ports.FeedItem{
				TenantID:    ev.TenantID,
				EventID:     ev.ID,
				HouseID:     ev.HouseID,
				Title:       ev.Title,
				Description: ev.Description,
				StartsAt:    ev.StartsAt,
				EndsAt:      ev.EndsAt,
			})
		}
	}

	// Deterministic order: start time, then tenant, then event id.
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.StartsAt.Equal(b.StartsAt) {
			return a.StartsAt.Before(b.StartsAt)
		}
		if a.TenantID != b.TenantID {
			return a.TenantID < b.TenantID
		}
		return a.EventID < b.EventID
	})

	return items, nil
}
