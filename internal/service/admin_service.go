package service

import (
	"context"
	"fmt"
	"sort"

	"pdf-smart-tools/internal/domain"
)

// RecentActivityLimit is the number of activities shown on the dashboard
const RecentActivityLimit = 20

// UnknownEmail is shown for activities whose user has no profile
const UnknownEmail = "Unknown"

type adminService struct {
	repo   domain.UsageRepository
	logger domain.Logger
}

// NewAdminService creates the admin dashboard service. repo may be nil when
// no usage store is configured.
func NewAdminService(repo domain.UsageRepository, logger domain.Logger) *adminService {
	return &adminService{repo: repo, logger: logger}
}

// Dashboard aggregates users, per-tool usage and the latest activity
func (s *adminService) Dashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	if s.repo == nil {
		return nil, domain.ErrUsageStoreDisabled
	}

	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	toolNames, err := s.repo.ListToolNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load usage logs: %w", err)
	}

	recent, err := s.repo.Recent(ctx, RecentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	if profiles == nil {
		profiles = []domain.Profile{}
	}

	s.logger.Debug("Admin dashboard built", "users", len(profiles), "usage", len(toolNames))

	return &domain.AdminDashboard{
		Users:          profiles,
		TotalUsage:     len(toolNames),
		UsageStats:     UsageStats(toolNames),
		RecentActivity: joinActivity(recent, profiles),
	}, nil
}

// UsageStats counts tool names, most used first. Ties are ordered by name.
func UsageStats(toolNames []string) []domain.UsageStat {
	counts := make(map[string]int)
	for _, name := range toolNames {
		counts[name]++
	}

	stats := make([]domain.UsageStat, 0, len(counts))
	for name, count := range counts {
		stats = append(stats, domain.UsageStat{ToolName: name, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].ToolName < stats[j].ToolName
	})
	return stats
}

func joinActivity(logs []domain.UsageLog, profiles []domain.Profile) []domain.Activity {
	emails := make(map[string]string, len(profiles))
	for _, p := range profiles {
		emails[p.ID] = p.Email
	}

	activity := make([]domain.Activity, 0, len(logs))
	for _, l := range logs {
		email := emails[l.UserID]
		if email == "" {
			email = UnknownEmail
		}
		activity = append(activity, domain.Activity{UsageLog: l, Email: email})
	}
	return activity
}
