// Package notifications keeps the member's in-portal notification feed,
// persisted under the lcen_notifications key.
package notifications

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/client/observable"
	"github.com/legalchicks/lcen-portal/internal/client/repositories/metadata"
	"github.com/legalchicks/lcen-portal/internal/logging"
)

// RecentLimit caps Recent.
const RecentLimit = 10

// New is what a caller supplies to Add; id, timestamp and read state are
// assigned by the service.
type New struct {
	Type        models.NotificationType
	Title       string
	Message     string
	ActionURL   string
	ActionLabel string
}

// Service owns the notification list. Persistence errors are logged and do
// not fail the in-memory change.
type Service struct {
	store  metadata.Repository
	logger logging.Logger
	now    func() time.Time
	list   *observable.Value[[]models.Notification]
}

func NewService(store metadata.Repository, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Service{
		store:  store,
		logger: logger.With("module", "notifications"),
		now:    time.Now,
		list:   observable.NewValue[[]models.Notification](nil),
	}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List exposes the observable list. Published slices must not be modified.
func (s *Service) List() *observable.Value[[]models.Notification] { return s.list }

// Load reads the stored feed and seeds the demo notifications when it is empty.
func (s *Service) Load(ctx context.Context) {
	var stored []models.Notification
	if _, err := metadata.GetJSON(ctx, s.store, metadata.KeyNotifications, &stored); err != nil {
		s.logger.Warn(ctx, "load notifications", "error", err)
		stored = nil
	}
	if len(stored) == 0 {
		stored = demo(s.now())
		s.save(ctx, stored)
	}
	s.list.Set(stored)
}

func demo(now time.Time) []models.Notification {
	return []models.Notification{
		{
			ID:          "1",
			Type:        models.NotificationSuccess,
			Title:       "Welcome to LCEN!",
			Message:     "Your account has been successfully activated. Start exploring the portal!",
			Timestamp:   now.Add(-24 * time.Hour),
			ActionURL:   "/dashboard/overview",
			ActionLabel: "Go to Dashboard",
		},
		{
			ID:          "2",
			Type:        models.NotificationInfo,
			Title:       "New Supply Available",
			Message:     "Day-Old RIR Chicks are now available for order. Place your order now!",
			Timestamp:   now.Add(-time.Hour),
			ActionURL:   "/dashboard/supplies",
			ActionLabel: "View Supplies",
		},
		{
			ID:          "3",
			Type:        models.NotificationInfo,
			Title:       "Weekly Summary Ready",
			Message:     "Your farm performance summary for this week is ready to view.",
			Timestamp:   now.Add(-2 * time.Hour),
			Read:        true,
			ActionURL:   "/dashboard/analytics",
			ActionLabel: "View Summary",
		},
	}
}

// All returns a copy of every notification, newest added first.
func (s *Service) All() []models.Notification {
	return slices.Clone(s.list.Get())
}

func (s *Service) UnreadCount() int {
	n := 0
	for _, v := range s.list.Get() {
		if !v.Read {
			n++
		}
	}
	return n
}

// Recent returns up to RecentLimit notifications, newest timestamp first.
func (s *Service) Recent() []models.Notification {
	out := slices.Clone(s.list.Get())
	slices.SortStableFunc(out, func(a, b models.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}

// Add prepends an unread notification stamped now.
func (s *Service) Add(ctx context.Context, n New) models.Notification {
	now := s.now()
	var added models.Notification
	list := s.list.Update(func(cur []models.Notification) []models.Notification {
		added = models.Notification{
			ID:          nextID(cur, now),
			Type:        n.Type,
			Title:       n.Title,
			Message:     n.Message,
			Timestamp:   now,
			ActionURL:   n.ActionURL,
			ActionLabel: n.ActionLabel,
		}
		return append([]models.Notification{added}, cur...)
	})
	s.save(ctx, list)
	return added
}

// nextID uses the millisecond clock, stepping past ids already taken.
func nextID(cur []models.Notification, now time.Time) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if !slices.ContainsFunc(cur, func(n models.Notification) bool { return n.ID == id }) {
			return id
		}
		ms++
	}
}

// MarkAsRead reports whether id was found.
func (s *Service) MarkAsRead(ctx context.Context, id string) bool {
	found := false
	s.mutate(ctx, func(cur []models.Notification) []models.Notification {
		out := slices.Clone(cur)
		for i := range out {
			if out[i].ID == id {
				out[i].Read = true
				found = true
			}
		}
		return out
	})
	return found
}

func (s *Service) MarkAllAsRead(ctx context.Context) {
	s.mutate(ctx, func(cur []models.Notification) []models.Notification {
		out := slices.Clone(cur)
		for i := range out {
			out[i].Read = true
		}
		return out
	})
}

// Remove reports whether id was found.
func (s *Service) Remove(ctx context.Context, id string) bool {
	found := false
	s.mutate(ctx, func(cur []models.Notification) []models.Notification {
		return slices.DeleteFunc(slices.Clone(cur), func(n models.Notification) bool {
			if n.ID == id {
				found = true
				return true
			}
			return false
		})
	})
	return found
}

func (s *Service) ClearAll(ctx context.Context) {
	s.mutate(ctx, func([]models.Notification) []models.Notification {
		return []models.Notification{}
	})
}

func (s *Service) mutate(ctx context.Context, fn func([]models.Notification) []models.Notification) {
	s.save(ctx, s.list.Update(fn))
}

func (s *Service) save(ctx context.Context, list []models.Notification) {
	if list == nil {
		list = []models.Notification{}
	}
	if err := metadata.SetJSON(ctx, s.store, metadata.KeyNotifications, list); err != nil {
		s.logger.Error(ctx, "save notifications", "error", err)
	}
}
