// Package settings keeps the member's local portal preferences.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/legalchicks/lcen-portal/internal/client/models"
	"github.com/legalchicks/lcen-portal/internal/client/observable"
	"github.com/legalchicks/lcen-portal/internal/client/repositories/metadata"
	"github.com/legalchicks/lcen-portal/internal/logging"
)

var (
	ErrSaveFailed = errors.New("failed to save settings")
	ErrUnknownKey = errors.New("unknown setting")
)

// Service loads and saves settings under the lcen_user_settings key.
type Service struct {
	store   metadata.Repository
	logger  logging.Logger
	current *observable.Value[models.Settings]
}

func NewService(store metadata.Repository, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Service{
		store:   store,
		logger:  logger.With("module", "settings"),
		current: observable.NewValue(models.DefaultSettings()),
	}
}

// Current exposes the observable settings.
func (s *Service) Current() *observable.Value[models.Settings] { return s.current }

// Load reads the stored settings. Missing, unreadable or corrupt values
// give the defaults.
func (s *Service) Load(ctx context.Context) models.Settings {
	v := models.DefaultSettings()
	var stored models.Settings
	ok, err := metadata.GetJSON(ctx, s.store, metadata.KeySettings, &stored)
	switch {
	case err != nil:
		s.logger.Warn(ctx, "stored settings unusable, using defaults", "error", err)
	case ok:
		v = stored
	}
	s.current.Set(v)
	return v
}

// Save stores v and publishes it.
func (s *Service) Save(ctx context.Context, v models.Settings) error {
	if err := metadata.SetJSON(ctx, s.store, metadata.KeySettings, v); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.current.Set(v)
	return nil
}

// Keys lists the names accepted by With.
var Keys = []string{
	"language",
	"darkMode",
	"notifications.newMembers",
	"notifications.weeklySummary",
	"notifications.supplyUpdates",
	"notifications.emailNotifications",
}

// With returns v with the named setting changed.
func With(v models.Settings, key, value string) (models.Settings, error) {
	if key == "language" {
		value = strings.TrimSpace(value)
		if value == "" {
			return v, errors.New("language must not be empty")
		}
		v.Language = value
		return v, nil
	}

	var dst *bool
	switch key {
	case "darkMode":
		dst = &v.DarkMode
	case "notifications.newMembers":
		dst = &v.Notifications.NewMembers
	case "notifications.weeklySummary":
		dst = &v.Notifications.WeeklySummary
	case "notifications.supplyUpdates":
		dst = &v.Notifications.SupplyUpdates
	case "notifications.emailNotifications":
		dst = &v.Notifications.EmailNotifications
	default:
		return v, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return v, fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return v, nil
}
