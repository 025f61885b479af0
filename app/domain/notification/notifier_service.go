package notification

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"pantrypal.app/pantry-api-gateway/app/domain/common"
	"pantrypal.app/pantry-api-gateway/app/domain/expiry"
	"pantrypal.app/pantry-api-gateway/app/domain/user"
	"pantrypal.app/pantry-api-gateway/app/infrastructure/cache"
	"pantrypal.app/pantry-api-gateway/app/utils/functional"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
)

const notifierLockTTL = 15 * time.Minute

type NotifierService struct {
	scanner    *expiry.Scanner
	recipients Recipients
	pusher     Pusher
	mailer     Mailer
	locker     common.Locker
}

func NewNotifierService(scanner *expiry.Scanner, recipients Recipients, pusher Pusher, mailer Mailer, locker common.Locker) *NotifierService {
	return &NotifierService{
		scanner:    scanner,
		recipients: recipients,
		pusher:     pusher,
		mailer:     mailer,
		locker:     locker,
	}
}

// Notify alerts every user holding items that expire within a day. Delivery
// failures are counted and logged, they never abort the run.
func (s *NotifierService) Notify(ctx context.Context, now time.Time) (*Summary, error) {
	var summary *Summary
	run := func(ctx context.Context) error {
		var err error
		summary, err = s.notify(ctx, now)
		return err
	}
	if s.locker == nil {
		return summary, run(ctx)
	}
	if err := s.locker.WithLock(ctx, cache.ExpiryNotifierLock, notifierLockTTL, run); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *NotifierService) notify(ctx context.Context, now time.Time) (*Summary, error) {
	grouped, err := s.scanner.Scan(ctx, now)
	if err != nil {
		return nil, err
	}
	log := logger.GetLogger()
	summary := &Summary{Users: len(grouped)}

	userIDs := functional.GetMapKeys(grouped)
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
	for _, userID := range userIDs {
		items := grouped[userID]
		entry := log.WithFields(logrus.Fields{"user_id": userID, "items": len(items)})

		u, err := s.recipients.FindByID(ctx, userID)
		if err != nil || u == nil {
			entry.Errorf("cannot load user for expiry notification: %v", err)
			summary.Failed++
			continue
		}
		msg := ExpiringMessage(len(items))

		token, err := s.recipients.DeviceToken(u)
		if err != nil {
			entry.Errorf("cannot read device token: %v", err)
		}
		if token != "" && s.pusher != nil && s.pusher.Configured() {
			if err := s.pusher.Push(ctx, token, msg); err != nil {
				entry.Errorf("push notification failed: %v", err)
				summary.Failed++
				continue
			}
			summary.Sent++
			continue
		}

		if s.mailer != nil && s.mailer.Configured() && u.Email != "" {
			if err := s.mailer.Send(u.Email, "Ingredients expiring soon", emailBody(msg, items)); err != nil {
				entry.Errorf("expiry e-mail failed: %v", err)
				summary.Failed++
				continue
			}
			summary.Emailed++
			continue
		}

		entry.Warn("no device token for user, skipping expiry notification")
		summary.Skipped++
	}

	log.WithFields(logrus.Fields{
		"users":   summary.Users,
		"sent":    summary.Sent,
		"emailed": summary.Emailed,
		"skipped": summary.Skipped,
		"failed":  summary.Failed,
	}).Info("expiry notification run finished")
	return summary, nil
}

func emailBody(msg Message, items []expiry.ExpiringItem) string {
	var b strings.Builder
	b.WriteString(msg.Alert)
	b.WriteString("\n\n")
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.FoodID
		}
		when := "today"
		if item.DaysLeft == 1 {
			when = "tomorrow"
		}
		b.WriteString("- " + name + " (" + when + ")\n")
	}
	return b.String()
}

var _ Recipients = (*user.UserService)(nil)
