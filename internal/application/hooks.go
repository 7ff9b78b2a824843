package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
)

// RegistrationHook reacts to a user that has already been persisted.
type RegistrationHook interface {
	Name() string
	OnUserRegistered(ctx context.Context, u entity.User) error
}

// RunRegistrationHooks runs every hook, logs failures and returns how many
// failed. Hooks are best-effort: an error never undoes the registration.
func RunRegistrationHooks(ctx context.Context, logger *logrus.Logger, hooks []RegistrationHook, u entity.User) int {
	failed := 0
	for _, h := range hooks {
		if h == nil {
			continue
		}
		if err := h.OnUserRegistered(ctx, u); err != nil {
			failed++
			if logger != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"hook":    h.Name(),
					"user_id": u.ID().String(),
				}).Warn("registration hook failed")
			}
		}
	}
	return failed
}
