// Package notify publishes user lifecycle messages for asynchronous delivery.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-ddd-auth-core/internal/domain/entity"
	"github.com/oksasatya/go-ddd-auth-core/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-auth-core/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeNotifier enqueues a welcome email job for every new user.
type WelcomeNotifier struct {
	pub     Publisher
	brand   mailtpl.Brand
	timeout time.Duration
}

func NewWelcomeNotifier(pub Publisher, brand mailtpl.Brand) *WelcomeNotifier {
	return &WelcomeNotifier{pub: pub, brand: brand, timeout: 3 * time.Second}
}

func (n *WelcomeNotifier) Name() string { return "welcome_email" }

func (n *WelcomeNotifier) OnUserRegistered(ctx context.Context, u entity.User) error {
	if n.pub == nil {
		return errors.New("welcome notifier has no publisher")
	}
	job := mailer.EmailJob{
		To:       u.Email().Value(),
		Template: mailtpl.Welcome,
		Data: mailtpl.NewWelcomeData(n.brand, u.Username().Value(), u.Email().Value(),
			mailtpl.WithTime(u.CreatedAt())),
	}
	c, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	return n.pub.PublishJSON(c, job)
}
