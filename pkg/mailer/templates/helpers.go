package templates

import (
	"time"
)

// Brand holds the product details every email carries.
type Brand struct {
	AppName    string
	SupportURL string
	LoginURL   string
}

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func NewBaseEmailData(b Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:       name,
		Email:      email,
		Type:       typ,
		AppName:    b.AppName,
		SupportURL: b.SupportURL,
		LoginURL:   b.LoginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewWelcomeData builds the data map for the welcome template.
func NewWelcomeData(b Brand, username, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, username, email, opts...))
}
