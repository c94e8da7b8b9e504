// internal/domain/push/entity.go
package push

import "time"

// Subscription is a stored Web Push registration. Endpoint plus the p256dh
// and auth keys are everything the push service needs to reach the browser.
type Subscription struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256DH    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
