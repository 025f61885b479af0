package notification

import (
	"context"
	"fmt"

	"pantrypal.app/pantry-api-gateway/app/domain/user"
)

type Message struct {
	Alert string
	Sound string
	Badge int
}

func ExpiringMessage(count int) Message {
	return Message{
		Alert: fmt.Sprintf("You have %d ingredient(s) expiring soon.", count),
		Sound: "default",
		Badge: 1,
	}
}

type Pusher interface {
	Configured() bool
	Push(ctx context.Context, deviceToken string, msg Message) error
}

type Mailer interface {
	Configured() bool
	Send(to string, subject string, body string) error
}

type Recipients interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
	DeviceToken(u *user.User) (string, error)
}

type Summary struct {
	Users   int `json:"users"`
	Sent    int `json:"sent"`
	Emailed int `json:"emailed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
