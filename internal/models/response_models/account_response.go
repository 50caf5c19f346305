package response_models

import "github.com/google/uuid"

type AccountLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type AccountResponse struct {
	ID                 uuid.UUID `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	Whatsapp           string    `json:"whatsapp"`
	Avatar             string    `json:"avatar"`
	Timezone           string    `json:"timezone"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          int64     `json:"created_at"`
}
