package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpRequest struct {
	FullName string `json:"full_name" binding:"required,min=2,max=80"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Whatsapp string `json:"whatsapp" binding:"omitempty,max=32"`
	Timezone string `json:"timezone" binding:"omitempty,max=64"`
}

// UpdateProfileRequest carries only the fields the caller wants to change.
type UpdateProfileRequest struct {
	FullName           *string `json:"full_name" binding:"omitempty,min=2,max=80"`
	Whatsapp           *string `json:"whatsapp" binding:"omitempty,max=32"`
	Avatar             *string `json:"avatar" binding:"omitempty,max=64"`
	Timezone           *string `json:"timezone" binding:"omitempty,max=64"`
	EmailNotifications *bool   `json:"email_notifications"`
}
