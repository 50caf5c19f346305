package db_models

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the owner of every other record. Whatsapp and Email are the
// contact points used by reminder delivery.
type Account struct {
	BaseModel
	FullName           string `gorm:"not null" json:"full_name"`
	Email              string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string `gorm:"not null" json:"-"`
	Role               string `gorm:"type:varchar(16);not null" json:"role"`
	Whatsapp           string `json:"whatsapp"`
	Avatar             string `json:"avatar"`
	Timezone           string `gorm:"type:varchar(64);not null" json:"timezone"`
	EmailNotifications bool   `json:"email_notifications"`

	Habits []Habit `gorm:"foreignKey:AccountID" json:"-"`
}
