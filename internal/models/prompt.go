package models

import "time"

// Prompt is a shareable text artifact owned by a single user.
type Prompt struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Category    string    `gorm:"index;size:100;not null" json:"category"`
	Agent       string    `gorm:"index;size:100;not null" json:"agent"`
	Tags        Tags      `json:"tags" swaggertype:"array,string"`
	IsPublic    bool      `gorm:"index;not null" json:"is_public"`
	LikesCount  int       `gorm:"not null;default:0;check:likes_count >= 0" json:"likes_count"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Prompt) TableName() string {
	return "prompts"
}
