package models

import "time"

const BusinessTypeBarbershop = "barbearia"

type Barbershop struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Slug           string  `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name           string  `gorm:"size:100;not null" json:"name"`
	LogoURL        *string `gorm:"size:500" json:"logo_url"`
	WhatsappNumber *string `gorm:"size:20" json:"whatsapp_number"`

	PrimaryColor    string `gorm:"size:7;not null" json:"primary_color"`
	SecondaryColor  string `gorm:"size:7;not null" json:"secondary_color"`
	BackgroundColor string `gorm:"size:7;not null" json:"background_color"`
	TextColor       string `gorm:"size:7;not null" json:"text_color"`

	OpeningTime *string `gorm:"size:5" json:"opening_time"`
	ClosingTime *string `gorm:"size:5" json:"closing_time"`

	BusinessType string `gorm:"size:30;default:'barbearia'" json:"business_type"`
	Timezone     string `gorm:"size:64" json:"timezone"`
	Active       bool   `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
