package tenant

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/theme"
)

const (
	LabelBarbers       = "Barbeiros"
	LabelProfessionals = "Profissionais"
)

// ProfessionalsLabel is how staff is called on a tenant's pages.
func ProfessionalsLabel(businessType string) string {
	if businessType == "" || businessType == models.BusinessTypeBarbershop {
		return LabelBarbers
	}
	return LabelProfessionals
}

// NormalizeSlug trims and lower-cases a slug taken from a URL or a form.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func Colors(b *models.Barbershop) theme.Colors {
	return theme.Colors{
		Primary:    b.PrimaryColor,
		Secondary:  b.SecondaryColor,
		Background: b.BackgroundColor,
		Text:       b.TextColor,
	}
}

// Palette derives the tenant theme. Stored colors that fail to parse fall
// back to the default palette instead of breaking the page.
func Palette(b *models.Barbershop) (theme.Palette, bool) {
	p, err := theme.Derive(Colors(b))
	if err == nil {
		return p, true
	}
	p, _ = theme.Derive(theme.DefaultColors)
	return p, false
}

// Preview is the public listing row for a barbershop.
type Preview struct {
	ID           uint    `json:"id"`
	Slug         string  `json:"slug"`
	Name         string  `json:"name"`
	LogoURL      *string `json:"logo_url"`
	PrimaryColor string  `json:"primary_color"`
}

type Repository interface {
	// FindActiveBySlug returns gorm.ErrRecordNotFound for unknown or
	// inactive slugs.
	FindActiveBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	ListActive(ctx context.Context) ([]Preview, error)
	GetByID(ctx context.Context, id uint) (*models.Barbershop, error)
	Update(ctx context.Context, id uint, fields map[string]any) (*models.Barbershop, error)
}

// Cache stores resolved barbershops by slug. Implementations must treat
// every failure as a miss.
type Cache interface {
	Get(ctx context.Context, slug string) (*models.Barbershop, bool)
	Set(ctx context.Context, b *models.Barbershop, ttl time.Duration)
	Delete(ctx context.Context, slug string)
}

// NopCache is used when no cache backend is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, string) (*models.Barbershop, bool) { return nil, false }
func (NopCache) Set(context.Context, *models.Barbershop, time.Duration) {}
func (NopCache) Delete(context.Context, string)                         {}
