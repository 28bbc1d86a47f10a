package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-hub/internal/db"
	"github.com/BruksfildServices01/barber-hub/internal/models"
)

const TestTimezone = "Africa/Maputo"

// NewDB returns a migrated in-memory SQLite database closed on cleanup.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db, TestTimezone), "migrate")
	return db
}

func CreateBarbershop(t *testing.T, db *gorm.DB, slug string, mutate ...func(*models.Barbershop)) *models.Barbershop {
	t.Helper()

	shop := &models.Barbershop{
		Slug:            slug,
		Name:            "Barbearia " + slug,
		PrimaryColor:    "#D4A017",
		SecondaryColor:  "#2A2A2A",
		BackgroundColor: "#121212",
		TextColor:       "#F5F5F5",
		BusinessType:    models.BusinessTypeBarbershop,
		Timezone:        TestTimezone,
		Active:          true,
	}
	for _, m := range mutate {
		m(shop)
	}

	require.NoError(t, db.Create(shop).Error)
	if !shop.Active {
		// gorm skips zero values that carry a default tag
		require.NoError(t, db.Model(shop).Update("active", false).Error)
	}
	return shop
}

func CreateBarber(t *testing.T, db *gorm.DB, shopID uint, name string, active bool) *models.Barber {
	t.Helper()

	b := &models.Barber{BarbershopID: shopID, Name: name, Active: true}
	require.NoError(t, db.Create(b).Error)
	if !active {
		require.NoError(t, db.Model(b).Update("active", false).Error)
		b.Active = false
	}
	return b
}

func CreateUser(t *testing.T, db *gorm.DB, email, passwordHash string) *models.User {
	t.Helper()

	u := &models.User{Name: "User " + email, Email: email, PasswordHash: passwordHash}
	require.NoError(t, db.Create(u).Error)
	return u
}

func GrantRole(t *testing.T, db *gorm.DB, userID, shopID uint, role string) {
	t.Helper()
	require.NoError(t, db.Create(&models.UserRole{UserID: userID, BarbershopID: shopID, Role: role}).Error)
}

// Date returns a calendar date in the test timezone.
func Date(t *testing.T, s string) time.Time {
	t.Helper()

	loc, err := time.LoadLocation(TestTimezone)
	require.NoError(t, err)
	d, err := time.ParseInLocation("2006-01-02", s, loc)
	require.NoError(t, err)
	return d
}
