package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-hub/internal/domain/attendance"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/infra/repository"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/testutil"
)

func TestPurgeResetTokens(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAccountGormRepository(db)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@b.test", "x")

	now := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
	used := now.Add(-time.Minute)

	tokens := []*models.PasswordResetToken{
		{UserID: user.ID, TokenHash: "expired", ExpiresAt: now.Add(-time.Hour)},
		{UserID: user.ID, TokenHash: "used", ExpiresAt: now.Add(time.Hour), UsedAt: &used},
		{UserID: user.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)},
	}
	for _, tok := range tokens {
		require.NoError(t, repo.CreateResetToken(ctx, tok))
	}

	n, err := repo.PurgeResetTokens(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = repo.FindResetToken(ctx, "live")
	assert.NoError(t, err)
	_, err = repo.FindResetToken(ctx, "used")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCreateOwnerRejectsDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAccountGormRepository(db)
	ctx := context.Background()

	newShop := func(slug string) *models.Barbershop {
		return &models.Barbershop{
			Slug: slug, Name: slug, Timezone: testutil.TestTimezone, Active: true,
			PrimaryColor: "#000000", SecondaryColor: "#000000",
			BackgroundColor: "#000000", TextColor: "#FFFFFF",
		}
	}

	require.NoError(t, repo.CreateOwner(ctx, newShop("one"), &models.User{Name: "A", Email: "a@x.test", PasswordHash: "h"}))

	err := repo.CreateOwner(ctx, newShop("one"), &models.User{Name: "B", Email: "b@x.test", PasswordHash: "h"})
	assert.True(t, httperr.IsBusiness(err, "slug_already_exists"), "got %v", err)

	err = repo.CreateOwner(ctx, newShop("two"), &models.User{Name: "B", Email: "a@x.test", PasswordHash: "h"})
	assert.True(t, httperr.IsBusiness(err, "email_already_exists"), "got %v", err)

	var shops int64
	require.NoError(t, db.Model(&models.Barbershop{}).Count(&shops).Error)
	assert.Equal(t, int64(1), shops, "failed registrations roll back")
}

func TestDeleteTimeOffIsTenantScoped(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAttendanceGormRepository(db)
	ctx := context.Background()

	alpha := testutil.CreateBarbershop(t, db, "alpha")
	beta := testutil.CreateBarbershop(t, db, "beta")
	b := testutil.CreateBarber(t, db, alpha.ID, "Ana", true)

	off := &models.ProfessionalTimeOff{BarberID: b.ID, BarbershopID: alpha.ID, OffDate: "2030-01-02"}
	require.NoError(t, repo.CreateTimeOff(ctx, off))

	_, err := repo.DeleteTimeOff(ctx, beta.ID, off.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err := repo.DeleteTimeOff(ctx, alpha.ID, off.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-01-02", deleted.OffDate)

	left, err := repo.ListTimeOffFrom(ctx, alpha.ID, "2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestMarkAttendanceRefusesTimeOffDay(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAttendanceGormRepository(db)
	ctx := context.Background()

	shop := testutil.CreateBarbershop(t, db, "alpha")
	b := testutil.CreateBarber(t, db, shop.ID, "Ana", true)
	require.NoError(t, repo.CreateTimeOff(ctx, &models.ProfessionalTimeOff{
		BarberID: b.ID, BarbershopID: shop.ID, OffDate: "2030-01-02",
	}))

	mark := func(date string) error {
		return repo.MarkAttendance(ctx, &models.ProfessionalAttendance{
			BarberID: b.ID, BarbershopID: shop.ID, AttendanceDate: date,
			Status: "present", MarkedAt: time.Now().UTC(),
		})
	}

	assert.ErrorIs(t, mark("2030-01-02"), attendance.ErrOnTimeOff)
	require.NoError(t, mark("2030-01-03"))

	var n int64
	require.NoError(t, db.Model(&models.ProfessionalAttendance{}).Where("barber_id = ?", b.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	err := repo.CreateTimeOff(ctx, &models.ProfessionalTimeOff{BarberID: 999, BarbershopID: shop.ID, OffDate: "2030-01-02"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "time-off needs an existing barber")
}

func TestUpsertWeekOverwrites(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewScheduleGormRepository(db)
	ctx := context.Background()

	shop := testutil.CreateBarbershop(t, db, "alpha")
	b := testutil.CreateBarber(t, db, shop.ID, "Ana", true)
	start := "09:00"

	require.NoError(t, repo.UpsertWeek(ctx, []models.ProfessionalSchedule{
		{BarberID: b.ID, BarbershopID: shop.ID, DayOfWeek: 1, IsWorkingDay: true, StartTime: &start},
	}))
	require.NoError(t, repo.UpsertWeek(ctx, []models.ProfessionalSchedule{
		{BarberID: b.ID, BarbershopID: shop.ID, DayOfWeek: 1, IsWorkingDay: false},
	}))

	rows, err := repo.ListForBarber(ctx, shop.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].IsWorkingDay)
	assert.Nil(t, rows[0].StartTime)
}

func TestBarbershopUpdateUnknownID(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewBarbershopGormRepository(db)

	_, err := repo.Update(context.Background(), 404, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
