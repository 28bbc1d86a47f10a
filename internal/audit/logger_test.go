package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/models"
	"github.com/BruksfildServices01/barber-hub/internal/testutil"
)

func TestLoggerListAndPurge(t *testing.T) {
	db := testutil.NewDB(t)
	shop := testutil.CreateBarbershop(t, db, "alpha")
	other := testutil.CreateBarbershop(t, db, "beta")
	l := audit.New(db)
	ctx := context.Background()

	id := uint(7)
	require.NoError(t, l.Log(ctx, audit.Event{
		BarbershopID: shop.ID,
		Action:       audit.ActionTimeOffCreated,
		Entity:       "time_off",
		EntityID:     &id,
		Metadata:     map[string]string{"off_date": "2025-05-20"},
	}))
	require.NoError(t, l.Log(ctx, audit.Event{BarbershopID: shop.ID, Action: audit.ActionAttendanceMarked, Entity: "attendance"}))
	require.NoError(t, l.Log(ctx, audit.Event{BarbershopID: other.ID, Action: audit.ActionAttendanceMarked, Entity: "attendance"}))

	old := time.Now().Add(-400 * 24 * time.Hour)
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", audit.ActionTimeOffCreated).
		Update("created_at", old).Error)

	page, err := l.List(ctx, audit.Filter{BarbershopID: shop.ID, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, audit.ActionAttendanceMarked, page.Logs[0].Action)
	assert.JSONEq(t, `{"off_date":"2025-05-20"}`, page.Logs[1].Metadata)

	page, err = l.List(ctx, audit.Filter{BarbershopID: shop.ID, Entity: "time_off", Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	from := time.Now().Add(-24 * time.Hour)
	page, err = l.List(ctx, audit.Filter{BarbershopID: shop.ID, From: &from, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	n, err := l.Purge(ctx, time.Now().Add(-180*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
