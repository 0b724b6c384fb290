package repository

import (
	"context"
	"testing"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newDryRunDB builds statements without a server; captured holds the SQL of
// the last update.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	var captured string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	}))
	return db, &captured
}

func TestDoctorRepository_UpdateLeavesUserLinkAlone(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewDoctorRepository(db)

	staleLink := uuid.New()
	doctor := &entity.Doctor{
		ID:             uuid.New(),
		UserID:         &staleLink,
		Name:           "Dr. Rivera",
		Email:          "rivera@example.com",
		Specialization: "Cardiology",
		TicketPrice:    decimal.RequireFromString("120.00"),
	}

	require.NoError(t, repo.Update(context.Background(), doctor))

	require.NotEmpty(t, *captured)
	assert.Contains(t, *captured, `UPDATE "doctors" SET`)
	assert.Contains(t, *captured, `"specialization"`)
	assert.Contains(t, *captured, `"ticket_price"`)
	assert.NotContains(t, *captured, "user_id")
}
