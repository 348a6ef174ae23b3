package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockStatRepository(t *testing.T) (StatRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewStatRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestGetSummary(t *testing.T) {
	repo, mock := newMockStatRepository(t)

	rows := sqlmock.NewRows([]string{"total_views", "total_visits", "review_count", "average_rating"}).
		AddRow(int64(120), int64(35), int64(8), 4.5)
	mock.ExpectQuery("SELECT").WithArgs("store-1").WillReturnRows(rows)

	summary, err := repo.GetSummary("store-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(120), summary.TotalViews)
	assert.Equal(t, int64(35), summary.TotalVisits)
	assert.Equal(t, int64(8), summary.ReviewCount)
	assert.InDelta(t, 4.5, summary.AverageRating, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSummaryEmptyStore(t *testing.T) {
	repo, mock := newMockStatRepository(t)

	// 没有任何统计和评价时全部回落为 0
	rows := sqlmock.NewRows([]string{"total_views", "total_visits", "review_count", "average_rating"}).
		AddRow(int64(0), int64(0), int64(0), 0.0)
	mock.ExpectQuery("SELECT").WithArgs("store-2").WillReturnRows(rows)

	summary, err := repo.GetSummary("store-2")

	assert.NoError(t, err)
	assert.Zero(t, summary.TotalViews)
	assert.Zero(t, summary.ReviewCount)
}

func TestGetDailySeries(t *testing.T) {
	repo, mock := newMockStatRepository(t)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"date", "views", "visits"}).
		AddRow(from, int64(10), int64(2)).
		AddRow(from.AddDate(0, 0, 1), int64(15), int64(4))
	mock.ExpectQuery("SELECT date, views, visits").
		WithArgs("store-1", "2025-06-01", "2025-06-03").
		WillReturnRows(rows)

	stats, err := repo.GetDailySeries("store-1", from, to)

	assert.NoError(t, err)
	assert.Len(t, stats, 2)
	assert.Equal(t, int64(10), stats[0].Views)
	assert.Equal(t, int64(4), stats[1].Visits)
	assert.NoError(t, mock.ExpectationsWereMet())
}
