package repository

import (
	"time"

	"deal_market/internal/domain/store/model"

	"github.com/jmoiron/sqlx"
)

// StatRepository 统计报表查询，走 sqlx 专用连接
type StatRepository interface {
	GetSummary(storeID string) (*model.StatSummary, error)
	GetDailySeries(storeID string, from, to time.Time) ([]model.DailyStat, error)
}

type statRepository struct {
	db *sqlx.DB
}

func NewStatRepository(db *sqlx.DB) StatRepository {
	return &statRepository{db: db}
}

// GetSummary 浏览/到店总量 + 已发布评价的数量和均分
func (r *statRepository) GetSummary(storeID string) (*model.StatSummary, error) {
	var summary model.StatSummary
	query := `
		SELECT
			COALESCE((SELECT SUM(views)  FROM partner_stats WHERE store_id = $1), 0) AS total_views,
			COALESCE((SELECT SUM(visits) FROM partner_stats WHERE store_id = $1), 0) AS total_visits,
			COALESCE((SELECT COUNT(*)    FROM reviews WHERE store_id = $1 AND published AND deleted_at IS NULL), 0) AS review_count,
			COALESCE((SELECT AVG(rating) FROM reviews WHERE store_id = $1 AND published AND deleted_at IS NULL), 0) AS average_rating`
	if err := r.db.Get(&summary, query, storeID); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetDailySeries 日期区间内的每日浏览/到店序列
func (r *statRepository) GetDailySeries(storeID string, from, to time.Time) ([]model.DailyStat, error) {
	var stats []model.DailyStat
	query := `
		SELECT date, views, visits
		FROM partner_stats
		WHERE store_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`
	if err := r.db.Select(&stats, query, storeID, from.Format("2006-01-02"), to.Format("2006-01-02")); err != nil {
		return nil, err
	}
	return stats, nil
}
