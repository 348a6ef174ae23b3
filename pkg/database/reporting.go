package database

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	// sqlx 走 pgx 的 database/sql 驱动
	_ "github.com/jackc/pgx/v5/stdlib"
)

// InitReportingDB 初始化报表查询专用的 sqlx 连接
// 统计聚合类 SQL 用 sqlx 直接写，绕过 GORM，连接池独立且更小，
// 避免慢报表查询挤占在线请求的连接
func InitReportingDB() *sqlx.DB {
	db, err := sqlx.Open("pgx", DSN())
	if err != nil {
		log.Fatalf("Failed to open reporting database: %v", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping reporting database: %v", err)
	}

	log.Println("Reporting database connection established")
	return db
}
