package localdb

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"go.uber.org/zap"
)

var DBClient *sql.DB

func SetupDB(dbPath string) (*sql.DB, error) {
	if DBClient != nil {
		return DBClient, nil
	}

	// WALモードとBusy Timeoutを設定
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// SQLiteは単一ライターなので接続プールを1に制限
	db.SetMaxOpenConns(1)

	// 上流APIのトークン使用量（モデル単位で集計。抽選結果や占い本文は保存しない）
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS openai_usage (
		model TEXT PRIMARY KEY,
		requests INTEGER NOT NULL DEFAULT 0,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		cost_usd REAL NOT NULL DEFAULT 0,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		_ = db.Close()
		logger.Error("Failed to create openai_usage table", zap.Error(err))
		return nil, fmt.Errorf("failed to create openai_usage table: %w", err)
	}

	DBClient = db
	logger.Debug("Database ready", zap.String("path", dbPath))
	return db, nil
}

func GetDB() *sql.DB {
	return DBClient
}

// Close closes the shared connection and clears DBClient.
func Close() error {
	if DBClient == nil {
		return nil
	}
	err := DBClient.Close()
	DBClient = nil
	return err
}
