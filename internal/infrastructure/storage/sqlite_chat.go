package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
)

const conciergeColumns = `id, user_id, username, question, answer, vehicle_ids, asked_at`

type sqliteChatRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteChatRepository SQLite asosidagi konsyerj tarixi
func NewSQLiteChatRepository(dbPath string, maxContextSize int) (repository.ChatRepository, func() error, error) {
	if dbPath == "" {
		return nil, nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("db papkasini yaratib bo'lmadi: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite ochilmadi: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS concierge_messages (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	username TEXT NOT NULL DEFAULT '',
	question TEXT NOT NULL,
	answer TEXT NOT NULL DEFAULT '',
	vehicle_ids TEXT NOT NULL DEFAULT '',
	asked_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_concierge_user_asked ON concierge_messages (user_id, asked_at);
`); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("schema yaratib bo'lmadi: %w", err)
	}

	return &sqliteChatRepository{db: db, maxSize: maxContextSize}, db.Close, nil
}

// SaveMessage savol-javobni yozadi va foydalanuvchi tarixini maxSize gacha kesadi
func (s *sqliteChatRepository) SaveMessage(ctx context.Context, message entity.Message) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO concierge_messages (`+conciergeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.ID, message.UserID, message.Username, message.Text, message.Response,
		strings.Join(message.VehicleIDs, ","), message.Timestamp); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if s.maxSize > 0 {
		if _, err = tx.ExecContext(ctx, `
DELETE FROM concierge_messages
WHERE id IN (
	SELECT id FROM concierge_messages WHERE user_id = ?
	ORDER BY asked_at DESC LIMIT -1 OFFSET ?
)`, message.UserID, s.maxSize); err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}

	return tx.Commit()
}

// GetHistory oxirgi limit ta xabar, eski->yangi
func (s *sqliteChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	msgs, err := s.query(ctx, `WHERE user_id = ?`, limit, userID)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// GetAllMessages hamma foydalanuvchilar, yangilari birinchi
func (s *sqliteChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.Message, error) {
	return s.query(ctx, "", limit)
}

// query yangi->eski tartibda o'qiydi
func (s *sqliteChatRepository) query(ctx context.Context, where string, limit int, args ...any) ([]entity.Message, error) {
	q := `SELECT ` + conciergeColumns + ` FROM concierge_messages ` + where + ` ORDER BY asked_at DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var msgs []entity.Message
	for rows.Next() {
		var (
			msg      entity.Message
			vehicles string
			askedAt  time.Time
		)
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Username, &msg.Text, &msg.Response, &vehicles, &askedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		if vehicles != "" {
			msg.VehicleIDs = strings.Split(vehicles, ",")
		}
		msg.Timestamp = askedAt
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

// ClearHistory foydalanuvchi tarixini tozalash
func (s *sqliteChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM concierge_messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// ClearAll barcha suhbatlarni tozalash
func (s *sqliteChatRepository) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM concierge_messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}
