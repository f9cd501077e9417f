package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists messages in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the transcript database and initializes the
// schema.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	// WAL mode allows readers alongside the single writer.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers well.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	schema := `
	-- seq gives a total order even when two messages share a timestamp.
	CREATE TABLE IF NOT EXISTS messages (
		seq             INTEGER PRIMARY KEY AUTOINCREMENT,
		message_id      TEXT NOT NULL UNIQUE,
		conversation_id TEXT NOT NULL,
		role            TEXT NOT NULL,
		content         TEXT NOT NULL,
		created_unix    INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_messages_conversation
		ON messages(conversation_id, seq);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Append persists one message.
func (s *Store) Append(ctx context.Context, m Message) error {
	query := `
		INSERT INTO messages (message_id, conversation_id, role, content, created_unix)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query, m.ID, m.ConversationID, string(m.Role), m.Content, m.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// Recent returns the last n messages of a conversation in chronological
// order.
func (s *Store) Recent(ctx context.Context, conversationID string, n int) ([]Message, error) {
	query := `
		SELECT message_id, conversation_id, role, content, created_unix
		FROM messages
		WHERE conversation_id = ?
		ORDER BY seq DESC
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, conversationID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		var role string
		var createdUnix int64
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &m.Content, &createdUnix); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Role = Role(role)
		m.CreatedAt = time.Unix(createdUnix, 0).UTC()
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	// Query returned newest-first; callers want chronological.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// Get returns one message by ID.
func (s *Store) Get(ctx context.Context, messageID string) (Message, error) {
	query := `
		SELECT message_id, conversation_id, role, content, created_unix
		FROM messages
		WHERE message_id = ?
	`
	var m Message
	var role string
	var createdUnix int64
	err := s.db.QueryRowContext(ctx, query, messageID).Scan(&m.ID, &m.ConversationID, &role, &m.Content, &createdUnix)
	if err != nil {
		return Message{}, fmt.Errorf("failed to load message %s: %w", messageID, err)
	}
	m.Role = Role(role)
	m.CreatedAt = time.Unix(createdUnix, 0).UTC()
	return m, nil
}

// Count returns the number of messages in a conversation.
func (s *Store) Count(ctx context.Context, conversationID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = ?`, conversationID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return n, nil
}
