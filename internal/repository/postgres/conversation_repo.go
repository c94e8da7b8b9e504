// internal/repository/postgres/conversation_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"homescout-service/internal/domain/conversation"
	xerrors "homescout-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const conversationColumns = `id, buyer_id, realtor_id, property_id, last_message, last_message_at, created_at`

type ConversationRepository struct {
	db *pgxpool.Pool
}

func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

func scanConversation(row pgx.Row) (*conversation.Conversation, error) {
	var c conversation.Conversation
	err := row.Scan(
		&c.ID, &c.BuyerID, &c.RealtorID, &c.PropertyID,
		&c.LastMessage, &c.LastMessageAt, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindOrCreate returns the thread between the two participants on the given
// listing, creating it on first contact.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, c *conversation.Conversation) error {
	query := `
		INSERT INTO conversations (buyer_id, realtor_id, property_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (buyer_id, realtor_id, property_id) DO UPDATE SET buyer_id = EXCLUDED.buyer_id
		RETURNING ` + conversationColumns

	found, err := scanConversation(r.db.QueryRow(ctx, query, c.BuyerID, c.RealtorID, c.PropertyID))
	if err != nil {
		return fmt.Errorf("failed to find or create conversation: %w", err)
	}

	*c = *found
	return nil
}

func (r *ConversationRepository) FindByID(ctx context.Context, id int64) (*conversation.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`

	c, err := scanConversation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	return c, nil
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID int64) ([]conversation.Conversation, error) {
	query := `
		SELECT ` + conversationColumns + `
		FROM conversations
		WHERE buyer_id = $1 OR realtor_id = $1
		ORDER BY last_message_at DESC NULLS LAST, created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	conversations := []conversation.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, *c)
	}

	return conversations, rows.Err()
}

// AddMessage inserts the message and refreshes the thread preview in one
// transaction.
func (r *ConversationRepository) AddMessage(ctx context.Context, m *conversation.Message) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertMessage := `
		INSERT INTO messages (conversation_id, sender_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err = tx.QueryRow(ctx, insertMessage, m.ConversationID, m.SenderID, m.Body).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	updatePreview := `
		UPDATE conversations
		SET last_message = $1, last_message_at = $2
		WHERE id = $3
	`
	if _, err := tx.Exec(ctx, updatePreview, m.Body, m.CreatedAt, m.ConversationID); err != nil {
		return fmt.Errorf("failed to update conversation preview: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID int64, limit int) ([]conversation.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	query := `
		SELECT id, conversation_id, sender_id, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []conversation.Message{}
	for rows.Next() {
		var m conversation.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
