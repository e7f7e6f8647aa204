package gamesession

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/core"
	"github.com/eskrenkovic/trivia-lobby-go/internal/modules/game-session/domain"

	"github.com/eskrenkovic/tql"
)

type gameSessionRecord struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	State   string `db:"state"`
	Topics  []byte `db:"topics"`
	Players []byte `db:"players"`
}

// PostgresRepository stores each session as a single row, with the
// topic and player lists in jsonb columns. The aggregate is always
// written whole - there is no per-topic or per-player row to keep in
// sync with the in-memory invariants.
type PostgresRepository struct {
	db *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.GameSession, error) {
	const query = `
		SELECT
			id, name, state, topics, players
		FROM
			game_session
		WHERE
			id = $1;`

	record, err := tql.QueryFirst[gameSessionRecord](ctx, r.db, query, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, domain.DatabaseError{Inner: err}
	}

	dto := GameSessionDTO{
		ID:    record.ID,
		Name:  record.Name,
		State: record.State,
	}

	if err := json.Unmarshal(record.Topics, &dto.Topics); err != nil {
		return nil, domain.DatabaseError{Inner: err}
	}

	if err := json.Unmarshal(record.Players, &dto.Players); err != nil {
		return nil, domain.DatabaseError{Inner: err}
	}

	session, err := ToGameSessionEntity(dto)
	if err != nil {
		return nil, domain.DatabaseError{Inner: err}
	}

	return session, nil
}

func (r *PostgresRepository) Save(ctx context.Context, session *domain.GameSession) error {
	dto := ToGameSessionDTO(session)

	topics, err := json.Marshal(dto.Topics)
	if err != nil {
		return domain.DatabaseError{Inner: err}
	}

	players, err := json.Marshal(dto.Players)
	if err != nil {
		return domain.DatabaseError{Inner: err}
	}

	record := gameSessionRecord{
		ID:      dto.ID,
		Name:    dto.Name,
		State:   dto.State,
		Topics:  topics,
		Players: players,
	}

	// The aggregate is replaced whole so a concurrent reader never
	// observes a row with the old name and the new topic list.
	txFn := func(ctx context.Context, tx *sql.Tx) error {
		const deleteStmt = `
			DELETE FROM
				game_session
			WHERE
				id = $1;`
		if _, err := tql.Exec(ctx, tx, deleteStmt, record.ID); err != nil {
			return err
		}

		const insertStmt = `
			INSERT INTO
				game_session (id, name, state, topics, players)
			VALUES
				(:id, :name, :state, :topics, :players);`
		_, err := tql.Exec(ctx, tx, insertStmt, record)
		return err
	}

	if err := core.Tx(ctx, r.db, txFn); err != nil {
		return domain.DatabaseError{Inner: err}
	}

	return nil
}
