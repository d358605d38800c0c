package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"go-player-tracker/internal/interfaces"
	"go-player-tracker/internal/models"
	"go-player-tracker/internal/storage/sqlite/migrations"
	"go-player-tracker/internal/storage/sqlitemigrate"
)

// Ensure Store implements the repository interfaces
var (
	_ interfaces.PlayerRepository   = (*Store)(nil)
	_ interfaces.SnapshotRepository = (*Store)(nil)
)

const dsnPragmas = "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Store provides SQLite-backed player and snapshot persistence
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens the tracker database at path and applies migrations
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}

	db, err := sql.Open("sqlite", filepath.Clean(path)+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, "", logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Opened SQLite store", zap.String("path", path))

	return &Store{db: db, logger: logger}, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FindPlayer looks a player up by canonical username
func (s *Store) FindPlayer(ctx context.Context, username string) (*models.Player, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var (
		player                 models.Player
		createdAt, lastFetched int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, username, created_at, last_fetched_at
FROM players
WHERE username = ?
`, username).Scan(&player.ID, &player.Username, &createdAt, &lastFetched)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("find player: %w", err)
	}

	player.CreatedAt = time.UnixMilli(createdAt).UTC()
	// 0 until the first snapshot is saved
	if lastFetched != 0 {
		player.LastFetchedAt = time.UnixMilli(lastFetched).UTC()
	}
	return &player, true, nil
}

// CreatePlayer inserts the player if absent and returns the stored row.
// Concurrent calls for the same username converge on one row.
func (s *Store) CreatePlayer(ctx context.Context, username string, at time.Time) (*models.Player, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" {
		return nil, errors.New("username is required")
	}

	ms := at.UTC().UnixMilli()
	if _, err := s.db.ExecContext(ctx, `
INSERT INTO players (username, created_at, last_fetched_at)
VALUES (?, ?, 0)
ON CONFLICT(username) DO NOTHING
`, username, ms); err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	player, found, err := s.FindPlayer(ctx, username)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("create player: %s missing after insert", username)
	}
	return player, nil
}

// SaveSnapshot upserts the player and appends the snapshot with its skills and
// quests in one transaction. It returns the new snapshot id.
func (s *Store) SaveSnapshot(ctx context.Context, record *models.SnapshotRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if record == nil || strings.TrimSpace(record.Username) == "" {
		return 0, errors.New("snapshot username is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	takenAt := record.TakenAt.UTC().UnixMilli()

	var playerID int64
	if err := tx.QueryRowContext(ctx, `
INSERT INTO players (username, created_at, last_fetched_at)
VALUES (?, ?, ?)
ON CONFLICT(username) DO UPDATE SET last_fetched_at = excluded.last_fetched_at
RETURNING id
`, record.Username, takenAt, takenAt).Scan(&playerID); err != nil {
		return 0, fmt.Errorf("upsert player: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
INSERT INTO player_snapshots (
	player_id,
	taken_at,
	rank,
	total_xp,
	total_skill,
	combat_level,
	logged_in,
	quests_completed,
	quests_in_progress,
	quests_not_started
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		playerID,
		takenAt,
		record.Rank,
		record.TotalXP,
		record.TotalSkill,
		record.CombatLevel,
		record.LoggedIn,
		record.QuestsCompleted,
		record.QuestsInProgress,
		record.QuestsNotStarted,
	)
	if err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	snapshotID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("snapshot id: %w", err)
	}

	if err := insertSkills(ctx, tx, snapshotID, record.Skills); err != nil {
		return 0, err
	}
	if err := insertQuests(ctx, tx, snapshotID, record.Quests); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit snapshot: %w", err)
	}

	record.ID = snapshotID
	record.PlayerID = playerID
	return snapshotID, nil
}

func insertSkills(ctx context.Context, tx *sql.Tx, snapshotID int64, skills []models.SkillRow) error {
	if len(skills) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO snapshot_skills (snapshot_id, name, xp, rank, level) VALUES (?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare skill insert: %w", err)
	}
	defer stmt.Close()

	for _, skill := range skills {
		if _, err := stmt.ExecContext(ctx, snapshotID, string(skill.Name), skill.XP, skill.Rank, skill.Level); err != nil {
			return fmt.Errorf("insert skill %s: %w", skill.Name, err)
		}
	}
	return nil
}

func insertQuests(ctx context.Context, tx *sql.Tx, snapshotID int64, quests []models.QuestRow) error {
	if len(quests) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO snapshot_quests (
	snapshot_id, title, status, difficulty, members, quest_points, user_eligible
) VALUES (?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare quest insert: %w", err)
	}
	defer stmt.Close()

	for _, quest := range quests {
		if _, err := stmt.ExecContext(ctx,
			snapshotID,
			quest.Title,
			string(quest.Status),
			quest.Difficulty,
			quest.Members,
			quest.QuestPoints,
			quest.UserEligible,
		); err != nil {
			return fmt.Errorf("insert quest %q: %w", quest.Title, err)
		}
	}
	return nil
}

const snapshotColumns = `
	s.id,
	s.player_id,
	p.username,
	s.taken_at,
	s.rank,
	s.total_xp,
	s.total_skill,
	s.combat_level,
	s.logged_in,
	s.quests_completed,
	s.quests_in_progress,
	s.quests_not_started`

// ListSnapshots returns up to limit snapshots of a player, newest first
func (s *Store) ListSnapshots(ctx context.Context, username string, limit int) ([]models.SnapshotRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, errors.New("limit must be greater than zero")
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT`+snapshotColumns+`
FROM player_snapshots s
JOIN players p ON p.id = s.player_id
WHERE p.username = ?
ORDER BY s.taken_at DESC, s.id DESC
LIMIT ?
`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	records, err := scanSnapshots(rows)
	if err != nil {
		return nil, err
	}

	for i := range records {
		if err := s.loadChildren(ctx, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// FirstSnapshotSince returns the oldest snapshot taken at or after since
func (s *Store) FirstSnapshotSince(ctx context.Context, username string, since time.Time) (*models.SnapshotRecord, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT`+snapshotColumns+`
FROM player_snapshots s
JOIN players p ON p.id = s.player_id
WHERE p.username = ? AND s.taken_at >= ?
ORDER BY s.taken_at ASC, s.id ASC
LIMIT 1
`, username, since.UTC().UnixMilli())
	if err != nil {
		return nil, false, fmt.Errorf("first snapshot since: %w", err)
	}

	records, err := scanSnapshots(rows)
	if err != nil {
		return nil, false, err
	}
	if len(records) == 0 {
		return nil, false, nil
	}

	record := records[0]
	if err := s.loadChildren(ctx, &record); err != nil {
		return nil, false, err
	}
	return &record, true, nil
}

func scanSnapshots(rows *sql.Rows) ([]models.SnapshotRecord, error) {
	defer rows.Close()

	var records []models.SnapshotRecord
	for rows.Next() {
		var (
			record  models.SnapshotRecord
			takenAt int64
		)
		if err := rows.Scan(
			&record.ID,
			&record.PlayerID,
			&record.Username,
			&takenAt,
			&record.Rank,
			&record.TotalXP,
			&record.TotalSkill,
			&record.CombatLevel,
			&record.LoggedIn,
			&record.QuestsCompleted,
			&record.QuestsInProgress,
			&record.QuestsNotStarted,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		record.TakenAt = time.UnixMilli(takenAt).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return records, nil
}

func (s *Store) loadChildren(ctx context.Context, record *models.SnapshotRecord) error {
	skillRows, err := s.db.QueryContext(ctx, `
SELECT name, xp, rank, level FROM snapshot_skills WHERE snapshot_id = ? ORDER BY id
`, record.ID)
	if err != nil {
		return fmt.Errorf("load skills: %w", err)
	}
	defer skillRows.Close()

	record.Skills = []models.SkillRow{}
	for skillRows.Next() {
		var skill models.SkillRow
		if err := skillRows.Scan(&skill.Name, &skill.XP, &skill.Rank, &skill.Level); err != nil {
			return fmt.Errorf("scan skill: %w", err)
		}
		record.Skills = append(record.Skills, skill)
	}
	if err := skillRows.Err(); err != nil {
		return fmt.Errorf("iterate skills: %w", err)
	}

	questRows, err := s.db.QueryContext(ctx, `
SELECT title, status, difficulty, members, quest_points, user_eligible
FROM snapshot_quests WHERE snapshot_id = ? ORDER BY id
`, record.ID)
	if err != nil {
		return fmt.Errorf("load quests: %w", err)
	}
	defer questRows.Close()

	record.Quests = []models.QuestRow{}
	for questRows.Next() {
		var quest models.QuestRow
		if err := questRows.Scan(
			&quest.Title,
			&quest.Status,
			&quest.Difficulty,
			&quest.Members,
			&quest.QuestPoints,
			&quest.UserEligible,
		); err != nil {
			return fmt.Errorf("scan quest: %w", err)
		}
		record.Quests = append(record.Quests, quest)
	}
	if err := questRows.Err(); err != nil {
		return fmt.Errorf("iterate quests: %w", err)
	}
	return nil
}
