// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/melloom/Vocalix-sub005/internal/metrics"
	"github.com/melloom/Vocalix-sub005/internal/models"
)

// DuckDBConfig contains configuration for the DuckDB-backed store.
type DuckDBConfig struct {
	// Path is the database file path. ":memory:" opens an in-memory
	// database.
	Path string `json:"path"`

	// Threads is the DuckDB thread count. Zero means NumCPU.
	Threads int `json:"threads"`

	// MaxMemory is the DuckDB memory limit (e.g. "512MB").
	MaxMemory string `json:"max_memory"`
}

// DuckDB is a ContentStore backed by a DuckDB database file. Topic metrics
// and reply counts are derived in SQL at snapshot time rather than
// maintained incrementally, trading a little snapshot latency for zero
// aggregate-drift bugs.
type DuckDB struct {
	conn *sql.DB
	cfg  DuckDBConfig
}

// NewDuckDB opens (creating if needed) the database file and initializes
// the schema.
func NewDuckDB(cfg DuckDBConfig) (*DuckDB, error) {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "512MB"
	}

	// Ensure the parent directory exists; 0750 per gosec G301.
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." && cfg.Path != ":memory:" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DuckDB{conn: conn, cfg: cfg}
	if err := db.createTables(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core tables.
func (db *DuckDB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS clips (
			id TEXT PRIMARY KEY,
			creator_id TEXT,
			created_at TIMESTAMP NOT NULL,
			listens BIGINT NOT NULL DEFAULT 0,
			reactions TEXT,
			completion_rate DOUBLE,
			topic_id TEXT,
			tags TEXT,
			content_rating TEXT NOT NULL DEFAULT 'general',
			moderation TEXT,
			parent_id TEXT,
			remix_of_id TEXT,
			chain_id TEXT,
			status TEXT NOT NULL DEFAULT 'live',
			city TEXT,
			trending_score DOUBLE NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			topic_date DATE NOT NULL,
			active BOOLEAN NOT NULL DEFAULT true,
			creator_id TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS listen_events (
			id TEXT PRIMARY KEY,
			viewer_id TEXT NOT NULL,
			clip_id TEXT NOT NULL,
			listened_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id TEXT NOT NULL,
			followee_id TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (follower_id, followee_id)
		)`,
		`CREATE TABLE IF NOT EXISTS viewers (
			id TEXT PRIMARY KEY,
			city TEXT,
			sensitive_content_allowed BOOLEAN NOT NULL DEFAULT false,
			blocked_creators TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clips_topic ON clips(topic_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clips_parent ON clips(parent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_listens_viewer ON listen_events(viewer_id, listened_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}

// Snapshot loads the full content set and derives topic metrics and reply
// counts.
func (db *DuckDB) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	start := time.Now()

	clips, err := db.loadClips(ctx)
	if err != nil {
		metrics.RecordDBQuery("SELECT", "clips", time.Since(start), err)
		return nil, err
	}
	topics, err := db.loadTopics(ctx)
	if err != nil {
		return nil, err
	}
	listens, err := db.loadListens(ctx)
	if err != nil {
		return nil, err
	}
	follows, err := db.loadFollows(ctx)
	if err != nil {
		return nil, err
	}

	replyCounts := deriveReplyCounts(clips)
	for i := range clips {
		clips[i].ReplyCount = replyCounts[clips[i].ID]
	}

	metrics.RecordDBQuery("SELECT", "clips", time.Since(start), nil)

	return &models.Snapshot{
		Clips:   clips,
		Topics:  topics,
		Metrics: deriveTopicMetrics(clips),
		Listens: listens,
		Follows: follows,
		TakenAt: time.Now(),
	}, nil
}

// loadClips reads every clip, newest first.
func (db *DuckDB) loadClips(ctx context.Context) ([]models.Clip, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, creator_id, created_at, listens, reactions, completion_rate,
		       topic_id, tags, content_rating, moderation, parent_id,
		       remix_of_id, chain_id, status, city, trending_score
		FROM clips
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query clips: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var clips []models.Clip
	for rows.Next() {
		var (
			clip           models.Clip
			creatorID      sql.NullString
			reactions      sql.NullString
			completionRate sql.NullFloat64
			topicID        sql.NullString
			tags           sql.NullString
			rating         sql.NullString
			moderation     sql.NullString
			parentID       sql.NullString
			remixOfID      sql.NullString
			chainID        sql.NullString
			status         sql.NullString
			city           sql.NullString
		)
		if err := rows.Scan(&clip.ID, &creatorID, &clip.CreatedAt, &clip.Listens,
			&reactions, &completionRate, &topicID, &tags, &rating, &moderation,
			&parentID, &remixOfID, &chainID, &status, &city, &clip.TrendingScore); err != nil {
			return nil, fmt.Errorf("failed to scan clip: %w", err)
		}

		clip.CreatorID = creatorID.String
		clip.TopicID = topicID.String
		clip.ContentRating = models.ContentRating(rating.String)
		clip.ParentID = parentID.String
		clip.RemixOfID = remixOfID.String
		clip.ChainID = chainID.String
		clip.Status = models.ClipStatus(status.String)
		clip.City = city.String
		if completionRate.Valid {
			rate := completionRate.Float64
			clip.CompletionRate = &rate
		}
		// Malformed JSON columns degrade to empty values, never an error:
		// the engine's scoring defaults absorb them.
		if reactions.Valid && reactions.String != "" {
			_ = json.Unmarshal([]byte(reactions.String), &clip.Reactions)
		}
		if tags.Valid && tags.String != "" {
			_ = json.Unmarshal([]byte(tags.String), &clip.Tags)
		}
		if moderation.Valid && moderation.String != "" {
			var verdict models.ModerationVerdict
			if err := json.Unmarshal([]byte(moderation.String), &verdict); err == nil {
				clip.Moderation = &verdict
			}
		}

		clips = append(clips, clip)
	}
	return clips, rows.Err()
}

// loadTopics reads every topic, newest first.
func (db *DuckDB) loadTopics(ctx context.Context) ([]models.Topic, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, title, description, topic_date, active, creator_id
		FROM topics
		ORDER BY topic_date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var topics []models.Topic
	for rows.Next() {
		var (
			topic       models.Topic
			description sql.NullString
			creatorID   sql.NullString
		)
		if err := rows.Scan(&topic.ID, &topic.Title, &description, &topic.Date,
			&topic.Active, &creatorID); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topic.Description = description.String
		topic.CreatorID = creatorID.String
		topics = append(topics, topic)
	}
	return topics, rows.Err()
}

// loadListens reads every listen event.
func (db *DuckDB) loadListens(ctx context.Context) ([]models.ListenEvent, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, viewer_id, clip_id, listened_at
		FROM listen_events
		ORDER BY listened_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query listen events: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var listens []models.ListenEvent
	for rows.Next() {
		var ev models.ListenEvent
		if err := rows.Scan(&ev.ID, &ev.ViewerID, &ev.ClipID, &ev.ListenedAt); err != nil {
			return nil, fmt.Errorf("failed to scan listen event: %w", err)
		}
		listens = append(listens, ev)
	}
	return listens, rows.Err()
}

// loadFollows reads every follow edge.
func (db *DuckDB) loadFollows(ctx context.Context) ([]models.FollowEdge, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT follower_id, followee_id, created_at
		FROM follows`)
	if err != nil {
		return nil, fmt.Errorf("failed to query follows: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only rows

	var follows []models.FollowEdge
	for rows.Next() {
		var edge models.FollowEdge
		if err := rows.Scan(&edge.FollowerID, &edge.FolloweeID, &edge.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan follow edge: %w", err)
		}
		follows = append(follows, edge)
	}
	return follows, rows.Err()
}

// Viewer returns the viewer profile, or ErrNotFound.
func (db *DuckDB) Viewer(ctx context.Context, viewerID string) (*models.Viewer, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, city, sensitive_content_allowed, blocked_creators
		FROM viewers WHERE id = ?`, viewerID)

	var (
		viewer  models.Viewer
		city    sql.NullString
		blocked sql.NullString
	)
	if err := row.Scan(&viewer.ID, &city, &viewer.SensitiveContentAllowed, &blocked); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query viewer: %w", err)
	}
	viewer.City = city.String
	if blocked.Valid && blocked.String != "" {
		var ids []string
		if err := json.Unmarshal([]byte(blocked.String), &ids); err == nil {
			viewer.BlockedCreators = make(map[string]struct{}, len(ids))
			for _, id := range ids {
				viewer.BlockedCreators[id] = struct{}{}
			}
		}
	}
	return &viewer, nil
}

// UpsertClip creates or replaces a clip.
func (db *DuckDB) UpsertClip(ctx context.Context, clip *models.Clip) error {
	start := time.Now()

	reactions, err := marshalOrNull(clip.Reactions)
	if err != nil {
		return fmt.Errorf("failed to encode reactions: %w", err)
	}
	tags, err := marshalOrNull(clip.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	var moderation any
	if clip.Moderation != nil {
		encoded, err := json.Marshal(clip.Moderation)
		if err != nil {
			return fmt.Errorf("failed to encode moderation verdict: %w", err)
		}
		moderation = string(encoded)
	}

	var completion any
	if clip.CompletionRate != nil {
		completion = *clip.CompletionRate
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO clips (
			id, creator_id, created_at, listens, reactions, completion_rate,
			topic_id, tags, content_rating, moderation, parent_id,
			remix_of_id, chain_id, status, city, trending_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			creator_id = excluded.creator_id,
			created_at = excluded.created_at,
			listens = excluded.listens,
			reactions = excluded.reactions,
			completion_rate = excluded.completion_rate,
			topic_id = excluded.topic_id,
			tags = excluded.tags,
			content_rating = excluded.content_rating,
			moderation = excluded.moderation,
			parent_id = excluded.parent_id,
			remix_of_id = excluded.remix_of_id,
			chain_id = excluded.chain_id,
			status = excluded.status,
			city = excluded.city,
			trending_score = excluded.trending_score`,
		clip.ID, nullIfEmpty(clip.CreatorID), clip.CreatedAt, clip.Listens,
		reactions, completion, nullIfEmpty(clip.TopicID), tags,
		string(clip.ContentRating), moderation, nullIfEmpty(clip.ParentID),
		nullIfEmpty(clip.RemixOfID), nullIfEmpty(clip.ChainID),
		string(clip.Status), nullIfEmpty(clip.City), clip.TrendingScore)

	metrics.RecordDBQuery("UPSERT", "clips", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert clip: %w", err)
	}
	return nil
}

// DeleteClip removes a clip. Absent clips are a no-op.
func (db *DuckDB) DeleteClip(ctx context.Context, clipID string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `DELETE FROM clips WHERE id = ?`, clipID)
	metrics.RecordDBQuery("DELETE", "clips", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}
	return nil
}

// UpsertTopic creates or replaces a topic.
func (db *DuckDB) UpsertTopic(ctx context.Context, topic *models.Topic) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO topics (id, title, description, topic_date, active, creator_id)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			topic_date = excluded.topic_date,
			active = excluded.active,
			creator_id = excluded.creator_id`,
		topic.ID, topic.Title, nullIfEmpty(topic.Description), topic.Date,
		topic.Active, nullIfEmpty(topic.CreatorID))
	metrics.RecordDBQuery("UPSERT", "topics", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert topic: %w", err)
	}
	return nil
}

// RecordListen appends a listen event and bumps the clip's listen count.
func (db *DuckDB) RecordListen(ctx context.Context, ev *models.ListenEvent) error {
	start := time.Now()

	id := ev.ID
	if id == "" {
		id = uuid.NewString()
	}
	listenedAt := ev.ListenedAt
	if listenedAt.IsZero() {
		listenedAt = time.Now()
	}

	// ON CONFLICT DO NOTHING makes event replay idempotent.
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO listen_events (id, viewer_id, clip_id, listened_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING`,
		id, ev.ViewerID, ev.ClipID, listenedAt)
	if err == nil {
		_, err = db.conn.ExecContext(ctx,
			`UPDATE clips SET listens = listens + 1 WHERE id = ?`, ev.ClipID)
	}

	metrics.RecordDBQuery("INSERT", "listen_events", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to record listen: %w", err)
	}
	return nil
}

// UpsertViewer creates or replaces a viewer profile.
func (db *DuckDB) UpsertViewer(ctx context.Context, viewer *models.Viewer) error {
	start := time.Now()

	var blocked any
	if len(viewer.BlockedCreators) > 0 {
		ids := make([]string, 0, len(viewer.BlockedCreators))
		for id := range viewer.BlockedCreators {
			ids = append(ids, id)
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("failed to encode blocked creators: %w", err)
		}
		blocked = string(encoded)
	}

	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO viewers (id, city, sensitive_content_allowed, blocked_creators)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			city = excluded.city,
			sensitive_content_allowed = excluded.sensitive_content_allowed,
			blocked_creators = excluded.blocked_creators`,
		viewer.ID, nullIfEmpty(viewer.City), viewer.SensitiveContentAllowed, blocked)
	metrics.RecordDBQuery("UPSERT", "viewers", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert viewer: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (db *DuckDB) Close() error {
	return db.conn.Close()
}

// marshalOrNull encodes a value as JSON, or returns nil for empty values.
func marshalOrNull(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) == 0 {
			return nil, nil
		}
	case []string:
		if len(t) == 0 {
			return nil, nil
		}
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(encoded), nil
}

// nullIfEmpty maps an empty string to SQL NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
