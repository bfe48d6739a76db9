package sqlstore

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ NOT NULL,
		category_id TEXT,
		mood_rating INTEGER CHECK (mood_rating BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		CHECK (end_time > start_time)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user_start ON events(user_id, start_time)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date DATE NOT NULL,
		rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS recommendation_feedback (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		recommendation_id TEXT NOT NULL,
		accepted BOOLEAN NOT NULL,
		notes TEXT,
		mood_after INTEGER CHECK (mood_after BETWEEN 1 AND 5),
		submitted_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, recommendation_id)
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_suggestions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		event_id TEXT,
		related_event_id TEXT,
		description TEXT NOT NULL,
		reason TEXT NOT NULL,
		priority INTEGER NOT NULL,
		suggested_start TIMESTAMPTZ,
		confidence DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		responded_at TIMESTAMPTZ,
		response_comment TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_user_status ON schedule_suggestions(user_id, status)`,
}

// SQLite keeps timestamps as text; every write is normalized to UTC so
// lexical comparison matches chronological order.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		start_time DATETIME NOT NULL,
		end_time DATETIME NOT NULL,
		category_id TEXT,
		mood_rating INTEGER,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user_start ON events(user_id, start_time)`,
	`CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date DATE NOT NULL,
		rating INTEGER NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL,
		UNIQUE (user_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS recommendation_feedback (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		recommendation_id TEXT NOT NULL,
		accepted BOOLEAN NOT NULL,
		notes TEXT,
		mood_after INTEGER,
		submitted_at DATETIME NOT NULL,
		UNIQUE (user_id, recommendation_id)
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_suggestions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		event_id TEXT,
		related_event_id TEXT,
		description TEXT NOT NULL,
		reason TEXT NOT NULL,
		priority INTEGER NOT NULL,
		suggested_start DATETIME,
		confidence REAL NOT NULL,
		status TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		responded_at DATETIME,
		response_comment TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_user_status ON schedule_suggestions(user_id, status)`,
}
