package store

// Tables are only ever created if missing. Data survives restarts.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS stair_configuration (
		id           INTEGER PRIMARY KEY CHECK (id = 1),
		stepHeightCm INTEGER NOT NULL CHECK (stepHeightCm > 0),
		stepCount    INTEGER NOT NULL CHECK (stepCount > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		date                TEXT    NOT NULL,
		repetitionCount     INTEGER NOT NULL CHECK (repetitionCount >= 0),
		caloriesBurned      REAL    NOT NULL CHECK (caloriesBurned >= 0),
		heightClimbedMeters REAL    NOT NULL CHECK (heightClimbedMeters >= 0),
		durationSeconds     INTEGER NOT NULL CHECK (durationSeconds >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions (date)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS stair_configuration (
		id           INTEGER PRIMARY KEY CHECK (id = 1),
		stepHeightCm INTEGER NOT NULL CHECK (stepHeightCm > 0),
		stepCount    INTEGER NOT NULL CHECK (stepCount > 0)
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id                  SERIAL PRIMARY KEY,
		date                TEXT             NOT NULL,
		repetitionCount     INTEGER          NOT NULL CHECK (repetitionCount >= 0),
		caloriesBurned      DOUBLE PRECISION NOT NULL CHECK (caloriesBurned >= 0),
		heightClimbedMeters DOUBLE PRECISION NOT NULL CHECK (heightClimbedMeters >= 0),
		durationSeconds     INTEGER          NOT NULL CHECK (durationSeconds >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions (date)`,
}
