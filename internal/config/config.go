package config

// Config holds all application configuration, organized into logical groups.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"      validate:"required"`
	Task      TaskConfig      `mapstructure:"task"      validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains token-validation settings. Tokens are minted by the
// external identity provider with the shared HMAC secret; this service only
// verifies them.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// TaskConfig contains background task runner settings.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}

// SchedulerConfig contains study-plan scheduling settings.
type SchedulerConfig struct {
	// ExamDayOffsets lists the days before the exam date reserved for
	// full-length exams.
	ExamDayOffsets []int `mapstructure:"exam_day_offsets" validate:"required,min=1,dive,gt=0"`

	// FreeHorizonDays is the longest plan (in days) available without a
	// premium subscription.
	FreeHorizonDays int `mapstructure:"free_horizon_days" validate:"required,gt=0"`

	// ReviewHours and ExamHours are the per-activity time estimates.
	ReviewHours float64 `mapstructure:"review_hours" validate:"required,gt=0"`
	ExamHours   float64 `mapstructure:"exam_hours"   validate:"required,gt=0"`
}

// IngestConfig contains settings for server-to-server pulse ingestion.
type IngestConfig struct {
	// SourceSecretHash is the bcrypt hash of the shared secret external
	// practice platforms send in X-Source-Secret. Empty disables
	// server-to-server ingestion.
	SourceSecretHash string `mapstructure:"source_secret_hash"`
}
