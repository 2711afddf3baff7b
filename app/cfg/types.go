package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Application configuration
	ClansDir          string
	Port              string
	WorkerCount       int
	SchedulerInterval int
	APIAccessKey      string

	// Pipeline configuration
	FetchConcurrency int
	FetchRetries     int
	HTTPTimeout      int
	RetentionDays    int
	AuditLogPath     string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
