package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvBookableWeekdays = "BOOKABLE_WEEKDAYS"
	EnvMinNoticeDays    = "MIN_NOTICE_DAYS"
	EnvWorkshopTopics   = "WORKSHOP_TOPICS"

	EnvKafkaBrokers = "KAFKA_BROKERS"
	EnvEventTopic   = "EVENT_TOPIC"

	EnvBookingsURL = "BOOKINGS_URL"
	EnvSchoolsURL  = "SCHOOLS_URL"
	EnvSupportURL  = "SUPPORT_URL"
)
