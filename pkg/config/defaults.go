package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "smpid"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Workshops run on Tuesday, Wednesday, Thursday and Saturday only.
	DefaultBookableWeekdays = "Tue,Wed,Thu,Sat"
	// Schools must book at least this many civil days ahead.
	DefaultMinNoticeDays = 3

	DefaultEventTopic = "smpid.portal.events"

	DefaultBookingsURL = "http://localhost:8081"
	DefaultSchoolsURL  = "http://localhost:8082"
	DefaultSupportURL  = "http://localhost:8083"

	DefaultPaginationLimit = 100
)

// DefaultWorkshopTopics is the controlled vocabulary offered on the booking
// form when WORKSHOP_TOPICS is unset.
var DefaultWorkshopTopics = []string{
	"DELIMa Onboarding",
	"Google Workspace for Education",
	"Digital Competency Screening",
	"Classroom Device Management",
	"School Data Management",
	"Cyber Safety Awareness",
}
