package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "dispatch",
	Pass: "dispatch",
	Name: "dispatch_db",
}

var defaultKafka = Kafka{
	Brokers: nil, // consumer disabled unless brokers are configured
	Topic:   "driver_location",
	GroupID: "dispatch-worker",
}

var defaultAMQP = AMQP{
	URL:      "",
	Exchange: "delivery_events",
}

var defaultRouting = Routing{
	OSRMBaseURL:      "http://router.project-osrm.org",
	NominatimBaseURL: "https://nominatim.openstreetmap.org",
	Timeout:          10 * time.Second,
	MaxAttempts:      4,
	BaseDelay:        150 * time.Millisecond,
	MaxDelay:         2 * time.Second,
}

var defaultDispatch = Dispatch{
	BroadcastRadiusKm: 5,
	OperationTimeout:  3 * time.Second,
}

var defaultRateLimit = RateLimit{
	Limit:  100,
	Window: time.Second,
}

// DefaultPort returns the default HTTP port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultKafka returns the default Kafka consumer settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultAMQP returns the default AMQP notifier settings.
func DefaultAMQP() AMQP { return defaultAMQP }

// DefaultRouting returns the default route provider settings.
func DefaultRouting() Routing { return defaultRouting }

// DefaultDispatch returns the default dispatch engine settings.
func DefaultDispatch() Dispatch { return defaultDispatch }

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }
