package config

const (
	defaultPort    = 8080
	defaultOpsPort = 8081
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch_db",
}

var defaultKafka = Kafka{
	Topic:   "orders.intake",
	GroupID: "courier-dispatch",
}

var defaultRateLimit = RateLimit{
	PerSecond: 50,
	Burst:     100,
}

// Defaults returns a Config with every setting at its default value.
func Defaults() Config {
	return Config{
		Port:      defaultPort,
		OpsPort:   defaultOpsPort,
		DB:        defaultDB,
		Kafka:     defaultKafka,
		RateLimit: defaultRateLimit,
	}
}
