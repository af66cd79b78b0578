package cmd

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RabbitMQHost               string
	RabbitMQPort               string
	RabbitMQUser               string
	RabbitMQPassword           string
	RabbitMQExchange           string
	RabbitMQDeadLetterExchange string

	FleetServiceURL     string
	WarehouseServiceURL string
}
