package cmd

// Config carries all runtime settings of the application, loaded from the
// environment at startup.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// WorkflowEngineURL is the base URL of the orchestration engine that
	// receives status signals, for example "http://localhost:8080/api/v1".
	WorkflowEngineURL string

	// FraudLimit is the maximum payment total in cents the fraud check
	// approves. Zero disables the check.
	FraudLimit int64

	// OutOfStockSKUs lists catalog SKUs the availability provider reports
	// as unavailable.
	OutOfStockSKUs []string
}
