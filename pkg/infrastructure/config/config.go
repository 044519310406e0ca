// Package config loads run-parameter defaults from the environment (and
// an optional .env file), overridden by whatever the caller passes
// explicitly to Execute.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the orchestrator's default run parameters.
type Config struct {
	PlanningHorizonWeeks  int
	FirmOrderHorizonWeeks int
	MonteCarloIterations  int
}

// Load reads MRP_PLANNING_HORIZON_WEEKS, MRP_FIRM_ORDER_HORIZON_WEEKS, and
// MRP_MONTECARLO_ITERATIONS from the environment, loading a .env file
// first if one is present. Unset or unparsable values fall back to the
// spec's defaults (13, 2, 10000).
func Load() Config {
	_ = godotenv.Load()

	return Config{
		PlanningHorizonWeeks:  getEnvAsInt("MRP_PLANNING_HORIZON_WEEKS", 13),
		FirmOrderHorizonWeeks: getEnvAsInt("MRP_FIRM_ORDER_HORIZON_WEEKS", 2),
		MonteCarloIterations:  getEnvAsInt("MRP_MONTECARLO_ITERATIONS", 10000),
	}
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
