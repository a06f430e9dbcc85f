package env

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file into the process environment. Variables that
// are already set keep their value.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}
