package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given files (.env by default) into the
// process environment without overriding variables that are already set.
// Missing files are not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
