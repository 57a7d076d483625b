package features

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
)

const envFile = ".usermenu/.env"

// LoadEnvFile exports USERMENU_* overrides from .usermenu/.env into the
// process environment. Variables already set in the environment win. A
// missing file is not an error.
func LoadEnvFile(baseDir string) error {
	path := filepath.Join(baseDir, envFile)
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", envFile, err)
	}
	return nil
}
