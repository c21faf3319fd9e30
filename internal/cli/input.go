package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eladbash/jdx/internal/jsonval"
)

// loadInput reads and decodes a JSON document from a file path, or from
// stdin when the path is "-".
func loadInput(path string) (jsonval.Value, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to read stdin", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", path), err)
		}
	}

	v, err := jsonval.Decode(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid JSON input", err)
	}
	return v, nil
}

// historyPath returns the location of the history database, creating its
// directory if needed.
func historyPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	dir := filepath.Join(base, "jdx")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return filepath.Join(dir, "history.db"), nil
}
