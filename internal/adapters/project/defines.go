package project

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
)

// ErrDefinesFileInvalid is returned when a dart-define file cannot be read.
var ErrDefinesFileInvalid = zerr.New("invalid dart-define file")

// ReadDefinesFiles reads KEY=VALUE pairs from .json and .env files, in order.
// JSON files hold a flat object; values are stringified. Keys within a file
// are returned sorted.
func ReadDefinesFiles(paths []string) ([]string, error) {
	var defines []string
	for _, path := range paths {
		values, err := readDefinesFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, ErrDefinesFileInvalid.Error()), "path", path)
		}
		for _, k := range slices.Sorted(maps.Keys(values)) {
			defines = append(defines, k+"="+values[k])
		}
	}
	return defines, nil
}

func readDefinesFile(path string) (map[string]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		//nolint:gosec // path comes from the command line
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		values := make(map[string]string, len(raw))
		for k, v := range raw {
			switch v.(type) {
			case map[string]any, []any:
				return nil, zerr.With(zerr.New("nested values are not supported"), "key", k)
			case nil:
				values[k] = ""
			default:
				values[k] = fmt.Sprint(v)
			}
		}
		return values, nil
	}
	return godotenv.Read(path)
}
