// Package permissions lists the routes that may be called without the user id header.
// The table is embedded from permissions.json and keyed by chi route pattern and method.
package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

type Permission struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Skip   bool   `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`

	index map[string]Permission
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + path
}

// Parse decodes a permission table and indexes it.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding permissions: %w", err)
	}

	data.index = make(map[string]Permission, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		if endpoint.Path == "" || endpoint.Method == "" {
			return nil, fmt.Errorf("permission entry without path or method: %+v", endpoint)
		}

		data.index[key(endpoint.Path, endpoint.Method)] = endpoint
	}

	return &data, nil
}

// FindPermissions returns the entry for the route pattern, or a zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r == nil {
		return Permission{}
	}

	return r.index[key(path, method)]
}

var (
	loaded     *PermissionData
	loadedOnce sync.Once
)

// Get returns the embedded table. A broken table stops the process.
func Get() *PermissionData {
	loadedOnce.Do(func() {
		data, err := Parse(permissionsData)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load embedded permissions")
		}

		log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

		loaded = data
	})

	return loaded
}
