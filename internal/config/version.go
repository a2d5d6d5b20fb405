package config

import (
	"fmt"
)

// CurrentVersion is the current config schema version
const CurrentVersion = 1

// Migration rewrites flat config keys from one schema version to the next.
type Migration struct {
	FromVersion int
	ToVersion   int
	Migrate     func(data map[string]any) (map[string]any, error)
}

// renames maps keys of unversioned files to their current names.
var renames = map[string]string{
	"server.url":        "server.base_url",
	"server.timeout":    "server.timeout_ms",
	"toast.duration_ms": "toast.dismiss_delay_ms",
	"toast.delay_ms":    "toast.reveal_delay_ms",
}

// migrations is the list of migrations in order
var migrations = []Migration{
	// Migration 0 -> 1: unversioned files used shorter key names
	{
		FromVersion: 0,
		ToVersion:   1,
		Migrate: func(data map[string]any) (map[string]any, error) {
			for old, current := range renames {
				v, ok := data[old]
				if !ok {
					continue
				}
				if _, taken := data[current]; !taken {
					data[current] = v
				}
				delete(data, old)
			}
			data["version"] = 1
			return data, nil
		},
	},
}

// Migrate upgrades flat config data to CurrentVersion. Files without a
// version are treated as version 0.
func Migrate(data map[string]any) (map[string]any, error) {
	version, err := versionOf(data["version"])
	if err != nil {
		return nil, err
	}
	if version > CurrentVersion {
		return nil, fmt.Errorf("config version %d is newer than supported version %d", version, CurrentVersion)
	}
	if version == CurrentVersion {
		return data, nil
	}
	return ApplyMigrations(data, version)
}

func versionOf(v any) (int, error) {
	switch v := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("config version must be a number, got %T", v)
	}
}

// ApplyMigrations applies all migrations from the given version to CurrentVersion
func ApplyMigrations(data map[string]any, fromVersion int) (map[string]any, error) {
	for _, migration := range migrations {
		if migration.FromVersion == fromVersion {
			var err error
			data, err = migration.Migrate(data)
			if err != nil {
				return nil, fmt.Errorf("migration %d -> %d failed: %w",
					migration.FromVersion, migration.ToVersion, err)
			}
			fromVersion = migration.ToVersion
		}
	}

	if fromVersion < CurrentVersion {
		return nil, fmt.Errorf("no migration path from version %d to %d", fromVersion, CurrentVersion)
	}

	return data, nil
}
