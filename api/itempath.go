package api

import (
	"strings"

	"github.com/morikuni/failure/v2"
)

// crateIdent converts a crate name to the identifier docs.rs uses in paths.
// Cargo replaces hyphens with underscores when naming the library target.
func crateIdent(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// itemLocation is a parsed item path within a crate
type itemLocation struct {
	ModulePath string // slash-separated module path, may be empty
	ItemName   string
}

// parseItemPath splits an item path like "vec::Vec" or "sync::mpsc::channel"
// into its module path and item name. A leading "<crate>::" prefix is
// stripped so both "tokio::sync::Mutex" and "sync::Mutex" resolve the same.
func parseItemPath(crateName, itemPath string) (itemLocation, error) {
	for _, prefix := range []string{crateName + "::", crateIdent(crateName) + "::"} {
		if strings.HasPrefix(itemPath, prefix) {
			itemPath = itemPath[len(prefix):]
			break
		}
	}

	if itemPath == "" {
		return itemLocation{}, failure.New(ErrInvalidItemPath,
			failure.Message("Invalid item path. Expected format: module::path::ItemName"),
			failure.Context{"crate": crateName},
		)
	}

	parts := strings.Split(itemPath, "::")
	for _, p := range parts {
		if p == "" {
			return itemLocation{}, failure.New(ErrInvalidItemPath,
				failure.Message("Invalid item path. Expected format: module::path::ItemName"),
				failure.Context{"crate": crateName, "item": itemPath},
			)
		}
	}

	loc := itemLocation{
		ItemName: parts[len(parts)-1],
	}
	if len(parts) > 1 {
		loc.ModulePath = strings.Join(parts[:len(parts)-1], "/")
	}

	return loc, nil
}
