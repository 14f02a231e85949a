// Package storagekey derives the hashed paths under which user-storage
// entries are persisted, so feature names and entry keys never appear in
// plaintext on the storage backend.
package storagekey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidPath is returned when a path component is empty
var ErrInvalidPath = errors.New("invalid storage path component")

// HashEntryKey returns the lowercase hex HMAC-SHA256 of the entry key under
// the user's storage key. The same entry key always maps to the same hash for
// one user and is unlinkable across users.
func HashEntryKey(storageKey, entryKey string) string {
	mac := hmac.New(sha256.New, []byte(storageKey))
	mac.Write([]byte(entryKey))
	return hex.EncodeToString(mac.Sum(nil))
}

// EntryPath composes the storage path "<feature>.<entryKeyHash>" for one
// user-storage entry
func EntryPath(feature, storageKey, entryKey string) (string, error) {
	if feature == "" {
		return "", errors.Wrap(ErrInvalidPath, "feature is required")
	}
	if entryKey == "" {
		return "", errors.Wrap(ErrInvalidPath, "entry key is required")
	}
	return fmt.Sprintf("%s.%s", feature, HashEntryKey(storageKey, entryKey)), nil
}
