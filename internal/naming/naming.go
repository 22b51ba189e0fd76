// Package naming provides naming conventions for z/VM guests and the
// resources derived from them: userid validation, libvirt domain names and
// staging file names.
package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxUserIDLength is the longest userid CP accepts.
const MaxUserIDLength = 8

// userIDPattern matches the characters CP allows in a userid.
var userIDPattern = regexp.MustCompile(`^[A-Z0-9@#$+:_-]+$`)

// NormalizeUserID upper-cases and validates a z/VM userid.
//
// Example: "linux01" → "LINUX01"
func NormalizeUserID(userID string) (string, error) {
	id := strings.ToUpper(strings.TrimSpace(userID))
	if id == "" {
		return "", fmt.Errorf("userid is required")
	}
	if len(id) > MaxUserIDLength {
		return "", fmt.Errorf("userid %q is longer than %d characters", id, MaxUserIDLength)
	}
	if !userIDPattern.MatchString(id) {
		return "", fmt.Errorf("userid %q contains characters other than A-Z, 0-9, @, #, $, +, :, _ and -", id)
	}
	return id, nil
}

// DomainName returns the libvirt domain name for a userid.
// Format: zvm-{userid in lower case}
//
// Example: LINUX01 → zvm-linux01
func DomainName(userID string) string {
	return "zvm-" + strings.ToLower(userID)
}

// StagingFilePattern returns the os.CreateTemp pattern for a userid's
// directory-entry file.
// Format: {userid}-*.direct
func StagingFilePattern(userID string) string {
	return fmt.Sprintf("%s-*.direct", strings.ToLower(userID))
}
