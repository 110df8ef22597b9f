package cli

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// entityPrefixes maps entity types to their expected ID prefixes
var entityPrefixes = map[string]string{
	"position": "POS",
	"employee": "EMP",
	"user":     "USR",
	"log":      "LOG",
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// validateEntityID checks if an ID has the correct prefix format.
// Returns an error with helpful message if the ID appears to be a short ID.
func validateEntityID(id, entityType string) error {
	if id == "" {
		return nil // Empty is OK, let other validation handle required fields
	}

	prefix, ok := entityPrefixes[entityType]
	if !ok {
		return nil
	}

	expectedPattern := prefix + "-"
	if strings.HasPrefix(id, expectedPattern) {
		return nil
	}

	// Looks like a short ID (just digits)
	if digitsOnly.MatchString(id) {
		n, _ := strconv.Atoi(id)
		return fmt.Errorf("invalid %s ID '%s'. Use full ID format: %s-%03d", entityType, id, prefix, n)
	}

	if strings.HasPrefix(strings.ToUpper(id), expectedPattern) {
		return fmt.Errorf("invalid %s ID '%s'. IDs are case-sensitive, use: %s", entityType, id, strings.ToUpper(id))
	}

	return fmt.Errorf("invalid %s ID '%s'. Expected format: %s-xxx", entityType, id, prefix)
}
