// Package replies holds every user-facing fulfillment text the webhook can
// produce. Texts are keyed and language-scoped so the conversational surface
// can be localized without touching the ride logic; English is built in and
// acts as the fallback for missing languages or keys.
package replies

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Message keys understood by the catalog.
const (
	KeyMatchesFound      = "matches_found"
	KeyRegisteredNoMatch = "registered_no_match"
	KeyStatus            = "status"
	KeyNoGroup           = "no_group"
	KeyNoRecord          = "no_record"
	KeyUserNotFound      = "user_not_found"
	KeySessionExpired    = "session_expired"
	KeyGroupConfirmed    = "group_confirmed"
	KeyGroupRejected     = "group_rejected"
	KeyClusterBusy       = "cluster_busy"
	KeyRidesHeader       = "rides_header"
	KeyRideLine          = "ride_line"
	KeyNoRides           = "no_rides"
	KeyNotUnderstood     = "not_understood"
	KeyParseError        = "parse_error"
	KeyBackendError      = "backend_error"
)

// defaultEnglish mirrors the texts of the original conversation flow.
var defaultEnglish = map[string]string{
	KeyMatchesFound:      "Success, %s. I found %d other(s) for %s. Reply 'Yes' to confirm group.",
	KeyRegisteredNoMatch: "Registered for %s. No matches yet.",
	KeyStatus:            "Status: %s, Group: %s",
	KeyNoGroup:           "None",
	KeyNoRecord:          "No record found.",
	KeyUserNotFound:      "User not found.",
	KeySessionExpired:    "Session expired. Please try again.",
	KeyGroupConfirmed:    "✅ Group confirmed successfully! Your group is %s.",
	KeyGroupRejected:     "No problem, keeping your request pending.",
	KeyClusterBusy:       "Someone in your group is confirming right now. Please try again in a moment.",
	KeyRidesHeader:       "Here are the available rides for %s:\n%s",
	KeyRideLine:          "• Group %s at %s (%s)",
	KeyNoRides:           "There are no rides available for %s.",
	KeyNotUnderstood:     "I'm not sure how to help with that.",
	KeyParseError:        "Sorry, I couldn't read that request. Please try again.",
	KeyBackendError:      "Backend error. Please try again later.",
}

// Catalog manages the reply texts for the application, one map of keys per
// language.
type Catalog struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewCatalog creates a catalog pre-populated with the built-in English texts.
func NewCatalog() *Catalog {
	return &Catalog{
		translations: map[string]map[string]string{
			"en": defaultEnglish,
		},
	}
}

// LoadDir merges reply overrides from a directory of JSON files named by
// language code (e.g. "en.json", "uk.json"). Loaded keys shadow the built-in
// defaults for their language.
func (c *Catalog) LoadDir(path string) error {
	files, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read replies directory: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(path, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read replies file %s: %w", file.Name(), err)
		}

		var texts map[string]string
		if err := json.Unmarshal(data, &texts); err != nil {
			return fmt.Errorf("failed to parse replies file %s: %w", file.Name(), err)
		}

		if c.translations[lang] == nil {
			c.translations[lang] = make(map[string]string)
		}
		for key, value := range texts {
			c.translations[lang][key] = value
		}
	}
	return nil
}

// GetString returns the reply text for a given key and language. Missing
// languages and keys fall back to English, and finally to the key itself.
func (c *Catalog) GetString(lang, key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if texts, ok := c.translations[lang]; ok {
		if value, ok := texts[key]; ok {
			return value
		}
	}

	if lang != "en" {
		if texts, ok := c.translations["en"]; ok {
			if value, ok := texts[key]; ok {
				return value
			}
		}
	}

	return key
}

// Format renders the reply text for key in lang with fmt.Sprintf semantics.
func (c *Catalog) Format(lang, key string, args ...any) string {
	return fmt.Sprintf(c.GetString(lang, key), args...)
}
