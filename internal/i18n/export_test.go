// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package i18n

import (
	"sort"

	"github.com/BurntSushi/toml"
)

// MessageIDs returns every message ID defined in the English translations.
func MessageIDs() []string {
	raw, err := translationFS.ReadFile("translations/active.en.toml")
	if err != nil {
		panic(err)
	}

	var messages map[string]any
	if err := toml.Unmarshal(raw, &messages); err != nil {
		panic(err)
	}

	ids := make([]string, 0, len(messages))
	for id := range messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
