package catalog

import (
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Ext is the only file extension the loader accepts.
const Ext = ".json"

// metadataKey carries translation-tooling metadata and is stripped on load.
const metadataKey = "@metadata"

// json renders objects with sorted keys and 2-space indentation so written
// catalogs are deterministic and human-diffable. HTML escaping is off:
// message text goes to disk as plain UTF-8.
var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	IndentionStep:          2,
}.Froze()

// ReadFile parses the JSON message file at path into a MessageCatalog,
// discarding the top-level "@metadata" entry when present.
//
// The path must end in ".json"; any violation of that, an unreadable file,
// invalid JSON, or a non-string message value fails with an *InputError
// naming the offending path. There are no side effects beyond the read.
func ReadFile(path string) (MessageCatalog, error) {
	if !strings.HasSuffix(path, Ext) {
		return nil, newInputError(path, `filenames must end with ".json"`)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapInputError(path, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, wrapInputError(path, err)
	}
	delete(raw, metadataKey)

	messages := make(MessageCatalog, len(raw))
	for key, value := range raw {
		text, ok := value.(string)
		if !ok {
			return nil, newInputError(path, fmt.Sprintf("key %q: message values must be strings", key))
		}
		messages[key] = text
	}
	return messages, nil
}
