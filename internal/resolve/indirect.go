package resolve

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"

	"github.com/youyo/secretlaunch/internal/collect"
	"github.com/youyo/secretlaunch/internal/secretref"
)

// expandDocument parses a fetched indirection document into further
// pending fetches. A document whose top level is not a JSON object is
// inert: a warning is logged and nothing is expanded. Non-string entries
// are skipped the same way. Expansion goes exactly one level deep; the
// references produced here are resolved as plain values even if their
// content would parse as another document.
func (r *Resolver) expandDocument(source, doc string) []collect.Pending {
	var root map[string]any
	if err := json.Unmarshal([]byte(doc), &root); err != nil {
		r.logger.Warn("indirection document is not a JSON object",
			slog.String("source", source), slog.String("error", err.Error()))
		return nil
	}
	if root == nil {
		r.logger.Warn("indirection document is empty",
			slog.String("source", source))
		return nil
	}

	keys := make([]string, 0, len(root))
	for k := range root {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pending := make([]collect.Pending, 0, len(keys))
	for _, k := range keys {
		s, ok := root[k].(string)
		if !ok {
			r.logger.Warn("unexpected value type in indirection document",
				slog.String("source", source), slog.String("key", k))
			continue
		}
		key := strings.TrimPrefix(k, collect.DocumentKeyPrefix)
		if key == "" {
			r.logger.Warn("indirection entry has empty output key",
				slog.String("source", source), slog.String("key", k))
			continue
		}
		pending = append(pending, collect.Pending{Key: key, Ref: secretref.Classify(s)})
	}
	return pending
}
