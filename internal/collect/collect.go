// Package collect scans the process environment for secret references.
package collect

import (
	"sort"
	"strings"

	"github.com/youyo/secretlaunch/internal/secretref"
)

// Recognized variable naming conventions. The two typed prefixes win
// over the generic one when both match.
const (
	PrefixARN     = "SECRET_ARN_"
	PrefixName    = "SECRET_NAME_"
	PrefixGeneric = "SECRET_"

	// Indirection entry points: each names one SSM parameter whose value
	// is a JSON document of further references.
	IndirectionARNVar  = "SECRETS_PARAMETER_ARN"
	IndirectionNameVar = "SECRETS_PARAMETER_NAME"

	// DocumentKeyPrefix is stripped from keys inside an indirection
	// document to form the output key.
	DocumentKeyPrefix = "SECRET_"
)

// Pending is one outstanding fetch: the output key and the reference
// that produces its value.
type Pending struct {
	Key string
	Ref secretref.Ref
}

// Indirection is one entry-point parameter to fetch and expand.
type Indirection struct {
	Source string // originating environment variable
	Ref    secretref.Ref
}

// Collection is the result of one environment scan.
type Collection struct {
	Direct       []Pending
	Indirections []Indirection
}

// FromEnviron scans "KEY=VALUE" entries for the recognized conventions.
// Read-only and order-independent: output is sorted by variable name so
// downstream duplicate-key precedence is deterministic. The ARN
// indirection entry point sorts before the name one.
func FromEnviron(environ []string) Collection {
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		idx := strings.IndexByte(kv, '=')
		if idx <= 0 {
			continue
		}
		vars[kv[:idx]] = kv[idx+1:]
	}

	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var col Collection
	for _, name := range names {
		value := vars[name]

		switch name {
		case IndirectionARNVar, IndirectionNameVar:
			col.Indirections = append(col.Indirections, Indirection{
				Source: name,
				Ref:    secretref.Classify(value),
			})
			continue
		}

		key, ref, ok := classifyVariable(name, value)
		if !ok {
			continue
		}
		col.Direct = append(col.Direct, Pending{Key: key, Ref: ref})
	}

	return col
}

// classifyVariable matches one variable name against the conventions,
// most specific first. Empty output keys are skipped.
func classifyVariable(name, value string) (string, secretref.Ref, bool) {
	switch {
	case strings.HasPrefix(name, PrefixARN):
		key := strings.TrimPrefix(name, PrefixARN)
		if key == "" {
			return "", secretref.Ref{}, false
		}
		return key, secretref.Classify(value), true

	case strings.HasPrefix(name, PrefixName):
		key := strings.TrimPrefix(name, PrefixName)
		if key == "" {
			return "", secretref.Ref{}, false
		}
		return key, secretref.Ref{Kind: secretref.KindName, Raw: value}, true

	case strings.HasPrefix(name, PrefixGeneric):
		key := strings.TrimPrefix(name, PrefixGeneric)
		if key == "" {
			return "", secretref.Ref{}, false
		}
		return key, secretref.Classify(value), true
	}

	return "", secretref.Ref{}, false
}
