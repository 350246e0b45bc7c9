package secretref

import (
	"strings"
)

// Kind represents how a reference addresses its backing store.
type Kind string

const (
	KindSecretsManagerARN Kind = "secretsmanager-arn"
	KindParameterStoreARN Kind = "parameterstore-arn"
	KindName              Kind = "name"
)

// Ref is a classified secret reference. Immutable once built.
type Ref struct {
	Kind Kind
	Raw  string
}

// arnSegments is the minimum number of colon-delimited fields for a
// string to be treated as an ARN (arn:partition:service:region:account:resource).
const arnSegments = 6

// Classify decides how a raw value addresses its store. It is total:
// anything that does not look like a well-formed ARN degrades to a plain
// lookup name, never an error.
func Classify(raw string) Ref {
	if !strings.HasPrefix(raw, "arn:") {
		return Ref{Kind: KindName, Raw: raw}
	}

	parts := strings.SplitN(raw, ":", arnSegments)
	if len(parts) < arnSegments {
		return Ref{Kind: KindName, Raw: raw}
	}

	switch parts[2] {
	case "secretsmanager":
		return Ref{Kind: KindSecretsManagerARN, Raw: raw}
	case "ssm":
		return Ref{Kind: KindParameterStoreARN, Raw: raw}
	default:
		return Ref{Kind: KindName, Raw: raw}
	}
}

// Region extracts the region field (4th colon-delimited segment) from an
// ARN-shaped string. An empty segment is a valid region key ("", true),
// distinct from the false return for strings with fewer than 4 segments.
func Region(raw string) (string, bool) {
	parts := strings.SplitN(raw, ":", 5)
	if len(parts) < 4 {
		return "", false
	}
	return parts[3], true
}
