package collect

import (
	"testing"

	"github.com/youyo/secretlaunch/internal/secretref"
)

func TestFromEnviron(t *testing.T) {
	environ := []string{
		"SECRET_ARN_DB=arn:aws:secretsmanager:us-west-2:1:secret:x",
		"SECRET_NAME_API=plain",
		"IGNORED=y",
		"PATH=/usr/bin",
	}

	col := FromEnviron(environ)

	if len(col.Indirections) != 0 {
		t.Fatalf("expected no indirections, got %d", len(col.Indirections))
	}
	if len(col.Direct) != 2 {
		t.Fatalf("expected 2 pending fetches, got %d: %+v", len(col.Direct), col.Direct)
	}

	// Sorted by variable name: SECRET_ARN_DB before SECRET_NAME_API.
	if col.Direct[0].Key != "DB" || col.Direct[0].Ref.Kind != secretref.KindSecretsManagerARN {
		t.Errorf("unexpected first pending: %+v", col.Direct[0])
	}
	if col.Direct[1].Key != "API" || col.Direct[1].Ref.Kind != secretref.KindName || col.Direct[1].Ref.Raw != "plain" {
		t.Errorf("unexpected second pending: %+v", col.Direct[1])
	}
}

func TestFromEnvironGenericPrefix(t *testing.T) {
	environ := []string{
		"SECRET_DB_PASSWORD=arn:aws:secretsmanager:us-west-2:1:secret:p",
		"SECRET_PLAIN=lookup-name",
	}

	col := FromEnviron(environ)

	if len(col.Direct) != 2 {
		t.Fatalf("expected 2 pending fetches, got %d", len(col.Direct))
	}
	if col.Direct[0].Key != "DB_PASSWORD" || col.Direct[0].Ref.Kind != secretref.KindSecretsManagerARN {
		t.Errorf("unexpected pending: %+v", col.Direct[0])
	}
	if col.Direct[1].Key != "PLAIN" || col.Direct[1].Ref.Kind != secretref.KindName {
		t.Errorf("unexpected pending: %+v", col.Direct[1])
	}
}

func TestFromEnvironTypedPrefixWinsOverGeneric(t *testing.T) {
	// SECRET_NAME_X also matches the generic SECRET_ prefix; the typed
	// convention must win, yielding key X rather than NAME_X.
	environ := []string{
		"SECRET_NAME_X=arn:aws:secretsmanager:us-west-2:1:secret:x",
	}

	col := FromEnviron(environ)

	if len(col.Direct) != 1 {
		t.Fatalf("expected 1 pending fetch, got %d", len(col.Direct))
	}
	p := col.Direct[0]
	if p.Key != "X" {
		t.Errorf("Key = %q, want X", p.Key)
	}
	// Name-typed prefix forces KindName regardless of value shape.
	if p.Ref.Kind != secretref.KindName {
		t.Errorf("Kind = %v, want KindName", p.Ref.Kind)
	}
}

func TestFromEnvironDuplicateOutputKeys(t *testing.T) {
	// SECRET_ARN_X and SECRET_X both emit key X. Both are kept, sorted by
	// variable name, so the generic variable comes second and its value
	// wins the downstream last-write-wins merge.
	environ := []string{
		"SECRET_X=generic-ref",
		"SECRET_ARN_X=arn:aws:secretsmanager:us-west-2:1:secret:typed",
	}

	col := FromEnviron(environ)

	if len(col.Direct) != 2 {
		t.Fatalf("expected 2 pending fetches, got %d: %+v", len(col.Direct), col.Direct)
	}
	if col.Direct[0].Key != "X" || col.Direct[0].Ref.Kind != secretref.KindSecretsManagerARN {
		t.Errorf("unexpected first pending: %+v", col.Direct[0])
	}
	if col.Direct[1].Key != "X" || col.Direct[1].Ref.Raw != "generic-ref" {
		t.Errorf("unexpected second pending: %+v", col.Direct[1])
	}
}

func TestFromEnvironIndirections(t *testing.T) {
	environ := []string{
		"SECRETS_PARAMETER_NAME=/app/secrets",
		"SECRETS_PARAMETER_ARN=arn:aws:ssm:us-east-1:1:parameter/app/secrets",
	}

	col := FromEnviron(environ)

	if len(col.Direct) != 0 {
		t.Fatalf("indirection variables must not produce direct fetches, got %+v", col.Direct)
	}
	if len(col.Indirections) != 2 {
		t.Fatalf("expected 2 indirections, got %d", len(col.Indirections))
	}
	if col.Indirections[0].Source != IndirectionARNVar {
		t.Errorf("ARN entry point must come first, got %q", col.Indirections[0].Source)
	}
	if col.Indirections[0].Ref.Kind != secretref.KindParameterStoreARN {
		t.Errorf("unexpected kind for ARN entry point: %v", col.Indirections[0].Ref.Kind)
	}
	if col.Indirections[1].Ref.Kind != secretref.KindName || col.Indirections[1].Ref.Raw != "/app/secrets" {
		t.Errorf("unexpected name entry point: %+v", col.Indirections[1])
	}
}

func TestFromEnvironSkipsEmptyKeys(t *testing.T) {
	environ := []string{
		"SECRET_=value",
		"SECRET_ARN_=arn:aws:secretsmanager:us-west-2:1:secret:x",
		"SECRET_NAME_=plain",
	}

	col := FromEnviron(environ)
	if len(col.Direct) != 0 {
		t.Errorf("empty output keys must be skipped, got %+v", col.Direct)
	}
}

func TestFromEnvironOrderIndependent(t *testing.T) {
	a := FromEnviron([]string{"SECRET_B=x", "SECRET_A=y"})
	b := FromEnviron([]string{"SECRET_A=y", "SECRET_B=x"})

	if len(a.Direct) != 2 || len(b.Direct) != 2 {
		t.Fatalf("expected 2 pendings each, got %d and %d", len(a.Direct), len(b.Direct))
	}
	for i := range a.Direct {
		if a.Direct[i] != b.Direct[i] {
			t.Errorf("scan order changed output: %+v vs %+v", a.Direct[i], b.Direct[i])
		}
	}
}
