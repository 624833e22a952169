/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"strings"
	"testing"
)

const sampleSpec = `
components:
  schemas:
    Player:
      type: object
      x-dynamodb-keymap:
        table: app-data
        hashKeyAttr: PK
        rangeKeyAttr: SK
        hashKey: "PLAYER#{ID}"
        rangeKey: "PLAYER#{ID}"
      properties:
        id:
          type: string
    MatchRecord:
      type: object
      x-dynamodb-keymap:
        table: app-data
        hashKeyAttr: PK
        rangeKeyAttr: SK
        hashKey: "PLAYER#{PlayerID}"
        rangeKey: "MATCH#{MatchID}"
    AuditNote:
      type: object
      properties:
        text:
          type: string
`

func TestGenerate(t *testing.T) {
	code, err := Generate([]byte(sampleSpec), "models")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(code, "package models") {
		t.Error("Generated code should carry the requested package name")
	}
	if !strings.Contains(code, "// Code generated by keymapgen. DO NOT EDIT.") {
		t.Error("Generated code should carry the generated-code marker")
	}

	// Both annotated schemas are registered; the unannotated one is skipped
	if !strings.Contains(code, "registry.RegisterTableMapping[Player]") {
		t.Error("Expected a table mapping registration for Player")
	}
	if !strings.Contains(code, "registry.RegisterTableMapping[MatchRecord]") {
		t.Error("Expected a table mapping registration for MatchRecord")
	}
	if strings.Contains(code, "AuditNote") {
		t.Error("Schemas without a keymap extension should be skipped")
	}

	// Key templates expand into Sprintf expressions over the entity fields
	if !strings.Contains(code, `fmt.Sprintf("PLAYER#%v", m.PlayerID)`) {
		t.Errorf("Expected expanded hash key expression, got:\n%s", code)
	}
	if !strings.Contains(code, `keys.Composite(fmt.Sprintf("PLAYER#%v", m.PlayerID), fmt.Sprintf("MATCH#%v", m.MatchID))`) {
		t.Errorf("Expected composite key construction, got:\n%s", code)
	}

	if !strings.Contains(code, `registry.RegisterType[Player]("Player"`) {
		t.Error("Expected an unmarshal registration for Player")
	}
}

func TestGenerateHashOnly(t *testing.T) {
	spec := `
components:
  schemas:
    Counter:
      x-dynamodb-keymap:
        table: counters
        hashKeyAttr: PK
        hashKey: "COUNTER#{Name}"
`
	code, err := Generate([]byte(spec), "models")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(code, `keys.HashOnly(fmt.Sprintf("COUNTER#%v", m.Name))`) {
		t.Errorf("Expected hash-only key construction, got:\n%s", code)
	}
	if strings.Contains(code, "RangeKeyAttr") {
		t.Error("Hash-only mappings should not set RangeKeyAttr")
	}
}

func TestGenerateStaticKeys(t *testing.T) {
	spec := `
components:
  schemas:
    Config:
      x-dynamodb-keymap:
        table: app-data
        hashKeyAttr: PK
        rangeKeyAttr: SK
        hashKey: "CONFIG"
        rangeKey: "SINGLETON"
`
	code, err := Generate([]byte(spec), "models")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(code, `keys.Composite("CONFIG", "SINGLETON")`) {
		t.Errorf("Static templates should become plain literals, got:\n%s", code)
	}
	// No placeholders means no fmt import and no receiver variable
	if strings.Contains(code, `"fmt"`) || strings.Contains(code, "m := e.(*Config)") {
		t.Errorf("Static keys should not pull in fmt or the receiver, got:\n%s", code)
	}
}

func TestGenerateValidation(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{
			name: "MissingTable",
			spec: `
components:
  schemas:
    Player:
      x-dynamodb-keymap:
        hashKeyAttr: PK
        hashKey: "PLAYER#{ID}"
`,
		},
		{
			name: "MissingHashKey",
			spec: `
components:
  schemas:
    Player:
      x-dynamodb-keymap:
        table: app-data
        hashKeyAttr: PK
`,
		},
		{
			name: "RangeKeyWithoutAttr",
			spec: `
components:
  schemas:
    Player:
      x-dynamodb-keymap:
        table: app-data
        hashKeyAttr: PK
        hashKey: "PLAYER#{ID}"
        rangeKey: "PLAYER#{ID}"
`,
		},
		{
			name: "NoAnnotatedSchemas",
			spec: `
components:
  schemas:
    Player:
      type: object
`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Generate([]byte(tc.spec), "models"); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}
