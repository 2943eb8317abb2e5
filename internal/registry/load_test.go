package registry

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleFramework = `
id: civ
name: Civil Law
domains: [contract]
principles:
  - id: pacta-sunt-servanda
    name: Pacta sunt servanda
    confidence: 1.0
rules:
  - id: contract-valid?
    name: Contract validity
    domain: contract
    inference_type: deductive
    derived_from: [pacta-sunt-servanda]
    conditions:
      - attribute: offer
        equals: true
      - attribute: acceptance
        equals: true
    relationships:
      - target: pacta-sunt-servanda
        name: applies
        strength: 0.9
`

func writeFramework(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFramework(t, dir, "civ.yaml", sampleFramework)
	writeFramework(t, dir, "notes.txt", "ignored")

	reg, err := LoadDir(dir, nil)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if _, ok := reg.Framework("civ"); !ok {
		t.Fatalf("civ framework not loaded")
	}
	rl, ok := reg.Rule("contract-valid?")
	if !ok {
		t.Fatalf("rule not indexed")
	}
	if rl.InferenceType != "deductive" {
		t.Errorf("inference type = %q", rl.InferenceType)
	}
	if len(rl.Conditions) != 2 {
		t.Errorf("conditions = %d, want 2", len(rl.Conditions))
	}
	if rl.Conditions[0].Equals != true {
		t.Errorf("equals decoded as %T %v, want bool true", rl.Conditions[0].Equals, rl.Conditions[0].Equals)
	}
	if rl.Relationships[0].Strength != 0.9 {
		t.Errorf("relationship strength = %v", rl.Relationships[0].Strength)
	}
}

func TestLoadDirSelection(t *testing.T) {
	dir := t.TempDir()
	writeFramework(t, dir, "civ.yaml", sampleFramework)
	writeFramework(t, dir, "other.yaml", "id: oth\nname: Other\n")

	reg, err := LoadDir(dir, []string{"oth"})
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if _, ok := reg.Framework("civ"); ok {
		t.Errorf("unselected framework loaded")
	}
	if _, ok := reg.Framework("oth"); !ok {
		t.Errorf("selected framework missing")
	}
}

func TestLoadFileDefaultsIDFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFramework(t, dir, "lab.yaml", "name: Labour Law\n")

	f, err := LoadFile(filepath.Join(dir, "lab.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if f.ID != "lab" {
		t.Errorf("id = %q, want lab", f.ID)
	}
}

func TestLoadDirRejectsDuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFramework(t, dir, "a.yaml", "id: a\nrules:\n  - id: dup?\n")
	writeFramework(t, dir, "b.yaml", "id: b\nrules:\n  - id: dup?\n")

	if _, err := LoadDir(dir, nil); err == nil {
		t.Fatalf("expected duplicate id error across files")
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
