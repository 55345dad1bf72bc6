package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestBackupName(t *testing.T) {
	got := BackupName("/home/u/.zshrc", fixedNow)
	want := "/home/u/.zshrc.backup.20260314_092653"
	if got != want {
		t.Errorf("BackupName = %q, want %q", got, want)
	}
}

func TestBackupIfExists_RegularFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "settings.json")
	if err := os.WriteFile(path, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := BackupIfExists(path, fixedNow)
	if err != nil {
		t.Fatalf("BackupIfExists: %v", err)
	}
	if backup != BackupName(path, fixedNow) {
		t.Errorf("backup = %q, want %q", backup, BackupName(path, fixedNow))
	}
	if Exists(path) {
		t.Error("original path still exists")
	}
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("backup content = %q, want %q", data, "original")
	}
}

func TestBackupIfExists_Directory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "skills")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := BackupIfExists(dir, fixedNow)
	if err != nil {
		t.Fatalf("BackupIfExists: %v", err)
	}
	if _, err := os.Stat(filepath.Join(backup, "a.md")); err != nil {
		t.Errorf("backup directory missing content: %v", err)
	}
}

func TestBackupIfExists_SymlinkRemovedWithoutBackup(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "real.md")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(tmp, "CLAUDE.md")
	if err := CreateSymlink(target, link); err != nil {
		t.Fatal(err)
	}

	backup, err := BackupIfExists(link, fixedNow)
	if err != nil {
		t.Fatalf("BackupIfExists: %v", err)
	}
	if backup != "" {
		t.Errorf("backup = %q, want none for a symlink", backup)
	}
	if Exists(link) {
		t.Error("symlink still exists")
	}
	if Exists(BackupName(link, fixedNow)) {
		t.Error("a backup was created for a symlink")
	}
	if !Exists(target) {
		t.Error("symlink target was removed")
	}
}

func TestBackupIfExists_Missing(t *testing.T) {
	backup, err := BackupIfExists(filepath.Join(t.TempDir(), "nothing"), fixedNow)
	if err != nil {
		t.Fatalf("BackupIfExists: %v", err)
	}
	if backup != "" {
		t.Errorf("backup = %q, want empty", backup)
	}
}

func TestBackupIfExists_SameSecondCollision(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "rules.md")

	var backups []string
	for _, content := range []string{"first", "second"} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		b, err := BackupIfExists(path, fixedNow)
		if err != nil {
			t.Fatalf("BackupIfExists: %v", err)
		}
		backups = append(backups, b)
	}

	if backups[0] == backups[1] {
		t.Fatalf("both backups used %q", backups[0])
	}
	if want := BackupName(path, fixedNow) + "_1"; backups[1] != want {
		t.Errorf("second backup = %q, want %q", backups[1], want)
	}
	first, _ := os.ReadFile(backups[0])
	if string(first) != "first" {
		t.Errorf("first backup content = %q, want %q", first, "first")
	}
}

func TestLink_BackupNotDataLoss(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "src", "CLAUDE.md")
	if err := os.MkdirAll(filepath.Dir(source), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(source, []byte("managed"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(tmp, "CLAUDE.md")
	if err := os.WriteFile(target, []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := Link(source, target, fixedNow)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if out.Result != LinkCreated {
		t.Errorf("Result = %v, want %v", out.Result, LinkCreated)
	}
	if !PointsTo(target, source) {
		t.Error("target is not a link to source")
	}
	data, err := os.ReadFile(out.Backup)
	if err != nil {
		t.Fatalf("reading backup: %v", err)
	}
	if string(data) != "original" {
		t.Errorf("backup content = %q, want %q", data, "original")
	}
}

func TestLink_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	source := filepath.Join(tmp, "settings.json")
	if err := os.WriteFile(source, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(tmp, "link.json")

	if _, err := Link(source, target, fixedNow); err != nil {
		t.Fatalf("first Link: %v", err)
	}
	out, err := Link(source, target, fixedNow.Add(time.Second))
	if err != nil {
		t.Fatalf("second Link: %v", err)
	}
	if out.Result != LinkUnchanged {
		t.Errorf("Result = %v, want %v", out.Result, LinkUnchanged)
	}
	if out.Backup != "" {
		t.Errorf("Backup = %q, want none", out.Backup)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, want 2 (no backups)", len(entries))
	}
}

func TestLink_ReplacesStaleLink(t *testing.T) {
	tmp := t.TempDir()
	oldSrc := filepath.Join(tmp, "old.md")
	newSrc := filepath.Join(tmp, "new.md")
	for _, p := range []string{oldSrc, newSrc} {
		if err := os.WriteFile(p, []byte(p), 0644); err != nil {
			t.Fatal(err)
		}
	}
	target := filepath.Join(tmp, "target.md")
	if err := CreateSymlink(oldSrc, target); err != nil {
		t.Fatal(err)
	}

	out, err := Link(newSrc, target, fixedNow)
	if err != nil {
		t.Fatalf("Link: %v", err)
	}
	if out.Backup != "" {
		t.Errorf("stale link was backed up to %q", out.Backup)
	}
	if !PointsTo(target, newSrc) {
		t.Error("target does not point at the new source")
	}
}

func TestLink_MissingSource(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "target.md")
	if err := os.WriteFile(target, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Link(filepath.Join(tmp, "missing.md"), target, fixedNow)
	if !errors.Is(err, ErrSourceMissing) {
		t.Fatalf("err = %v, want ErrSourceMissing", err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "keep" {
		t.Error("target was touched although the source is missing")
	}
}
