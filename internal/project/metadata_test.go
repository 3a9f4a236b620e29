package project

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetect_ReactWebapp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"name": "shop-frontend",
		"version": "2.1.0",
		"dependencies": {"react": "^18.0.0", "react-dom": "^18.0.0"}
	}`)

	meta, err := Detect(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Type != TypeReactWebapp {
		t.Errorf("expected react-webapp, got %s", meta.Type)
	}
	if meta.Name != "shop-frontend" || meta.Version != "2.1.0" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

func TestDetect_NodeCLITool(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"name": "mytool",
		"version": "1.0.0",
		"bin": {"mytool": "./bin/cli.js"}
	}`)

	meta, err := Detect(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Type != TypeCLITool {
		t.Errorf("expected cli-tool, got %s", meta.Type)
	}
}

func TestDetect_GoModule(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module github.com/acme/widget\n\ngo 1.26\n")

	meta, err := Detect(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Type != TypeGoModule {
		t.Errorf("expected go-module, got %s", meta.Type)
	}
	if meta.Name != "widget" {
		t.Errorf("expected module name from go.mod, got %q", meta.Name)
	}
}

func TestDetect_PythonPackage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"widget\"\n")

	meta, err := Detect(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Type != TypePythonPackage {
		t.Errorf("expected python-package, got %s", meta.Type)
	}
}

func TestDetect_UnknownFallsBackToDirName(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "nothing to see")

	meta, err := Detect(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Type != TypeUnknown {
		t.Errorf("expected unknown, got %s", meta.Type)
	}
	if meta.Name != filepath.Base(root) {
		t.Errorf("expected directory name, got %q", meta.Name)
	}
}

func TestDetect_MissingRoot(t *testing.T) {
	if _, err := Detect(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestDetect_MalformedPackageJSON(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", "{not json")

	meta, err := Detect(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unreadable package.json degrades instead of failing detection.
	if meta.Type != TypeUnknown {
		t.Errorf("expected unknown for malformed package.json, got %s", meta.Type)
	}
}

func TestWalkFiles_SkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.js", "console.log(1)")
	writeFile(t, root, "node_modules/left-pad/index.js", "module.exports = x => x")
	writeFile(t, root, ".git/config", "[core]")
	writeFile(t, root, "README.md", "# hi")

	var paths []string
	err := WalkFiles(root, nil, func(f FileInfo) {
		paths = append(paths, f.RelPath)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Strings(paths)
	want := []string{"README.md", "src/index.js"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("expected %v, got %v", want, paths)
			break
		}
	}
}

func TestWalkFiles_CustomIgnores(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "generated/api.go", "package api")
	writeFile(t, root, "main.go", "package main")

	var paths []string
	err := WalkFiles(root, []string{"generated"}, func(f FileInfo) {
		paths = append(paths, f.RelPath)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 1 || paths[0] != "main.go" {
		t.Errorf("expected only main.go, got %v", paths)
	}
}

func TestHasExtension(t *testing.T) {
	if !HasExtension("src/App.TSX", ".tsx") {
		t.Error("extension match should be case-insensitive")
	}
	if HasExtension("Makefile", ".go") {
		t.Error("no extension should not match")
	}
}
