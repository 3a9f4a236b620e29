// Package project detects project metadata and provides read-only helpers
// for walking a project tree.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Type classifies the kind of project being scored.
type Type string

const (
	TypeReactWebapp   Type = "react-webapp"
	TypeNodeAPI       Type = "node-api"
	TypeCLITool       Type = "cli-tool"
	TypeGoModule      Type = "go-module"
	TypePythonPackage Type = "python-package"
	TypeStaticSite    Type = "static-site"
	TypeUnknown       Type = "unknown"
)

// Metadata describes the project under analysis. It is computed once per run
// and never mutated afterwards.
type Metadata struct {
	Root       string    `json:"root"`
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	Type       Type      `json:"type"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// packageJSON is the subset of package.json fields used for detection.
type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Bin             json.RawMessage   `json:"bin"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// Detect inspects the project root and returns its metadata. The root must
// exist and be a directory; everything else degrades to the unknown type.
func Detect(root string) (*Metadata, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", abs)
	}

	meta := &Metadata{
		Root:       abs,
		Name:       filepath.Base(abs),
		Type:       TypeUnknown,
		AnalyzedAt: time.Now().UTC(),
	}

	if pkg := readPackageJSON(abs); pkg != nil {
		if pkg.Name != "" {
			meta.Name = pkg.Name
		}
		meta.Version = pkg.Version
		meta.Type = classifyNode(abs, pkg)
		return meta, nil
	}

	if name, ok := readGoModule(abs); ok {
		meta.Name = name
		meta.Type = TypeGoModule
		return meta, nil
	}

	if exists(filepath.Join(abs, "pyproject.toml")) || exists(filepath.Join(abs, "setup.py")) {
		meta.Type = TypePythonPackage
		return meta, nil
	}

	if exists(filepath.Join(abs, "index.html")) {
		meta.Type = TypeStaticSite
	}

	return meta, nil
}

// classifyNode distinguishes the node-flavored project types.
func classifyNode(root string, pkg *packageJSON) Type {
	deps := make(map[string]bool, len(pkg.Dependencies)+len(pkg.DevDependencies))
	for name := range pkg.Dependencies {
		deps[name] = true
	}
	for name := range pkg.DevDependencies {
		deps[name] = true
	}

	switch {
	case deps["react"] || deps["react-dom"] || deps["next"]:
		return TypeReactWebapp
	case len(pkg.Bin) > 0 && string(pkg.Bin) != "null":
		return TypeCLITool
	case deps["express"] || deps["fastify"] || deps["koa"] || deps["@nestjs/core"]:
		return TypeNodeAPI
	case exists(filepath.Join(root, "public", "index.html")):
		return TypeStaticSite
	default:
		return TypeNodeAPI
	}
}

func readPackageJSON(root string) *packageJSON {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}
	return &pkg
}

// readGoModule extracts the module name (last path element) from go.mod.
func readGoModule(root string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			path := strings.TrimSpace(strings.TrimPrefix(line, "module "))
			if path == "" {
				break
			}
			parts := strings.Split(path, "/")
			return parts[len(parts)-1], true
		}
	}
	return filepath.Base(root), true
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
