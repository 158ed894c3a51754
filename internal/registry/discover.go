// Package registry handles the npm side of a release: discovering workspace
// packages, polling the registry for publish status, and promoting published
// versions to the latest dist-tag.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PackageInfo is the slice of package.json the release flow reads.
type PackageInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Spec returns the name@version form npm commands take.
func (p PackageInfo) Spec() string {
	return p.Name + "@" + p.Version
}

// DiscoverPackages reads <root>/<packagesDir>/*/package.json and returns the
// workspace packages in directory order. Directories without a manifest are
// skipped; a manifest that fails to parse fails the discovery.
func DiscoverPackages(root, packagesDir string) ([]PackageInfo, error) {
	dir := filepath.Join(root, packagesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading packages directory %s: %w", dir, err)
	}

	var pkgs []PackageInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		manifest := filepath.Join(dir, entry.Name(), "package.json")
		data, err := os.ReadFile(manifest)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", manifest, err)
		}

		var info PackageInfo
		if err := json.Unmarshal(data, &info); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", manifest, err)
		}
		if info.Name == "" || info.Version == "" {
			continue
		}
		pkgs = append(pkgs, info)
	}
	return pkgs, nil
}
