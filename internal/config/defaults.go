package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# relnote configuration
# Project config: .relnote/config.yml (this file)
# User config:    ~/.config/relnote/config.yml
# Priority: environment (RELNOTE_*) > project > user > defaults

# Packages to generate changelogs for. Each name is matched against commit
# scopes like "fix(pro-card): ..." and, with tag_prefix prepended, against
# release tags.
packages: []
#  - pro-card
#  - pro-table

# Prefix prepended to package names when filtering release tags.
# With "@acme/" the tag "@acme/pro-card@1.2.3" belongs to pro-card.
tag_prefix: ""

# Directory the changelog documents are written to (recreated on each run).
output_dir: .changelogs

# Commit-subject matcher: loose | strict
# "loose" is the historic pattern; "strict" requires an exact fix/feat type.
convention: loose

# Per-lookup GitHub deadline, in seconds.
timeout: 10

# npm-compatible registry used by the promote command.
registry_url: https://registry.npmjs.org

# Workspace directory holding one subdirectory per publishable package.
packages_dir: packages
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		// packages: Workspace package names changelogs are generated for.
		// Empty by default; the project config names them.
		"packages": []string{},
		// tag_prefix: Prepended to package names when filtering release tags.
		// Empty means tags are bare "<package>@<version>".
		"tag_prefix": "",
		// output_dir: Directory generated changelogs are written to.
		// Recreated on every generate run, so keep it dedicated.
		"output_dir": ".changelogs",
		// convention: Commit-subject matcher selection.
		// "loose" is the historic pattern; "strict" opts into the corrected one.
		"convention": "loose",
		// timeout: Per-lookup GitHub deadline in seconds. 0 disables the deadline.
		"timeout": 10,
		// registry_url: npm-compatible registry used by the promote command.
		"registry_url": "https://registry.npmjs.org",
		// packages_dir: Workspace directory with one subdirectory per package.
		"packages_dir": "packages",
	}
}
