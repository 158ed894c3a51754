package errors

import "fmt"

// Common error messages for the relnote CLI.
// These templates ensure consistent, actionable error messages.

// MissingGitHubToken creates an error for a missing GITHUB_TOKEN variable.
func MissingGitHubToken() *CLIError {
	return NewConfigError(
		"GITHUB_TOKEN environment variable is not set",
		"Create a token at https://github.com/settings/tokens (public_repo scope is enough for public repositories)",
		"Export it before running: export GITHUB_TOKEN=<token>",
	)
}

// NotARepository creates an error when the working directory is not inside a git repository.
func NotARepository(err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"not a git repository",
		"Run relnote from inside the monorepo you want changelogs for",
		"Initialize one with: git init",
	)
}

// NoPackagesConfigured creates an error when no packages are selected for generation.
func NoPackagesConfigured() *CLIError {
	return NewConfigError(
		"no packages configured",
		"List packages in .relnote/config.yml under the 'packages' key",
		"Or pass them directly: relnote generate --packages pro-card,pro-table",
		"Create a starter config with: relnote init",
	)
}

// MissingOriginRemote creates an error when the GitHub repository cannot be derived.
func MissingOriginRemote(err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"cannot determine the GitHub repository from the origin remote",
		"Add one with: git remote add origin git@github.com:<owner>/<repo>.git",
		"Check the current remotes with: git remote -v",
	)
}

// ConfigLoadError creates an error for an unreadable or invalid config file.
func ConfigLoadError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .relnote/config.yml for YAML syntax errors",
		"Recreate a starter config with: relnote init",
	)
}

// ConfigAlreadyExists creates an error when init finds an existing config file.
func ConfigAlreadyExists(path string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("config file already exists: %s", path),
		"Edit the existing file directly",
		"Or remove it first if you want a fresh template",
	)
}

// GitHubLookupError creates an error when the GitHub API cannot be reached at all.
func GitHubLookupError(err error) *CLIError {
	return WrapWithMessage(err, Network,
		"GitHub API request failed",
		"Check your network connection",
		"Verify the token is valid and not expired",
		"Raise the per-lookup deadline: RELNOTE_TIMEOUT=30",
	)
}

// RegistryUnreachable creates an error when the npm registry cannot be polled.
func RegistryUnreachable(url string, err error) *CLIError {
	return WrapWithMessage(err, Network,
		fmt.Sprintf("cannot reach the npm registry at %s", url),
		"Check your network connection",
		"Point registry_url at a reachable mirror if you use a private registry",
	)
}

// PackagesNotPublished creates an error when promotion is blocked by missing releases.
func PackagesNotPublished(count int) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%d package(s) are not published at their workspace version yet", count),
		"Publish the missing versions first: npm publish --tag next",
		"Then re-run: relnote promote",
	)
}

// PackagesDirNotFound creates an error for a missing workspace packages directory.
func PackagesDirNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("packages directory not found: %s", path),
		"Run relnote from the workspace root",
		"Or point packages_dir at the directory holding your packages",
	)
}

// OutputDirNotWritable creates an error when the changelog directory cannot be written.
func OutputDirNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write changelogs to %s", path),
		"Check directory permissions: ls -la "+path,
		"Or pick another location with --output",
	)
}
