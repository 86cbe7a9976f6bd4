package hooks

// Config is the top-level configuration for hooks loaded from .drafter.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	// PostCommit runs after a content snapshot is committed, e.g. to
	// trigger a site rebuild or push the content to a deployment branch.
	PostCommit *HookConfig `yaml:"post_commit"`
}

// HookConfig defines a single hook's configuration.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
