package hooks

// Config is the top-level structure of .pickr.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig lists the hook points pickr supports.
type HooksConfig struct {
	// FooterSelected runs when the footer entry is committed.
	FooterSelected *HookConfig `yaml:"footer_selected"`
}

// HookConfig defines a single hook.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds
}

// DefaultTimeout is used when a hook sets no timeout, in seconds.
const DefaultTimeout = 30
