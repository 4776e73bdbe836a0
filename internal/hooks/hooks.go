package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/pickr/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks file looked up in the work dir.
const ConfigFileName = ".pickr.hooks.yml"

// LoadConfig reads the hooks file in workDir. A missing file yields nil and
// no error since hooks are optional.
func LoadConfig(workDir string) (*Config, error) {
	path := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("No hooks config found at %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("reading hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", path, cfg.Version)
	return &cfg, nil
}

// FooterSelected returns the footer hook, or nil when none is configured.
func (c *Config) FooterSelected() *HookConfig {
	if c == nil {
		return nil
	}
	return c.Hooks.FooterSelected
}

// Variables are substituted into hook commands and exported to the hook's
// environment as PICKR_QUERY and PICKR_SESSION.
type Variables struct {
	Query   string
	Session string
}

// Execute runs hook through sh -c in workDir and returns its output.
// {{query}} and {{session}} are replaced with shell-quoted values first.
// Failures and timeouts are reported in the output rather than as errors;
// the only error returned is cancellation of ctx.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.WaitDelay = time.Second
	cmd.Env = append(os.Environ(),
		"PICKR_QUERY="+vars.Query,
		"PICKR_SESSION="+vars.Session,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}

	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}

	logger.Debug("Hook executed, output length: %d bytes", len(output))
	return output, nil
}

func expandVariables(command string, vars Variables) string {
	return strings.NewReplacer(
		"{{query}}", shellQuote(vars.Query),
		"{{session}}", shellQuote(vars.Session),
	).Replace(command)
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
