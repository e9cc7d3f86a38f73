package sdk

import (
	"context"
	"os/exec"
	"strings"

	"github.com/compresr/optiflow/internal/coreerr"
)

var allowedGitSubcommands = map[string]bool{
	"diff":   true,
	"log":    true,
	"blame":  true,
	"status": true,
	"branch": true,
}

// Git is the `git` bridge surface: a static allow-list of
// read-only-ish subcommands, everything else rejected before exec.
type Git struct {
	WorkingDir string
}

// Run executes `git <subcommand> <args...>` in WorkingDir if
// subcommand is allow-listed.
func (g Git) Run(ctx context.Context, subcommand string, args ...string) (string, error) {
	if !allowedGitSubcommands[subcommand] {
		return "", coreerr.New(coreerr.KindGitBlockedCommand, "git subcommand not allowed: "+subcommand)
	}
	for _, a := range args {
		if strings.HasPrefix(a, "-") && (strings.Contains(a, "exec") || strings.Contains(a, "upload-pack")) {
			return "", coreerr.New(coreerr.KindGitInvalidArg, "disallowed git argument: "+a)
		}
	}
	full := append([]string{subcommand}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	cmd.Dir = g.WorkingDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		if isGitNotRepo(string(out)) {
			return "", coreerr.New(coreerr.KindGitNotRepo, "not a git repository")
		}
		return "", coreerr.Wrap(coreerr.KindGitCommandFailed, err, "git %s failed: %s", subcommand, string(out))
	}
	return string(out), nil
}

func (g Git) Diff(ctx context.Context, args ...string) (string, error)   { return g.Run(ctx, "diff", args...) }
func (g Git) Log(ctx context.Context, args ...string) (string, error)    { return g.Run(ctx, "log", args...) }
func (g Git) Blame(ctx context.Context, args ...string) (string, error)  { return g.Run(ctx, "blame", args...) }
func (g Git) Status(ctx context.Context, args ...string) (string, error) { return g.Run(ctx, "status", args...) }
func (g Git) Branch(ctx context.Context, args ...string) (string, error) { return g.Run(ctx, "branch", args...) }

func isGitNotRepo(output string) bool {
	return strings.Contains(output, "not a git repository")
}
