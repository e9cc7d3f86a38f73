// Command optiflow is a small CLI harness over the context optimization
// core: it wires config, logging, the session tracker, the middleware
// chain, and the tool registry together and runs a handful of built-in tools
// directly from the command line. Wiring a real tool-invocation
// transport (MCP stdio, HTTP) is left to the host process.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/rs/zerolog/log"

	"github.com/compresr/optiflow/internal/compress"
	"github.com/compresr/optiflow/internal/config"
	"github.com/compresr/optiflow/internal/middleware"
	"github.com/compresr/optiflow/internal/monitoring"
	"github.com/compresr/optiflow/internal/registry"
	"github.com/compresr/optiflow/internal/sandbox"
	"github.com/compresr/optiflow/internal/session"
)

const usage = `optiflow - context optimization core CLI

Usage:
  optiflow compress <file> [--detail minimal|normal|detailed]
  optiflow sandbox <script.js> [--backend isolated|in-process] [--timeout-ms N]
  optiflow version

Options:
  -c, --config FILE   path to a YAML config (defaults to built-in values)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	monitoring.Global(cfg.Monitoring)

	switch os.Args[1] {
	case "compress":
		runCompress(cfg, os.Args[2:])
	case "sandbox":
		runSandbox(cfg, os.Args[2:])
	case "version", "-v", "--version":
		fmt.Println("optiflow dev")
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	path := os.Getenv("OPTIFLOW_CONFIG")
	for i, arg := range os.Args {
		if (arg == "-c" || arg == "--config") && i+1 < len(os.Args) {
			path = os.Args[i+1]
		}
	}
	if path == "" {
		return &config.Config{
			Cache:    config.CacheConfig{MaxEntries: 1000},
			Compress: config.CompressConfig{DefaultDetail: "normal"},
			Sandbox: config.SandboxConfig{
				Backend:         "isolated",
				MaxExecutionMs:  sandbox.DefaultMaxExecutionMs,
				MaxMemoryMB:     sandbox.DefaultMaxMemoryMB,
				MaxOutputTokens: sandbox.DefaultMaxOutputTokens,
			},
			Monitoring: config.MonitoringConfig{LogLevel: "info", LogFormat: "console", LogOutput: "stderr"},
		}, nil
	}
	return config.Load(path)
}

// newRegistry builds the tool registry used by every subcommand,
// wrapped in a middleware chain that records each call on the
// process-wide session tracker.
func newRegistry(tracker *session.Tracker) *registry.Registry {
	chain := middleware.NewChain(middleware.Middleware{
		Name:     "session-tracking",
		Priority: 0,
		AfterTool: func(ctx *middleware.Context, result middleware.Result) middleware.Result {
			saved := ctx.TokensIn - result.TokensOut
			if saved < 0 {
				saved = 0
			}
			tracker.Record(ctx.ToolName, ctx.TokensIn, result.TokensOut, saved, 0, result.IsError)
			return result
		},
	})
	return registry.New(chain)
}

func runCompress(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("compress", flag.ExitOnError)
	detail := fs.String("detail", cfg.Compress.DefaultDetail, "minimal|normal|detailed")
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: optiflow compress <file> [--detail ...]")
		os.Exit(1)
	}

	tracker := session.New(nil)
	reg := newRegistry(tracker)
	reg.Register(registry.ToolDefinition{
		Name:        "compress_file",
		Description: "compresses a file's content at the requested detail level",
		InputSchema: &jsonschema.Schema{Type: "object"},
		Execute: func(toolArgs map[string]any) (registry.ToolResult, error) {
			path, _ := toolArgs["path"].(string)
			data, err := os.ReadFile(path)
			if err != nil {
				return registry.ToolResult{}, err
			}
			result := compress.Generic(string(data), compress.Options{Detail: compress.Detail(*detail)})
			encoded, _ := json.Marshal(result)
			return registry.ToolResult{Content: []registry.ContentBlock{{Type: "text", Text: string(encoded)}}}, nil
		},
	})

	printResult(reg.Execute("compress_file", map[string]any{"path": fs.Arg(0)}))
	printSessionSummary(tracker)
}

func runSandbox(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("sandbox", flag.ExitOnError)
	backend := fs.String("backend", cfg.Sandbox.Backend, "isolated|in-process")
	timeoutMs := fs.Int("timeout-ms", cfg.Sandbox.MaxExecutionMs, "execution cap in milliseconds")
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: optiflow sandbox <script.js> [--backend ...] [--timeout-ms N]")
		os.Exit(1)
	}

	script, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Str("path", fs.Arg(0)).Msg("failed to read script")
	}

	workDir, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve working directory")
	}

	executor := sandbox.NewExecutor(workDir)
	res := executor.Run(context.Background(), string(script), sandbox.Options{
		Backend:        sandbox.BackendKind(*backend),
		MaxExecutionMs: *timeoutMs,
		MaxMemoryMB:    cfg.Sandbox.MaxMemoryMB,
	})

	for _, line := range res.Console {
		fmt.Println(line)
	}
	if !res.OK {
		fmt.Fprintln(os.Stderr, "error:", res.Error)
		os.Exit(1)
	}
	encoded, _ := json.MarshalIndent(res.Value, "", "  ")
	fmt.Println(string(encoded))
}

func printResult(result registry.ToolResult) {
	for _, block := range result.Content {
		fmt.Println(block.Text)
	}
	if result.IsError {
		os.Exit(1)
	}
}

func printSessionSummary(tracker *session.Tracker) {
	snap := tracker.Snapshot()
	log.Info().
		Int64("invocations", snap.TotalInvocations).
		Int64("tokens_saved", snap.TotalTokensSaved).
		Float64("optimization_rate", snap.OptimizationRate).
		Msg("session summary")
}
