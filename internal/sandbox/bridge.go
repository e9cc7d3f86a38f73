package sandbox

import (
	"context"

	"github.com/compresr/optiflow/internal/sdk"
)

// Bridge is the capability set bound into a script's runtime. Each
// field is exposed under its SDK surface name.
type Bridge struct {
	WorkingDir string
}

// Build assembles the bridge map registered into the script runtime,
// one entry per SDK surface.
func (b Bridge) Build(ctx context.Context) map[string]any {
	files := sdk.Files{WorkingDir: b.WorkingDir}
	git := sdk.Git{WorkingDir: b.WorkingDir}
	multifile := sdk.Multifile{Files: files}

	return map[string]any{
		"files": map[string]any{
			"read":   files.Read,
			"exists": files.Exists,
			"glob":   files.Glob,
		},
		"compress": map[string]any{
			"auto":     sdk.Compress{}.Auto,
			"logs":     sdk.Compress{}.Logs,
			"diff":     sdk.Compress{}.Diff,
			"semantic": sdk.Compress{}.Semantic,
		},
		"code": map[string]any{
			"parse":    sdk.Code{}.Parse,
			"extract":  sdk.Code{}.Extract,
			"skeleton": sdk.Code{}.Skeleton,
		},
		"utils": map[string]any{
			"countTokens":    sdk.Utils{}.CountTokens,
			"detectType":     sdk.Utils{}.DetectType,
			"detectLanguage": sdk.Utils{}.DetectLanguage,
		},
		"git": map[string]any{
			"diff":   func(args ...string) (string, error) { return git.Diff(ctx, args...) },
			"log":    func(args ...string) (string, error) { return git.Log(ctx, args...) },
			"blame":  func(args ...string) (string, error) { return git.Blame(ctx, args...) },
			"status": func(args ...string) (string, error) { return git.Status(ctx, args...) },
			"branch": func(args ...string) (string, error) { return git.Branch(ctx, args...) },
		},
		"search": map[string]any{
			"grep":       sdk.Search{}.Grep,
			"symbols":    sdk.Search{}.Symbols,
			"files":      sdk.Search{}.Files,
			"references": sdk.Search{}.References,
		},
		"analyze": map[string]any{
			"dependencies": sdk.Analyze{}.Dependencies,
			"callGraph":    sdk.Analyze{}.CallGraph,
			"exports":      sdk.Analyze{}.Exports,
			"structure":    sdk.Analyze{}.Structure,
		},
		"multifile": map[string]any{
			"compress":      multifile.Compress,
			"extractShared": multifile.ExtractShared,
			"chunk":         multifile.Chunk,
			"skeletons":     multifile.Skeletons,
			"readAll":       multifile.ReadAll,
		},
		"conversation": map[string]any{
			"compress":         sdk.Conversation{}.Compress,
			"createMemory":     sdk.Conversation{}.CreateMemory,
			"extractDecisions": sdk.Conversation{}.ExtractDecisions,
			"extractCodeRefs":  sdk.Conversation{}.ExtractCodeRefs,
		},
		"pipe": func() sdk.Pipeline { return sdk.NewPipeline(files) },
	}
}
