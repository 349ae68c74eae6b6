// Package pipeline chains the generator stages: CLI record, file
// walking, MML parsing, embedded expression evaluation and output
// writing.
package pipeline

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tildegen/tildegen/mml"
	"github.com/tildegen/tildegen/sexpr"
)

// Result is the pipeline status, used verbatim as the process exit
// code.
type Result int

// Pipeline results
const (
	ResultSuccess Result = iota
	ResultInvalidArgs
	ResultInvalidInputDir
	ResultUnreadableFile
	ResultErrorReadingFile
	ResultMMLParseError
	ResultEvalError
)

var resultNames = map[Result]string{
	ResultSuccess:          "success",
	ResultInvalidArgs:      "invalid arguments",
	ResultInvalidInputDir:  "invalid input directory",
	ResultUnreadableFile:   "unreadable file",
	ResultErrorReadingFile: "error reading file",
	ResultMMLParseError:    "mml parse error",
	ResultEvalError:        "eval error",
}

func (r Result) String() string {
	return resultNames[r]
}

// Args is the parsed CLI record.
type Args struct {
	InputDir  string
	OutputDir string
}

// ParseArgs consumes the positional arguments. It returns nil when
// usage is required.
func ParseArgs(argv []string) *Args {
	if len(argv) < 2 {
		return nil
	}
	return &Args{
		InputDir:  argv[0],
		OutputDir: argv[1],
	}
}

// Run renders every loadable file under inputDir into outputDir.
func Run(inputDir, outputDir string) Result {
	cfg, err := LoadConfig(inputDir)
	if err != nil {
		log.Printf("config: %v", err)
		return ResultUnreadableFile
	}

	files, err := LoadableFiles(inputDir)
	if err != nil {
		log.Printf("walk: %v", err)
		return ResultInvalidInputDir
	}

	ctx := newContext(cfg)
	for _, path := range files {
		if !cfg.SharedContext {
			ctx = newContext(cfg)
		}

		contents, res := readFile(path)
		if res != ResultSuccess {
			return res
		}

		doc, err := mml.ParseBytes(contents)
		if err != nil {
			log.Printf("parse %s: %v", path, err)
			return ResultMMLParseError
		}

		r := NewRenderer(ctx, cfg.EvalTags)
		out, err := r.RenderDocument(doc)
		if err != nil {
			log.Printf("eval %s: %v", path, err)
			return ResultEvalError
		}

		if err := writeOutput(inputDir, outputDir, path, cfg.OutputExt, out); err != nil {
			log.Printf("write %s: %v", path, err)
			return ResultUnreadableFile
		}
	}

	return ResultSuccess
}

func newContext(cfg *Config) *sexpr.Context {
	ctx := sexpr.NewContext()
	for ns, fallbacks := range cfg.FallbackNamespaces {
		ctx.SetFallback(ns, fallbacks...)
	}
	return ctx
}

func readFile(path string) ([]byte, Result) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("open %s: %v", path, err)
		return nil, ResultUnreadableFile
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		log.Printf("read %s: %v", path, err)
		return nil, ResultErrorReadingFile
	}
	return contents, ResultSuccess
}

func writeOutput(inputDir, outputDir, path, ext, out string) error {
	rel, err := filepath.Rel(inputDir, path)
	if err != nil {
		return err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ext

	target := filepath.Join(outputDir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, []byte(out), 0o644)
}
