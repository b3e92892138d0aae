package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ByLCY/ragwrap/config"
	"github.com/ByLCY/ragwrap/input"
	"github.com/ByLCY/ragwrap/layout"
	"github.com/ByLCY/ragwrap/renderer"
	canvasrenderer "github.com/ByLCY/ragwrap/renderer/canvas"
	previewrenderer "github.com/ByLCY/ragwrap/renderer/preview"
	textrenderer "github.com/ByLCY/ragwrap/renderer/text"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("ragwrap: %v", err)
	}
}

// cliFlags 保存命令行参数，只有显式给出的参数才会覆盖环境变量与配置文件。
type cliFlags struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	var f cliFlags
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "ragwrap",
		Short: "Minimum-raggedness line breaking for plain-text paragraphs",
		Long: "ragwrap reads paragraphs, each preceded by a line holding its width limit L, " +
			"and breaks every paragraph so that the sum of squared trailing spaces over all lines " +
			"except the last is as small as possible. A line holding 0 ends the input.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), &f)
			if err != nil {
				return err
			}
			logger := log.New(cmd.ErrOrStderr(), "ragwrap: ", 0)
			if cfg.Quiet {
				logger.SetOutput(io.Discard)
			}
			return run(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "JSON 配置文件路径")
	fl.StringVarP(&f.cfg.Input, "in", "i", def.Input, "输入文件路径，- 表示标准输入")
	fl.StringVarP(&f.cfg.Output, "out", "o", def.Output, "输出文件路径，- 表示标准输出")
	fl.StringVarP(&f.cfg.Format, "format", "f", def.Format, "输出格式: text, preview, pdf, json")
	fl.StringVar(&f.cfg.Strategy, "strategy", def.Strategy, "断行策略: optimal 或 greedy")
	fl.StringVar(&f.cfg.Debug, "debug", "", "调试 JSON 输出路径（包含每个末行长度的代价与贪心基线）")
	fl.StringVar(&f.cfg.Data, "data", "", "绑定到 ${} 占位符的 JSON 数据")
	fl.BoolVarP(&f.cfg.Quiet, "quiet", "q", false, "不输出警告")
	fl.IntVar(&f.cfg.MaxLines, "max-lines", def.MaxLines, "每段最多读取的文本行数，0 表示不限")
	fl.StringVar(&f.cfg.PDF.FontSize, "font-size", def.PDF.FontSize, "PDF 字号，例如 10pt")
	fl.StringVar(&f.cfg.PDF.LineHeight, "line-height", def.PDF.LineHeight, "PDF 行高，倍数 (1.4x) 或长度 (14pt)")
	fl.StringVar(&f.cfg.PDF.Margin, "margin", def.PDF.Margin, "PDF 页边距，例如 18mm")
	fl.StringVar(&f.cfg.PDF.Font, "font", "", "PDF 字体文件路径，默认内置 Latin Modern Mono")
	fl.StringVar(&f.cfg.PDF.Title, "title", "", "PDF 页眉标题")
	fl.BoolVar(&f.cfg.PDF.Guides, "guides", false, "在 PDF 中画出第 L 列参考线")
	return cmd
}

// resolveConfig 依次叠加默认值、环境变量、配置文件与命令行参数，并校验结果。
func resolveConfig(fs *pflag.FlagSet, f *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if f.configPath != "" {
		if err := cfg.LoadFile(f.configPath); err != nil {
			return nil, err
		}
	}

	overrides := map[string]func(){
		"in":          func() { cfg.Input = f.cfg.Input },
		"out":         func() { cfg.Output = f.cfg.Output },
		"format":      func() { cfg.Format = f.cfg.Format },
		"strategy":    func() { cfg.Strategy = f.cfg.Strategy },
		"debug":       func() { cfg.Debug = f.cfg.Debug },
		"data":        func() { cfg.Data = f.cfg.Data },
		"quiet":       func() { cfg.Quiet = f.cfg.Quiet },
		"max-lines":   func() { cfg.MaxLines = f.cfg.MaxLines },
		"font-size":   func() { cfg.PDF.FontSize = f.cfg.PDF.FontSize },
		"line-height": func() { cfg.PDF.LineHeight = f.cfg.PDF.LineHeight },
		"margin":      func() { cfg.PDF.Margin = f.cfg.PDF.Margin },
		"font":        func() { cfg.PDF.Font = f.cfg.PDF.Font },
		"title":       func() { cfg.PDF.Title = f.cfg.PDF.Title },
		"guides":      func() { cfg.PDF.Guides = f.cfg.PDF.Guides },
	}
	fs.Visit(func(fl *pflag.Flag) {
		if apply, ok := overrides[fl.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// run 串联读取、断行与渲染。
func run(cfg *config.Config, stdin io.Reader, stdout io.Writer, logger *log.Logger) error {
	data, err := cfg.ParsedData()
	if err != nil {
		return err
	}
	strategy, err := layout.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}
	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	src := stdin
	if !isStdio(cfg.Input) {
		file, err := os.Open(cfg.Input)
		if err != nil {
			return fmt.Errorf("无法打开输入文件 %s: %w", cfg.Input, err)
		}
		defer file.Close()
		src = file
	}

	batch, err := input.ReadLimit(src, cfg.MaxLines)
	if err != nil {
		return fmt.Errorf("解析输入失败: %w", err)
	}
	if batch.Stop == input.StopMalformedHeader {
		logger.Printf("warn: 第 %d 行不是合法的宽度，输入在此结束", batch.StopLine)
	}

	result, err := layout.Build(batch, data, layout.BuildOptions{
		Strategy: strategy,
		Logger:   logger,
		Debug:    layout.DebugOptions{Trials: cfg.Debug != "", Baseline: cfg.Debug != ""},
	})
	if err != nil {
		return fmt.Errorf("断行失败: %w", err)
	}

	if cfg.Debug != "" {
		if err := writeDebug(result, cfg.Debug); err != nil {
			return err
		}
	}

	out, err := r.Render(result)
	if err != nil {
		return fmt.Errorf("渲染 %s 失败: %w", cfg.Format, err)
	}
	if isStdio(cfg.Output) {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	logger.Printf("已生成 %s：%s", cfg.Format, cfg.Output)
	return nil
}

func newRenderer(cfg *config.Config) (renderer.Renderer, error) {
	switch cfg.Format {
	case "text":
		return textrenderer.Renderer{}, nil
	case "preview":
		return previewrenderer.NewRenderer(), nil
	case "json":
		return renderer.RenderFunc(layout.EncodeJSON), nil
	case "pdf":
		s, err := cfg.PDFSettings()
		if err != nil {
			return nil, err
		}
		return canvasrenderer.NewRenderer(canvasrenderer.Options{
			Margin:     s.Margin,
			FontSize:   s.FontSize,
			LineHeight: s.LineHeight,
			Font:       cfg.PDF.Font,
			Title:      cfg.PDF.Title,
			Guides:     cfg.PDF.Guides,
		}), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownFormat, cfg.Format)
	}
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func isStdio(path string) bool { return path == "" || path == "-" }
