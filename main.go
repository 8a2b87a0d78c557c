// Command cvflow 把简历内容排成无界画布，并按纸张分页导出 PDF。
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ByLCY/cvflow/internal/config"
)

var rootCmd = &cobra.Command{
	Use:               "cvflow",
	Short:             "简历排版与导出",
	Long:              "cvflow 按所选风格与主题计算简历的画布排版与分页结果，并输出 PDF、SVG 预览或调试 JSON。",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	configPath string
	verbose    bool
	flagStyle  string
	flagPage   string
	flagOutDir string
	flagFonts  []string

	// cfg 是合并后的配置，在 setup 中赋值。
	cfg = config.Defaults()
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "JSON 配置文件路径")
	pf.BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")
	pf.StringVar(&flagStyle, "style", "", "内置风格名称或 .style 文件路径，优先于输入文档中的设置")
	pf.StringVar(&flagPage, "page", "", "纸张：a4、letter 或页面高度（如 280mm）")
	pf.StringVar(&flagOutDir, "out-dir", "", "输出目录")
	pf.StringSliceVar(&flagFonts, "font", nil, "注入字体，形如 family=path，可重复")
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

// setup 合并配置：命令行参数优先，其次是环境变量与配置文件，最后是缺省值。
func setup(_ *cobra.Command, _ []string) error {
	var loaded config.Config
	if configPath != "" {
		c, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		loaded = *c
	}
	merged := loaded.FromEnv()
	merged = merged.MergeWithDefaults(config.Defaults())

	if flagStyle != "" {
		merged.Style = flagStyle
	}
	if flagPage != "" {
		merged.Page = flagPage
	}
	if flagOutDir != "" {
		merged.OutDir = flagOutDir
	}
	if len(flagFonts) > 0 {
		merged.Fonts = flagFonts
	}
	if verbose {
		merged.Verbose = true
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	cfg = merged

	log.SetFlags(0)
	log.SetPrefix("cvflow: ")
	if cfg.Verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	return nil
}
