package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ByLCY/cvflow/layout"
	canvasrenderer "github.com/ByLCY/cvflow/renderer/canvas"
	"github.com/ByLCY/cvflow/session"
	"github.com/ByLCY/cvflow/style"
)

var (
	planCmd = &cobra.Command{
		Use:   "plan [resume.json]",
		Short: "输出画布排版 JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlan,
	}
	paginateCmd = &cobra.Command{
		Use:   "paginate [resume.json]",
		Short: "输出分页结果 JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPaginate,
	}
	exportCmd = &cobra.Command{
		Use:   "export [resume.json]",
		Short: "导出 PDF",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	previewCmd = &cobra.Command{
		Use:   "preview [resume.json]",
		Short: "把画布排版输出为 SVG 预览",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPreview,
	}
	renderCmd = &cobra.Command{
		Use:   "render [resume.json]",
		Short: "同时导出 PDF、SVG 预览与排版 JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	stylesCmd = &cobra.Command{
		Use:   "styles",
		Short: "列出内置风格",
		Args:  cobra.NoArgs,
		RunE:  runStyles,
	}
	orderCmd = &cobra.Command{
		Use:   "order [section...]",
		Short: "规范化并调整章节顺序",
		Long:  "按给定章节构建顺序（未知章节被忽略），可选地上移或下移一个章节，输出结果与缺失的章节。",
		RunE:  runOrder,
	}
)

var (
	outFile   string
	debugFile string
	moveUp    string
	moveDown  string
)

func init() {
	for _, cmd := range []*cobra.Command{planCmd, paginateCmd, exportCmd, previewCmd} {
		cmd.Flags().StringVarP(&outFile, "out", "o", "", "输出文件路径")
	}
	renderCmd.Flags().StringVar(&debugFile, "debug", "", "额外输出画布排版 JSON 的路径")
	orderCmd.Flags().StringVar(&moveUp, "up", "", "上移的章节")
	orderCmd.Flags().StringVar(&moveDown, "down", "", "下移的章节")

	rootCmd.AddCommand(planCmd, paginateCmd, exportCmd, previewCmd, renderCmd, stylesCmd, orderCmd)
}

func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// writeJSON 输出到文件；路径为空或为 "-" 时写到 w。
func writeJSON(w io.Writer, v any, path string) error {
	if path == "" || path == "-" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(v, path); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := openSession(inputArg(args), cfg, flagStyle)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), s.Plan(), outFile)
}

func runPaginate(cmd *cobra.Command, args []string) error {
	s, err := openSession(inputArg(args), cfg, flagStyle)
	if err != nil {
		return err
	}
	spec, err := pageSpec(s, cfg)
	if err != nil {
		return err
	}
	pages, _ := s.Export(spec)
	log.Printf("共 %d 页", len(pages))
	return writeJSON(cmd.OutOrStdout(), pages, outFile)
}

func runExport(cmd *cobra.Command, args []string) error {
	input := inputArg(args)
	s, err := openSession(input, cfg, flagStyle)
	if err != nil {
		return err
	}
	path, err := exportPDF(s, newRenderer(cfg), outputPath(outFile, input, cfg.OutDir, ".pdf"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成 PDF：%s\n", path)
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	input := inputArg(args)
	s, err := openSession(input, cfg, flagStyle)
	if err != nil {
		return err
	}
	path, err := exportPreview(s, newRenderer(cfg), outputPath(outFile, input, cfg.OutDir, ".svg"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成预览：%s\n", path)
	return nil
}

// runRender 并发输出 PDF 与 SVG。任一失败时取消尚未写入的另一项。
func runRender(cmd *cobra.Command, args []string) error {
	input := inputArg(args)
	s, err := openSession(input, cfg, flagStyle)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pdfPath := outputPath("", input, cfg.OutDir, ".pdf")
	svgPath := outputPath("", input, cfg.OutDir, ".svg")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := exportPDF(s, newRenderer(cfg), pdfPath)
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		_, err := exportPreview(s, newRenderer(cfg), svgPath)
		return err
	})
	if debugFile != "" {
		g.Go(func() error {
			return writeJSON(io.Discard, s.Plan(), debugFile)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "已生成：%s, %s\n", pdfPath, svgPath)
	return nil
}

// exportPDF 分页、检查溢出并写出 PDF。
func exportPDF(s *session.Session, r *canvasrenderer.Renderer, path string) (string, error) {
	spec, err := pageSpec(s, cfg)
	if err != nil {
		return "", err
	}
	warnOverflow(r, s.Plan())

	data, err := s.ExportPDF(r, spec)
	if err != nil {
		return "", fmt.Errorf("导出 PDF 失败: %w", err)
	}
	if err := writeOutput(path, data); err != nil {
		return "", err
	}
	log.Printf("PDF 已写入 %s (%d 字节)", path, len(data))
	return path, nil
}

func exportPreview(s *session.Session, r *canvasrenderer.Renderer, path string) (string, error) {
	data, err := r.RenderPreview(s.Plan())
	if err != nil {
		return "", fmt.Errorf("生成预览失败: %w", err)
	}
	if err := writeOutput(path, data); err != nil {
		return "", err
	}
	log.Printf("SVG 已写入 %s (%d 字节)", path, len(data))
	return path, nil
}

// warnOverflow 用真实字形宽度检查估算折行的结果，只记录日志。
func warnOverflow(r *canvasrenderer.Renderer, plan *layout.Plan) {
	over, err := r.CheckOverflow(plan.Runs())
	if err != nil {
		log.Printf("溢出检查失败: %v", err)
		return
	}
	for _, o := range over {
		log.Printf("警告: %s 的行超出栏宽 %.1fpt > %.1fpt: %q", o.Field, o.Width, o.Limit, o.Line)
	}
}

func runStyles(cmd *cobra.Command, _ []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "名称\t别名\t说明")
	for _, info := range style.Builtin().Infos() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, strings.Join(info.Aliases, ","), info.Description)
	}
	return tw.Flush()
}

func runOrder(cmd *cobra.Command, args []string) error {
	var names []string
	for _, a := range args {
		names = append(names, strings.Split(a, ",")...)
	}
	order := layout.DefaultOrder()
	switch {
	case len(names) > 0:
		order = layout.ParseOrder(names)
	case len(cfg.Order) > 0:
		order = layout.ParseOrder(cfg.Order)
	}
	if moveUp != "" {
		order = order.MoveUp(layout.SectionKey(strings.ToLower(moveUp)))
	}
	if moveDown != "" {
		order = order.MoveDown(layout.SectionKey(strings.ToLower(moveDown)))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, order.String())
	if missing := order.Missing(); len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for _, k := range missing {
			keys = append(keys, string(k))
		}
		fmt.Fprintf(out, "未包含（不会渲染）: %s\n", strings.Join(keys, ","))
	}
	return nil
}
