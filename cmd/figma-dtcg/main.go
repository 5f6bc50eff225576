package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	figmadtcg "github.com/kataras/figma-dtcg"
	"github.com/kataras/figma-dtcg/pkg/color"
	"github.com/kataras/figma-dtcg/pkg/config"
	"github.com/kataras/figma-dtcg/pkg/converter"
	"github.com/kataras/figma-dtcg/pkg/dtcg"
	"github.com/kataras/figma-dtcg/pkg/figma"
	"github.com/kataras/figma-dtcg/pkg/formatter"
	"github.com/kataras/figma-dtcg/pkg/writer"

	fcolor "github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigFile = "figma-dtcg.yaml"

// fileConfig is the YAML configuration file: the export selection plus
// output settings.
type fileConfig struct {
	converter.Config `yaml:",inline"`

	Output string `yaml:"output"`
	Zip    bool   `yaml:"zip"`
	Report string `yaml:"report"`
}

var (
	inputFile         string
	figmaURL          string
	accessToken       string
	timeout           time.Duration
	configFile        string
	outputDir         string
	zipOutput         bool
	reportFile        string
	collections       string
	modes             string
	textStyles        string
	effectStyles      string
	unit              string
	colorFormat       string
	resolveReferences bool
	descriptions      bool
	verbose           bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "figma-dtcg",
		Short:        "Convert Figma variables and styles into DTCG design tokens",
		Long:         "A tool to convert Figma variables, text styles and effect styles into W3C Design Tokens Community Group (DTCG) JSON files",
		SilenceUsage: true,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export design tokens once",
		RunE:  runExport,
	}
	addExportFlags(exportCmd)

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Export design tokens every time the input document changes",
		RunE:  runWatch,
	}
	addExportFlags(watchCmd)
	watchCmd.MarkFlagRequired("input")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-dtcg version %s\n", figmadtcg.Version)
		},
	}

	rootCmd.AddCommand(exportCmd, watchCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Extraction document (JSON) to convert")
	cmd.Flags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL to fetch variables from (when no input file is given)")
	cmd.Flags().StringVarP(&accessToken, "token", "t", os.Getenv("FIGMA_TOKEN"), "Figma Personal Access Token (defaults to $FIGMA_TOKEN)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "HTTP timeout for Figma API requests")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file (default \""+defaultConfigFile+"\" when present)")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "tokens", "Output directory")
	cmd.Flags().BoolVar(&zipOutput, "zip", false, "Bundle all files into "+writer.DefaultZipName)
	cmd.Flags().StringVar(&reportFile, "report", "", "Write a markdown export report to this file")
	cmd.Flags().StringVar(&collections, "collections", "", "Comma-separated collection ids (default: all)")
	cmd.Flags().StringVar(&modes, "modes", "", "Comma-separated collectionId:modeId pairs (default: all modes)")
	cmd.Flags().StringVar(&textStyles, "text-styles", "", "Comma-separated text style ids")
	cmd.Flags().StringVar(&effectStyles, "effect-styles", "", "Comma-separated effect style ids")
	cmd.Flags().StringVar(&unit, "unit", string(dtcg.UnitPx), "Dimension unit: px or rem")
	cmd.Flags().StringVar(&colorFormat, "color-format", string(color.FormatHex), "Color format: hex or oklch")
	cmd.Flags().BoolVar(&resolveReferences, "resolve-references", false, "Flatten aliases into values instead of {path} references")
	cmd.Flags().BoolVar(&descriptions, "descriptions", true, "Include variable and style descriptions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print progress messages")
}

// loadSettings merges defaults, the YAML configuration file and flags, in
// increasing order of precedence.
func loadSettings(cmd *cobra.Command) (*fileConfig, bool, error) {
	settings := &fileConfig{Config: *converter.NewDefaultConfig(), Output: outputDir}

	if configFile != "" {
		if err := config.Load(configFile, settings); err != nil {
			return nil, false, err
		}
	} else if _, err := config.LoadOptional(defaultConfigFile, settings); err != nil {
		return nil, false, err
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		settings.Output = outputDir
	}
	if flags.Changed("zip") {
		settings.Zip = zipOutput
	}
	if flags.Changed("report") {
		settings.Report = reportFile
	}
	if flags.Changed("collections") {
		settings.Collections = figmadtcg.ParseIDs(collections)
	}
	if flags.Changed("modes") {
		parsed, err := figmadtcg.ParseModes(modes)
		if err != nil {
			return nil, false, err
		}
		settings.Modes = parsed
	}
	if flags.Changed("text-styles") {
		settings.TextStyles = figmadtcg.ParseIDs(textStyles)
	}
	if flags.Changed("effect-styles") {
		settings.EffectStyles = figmadtcg.ParseIDs(effectStyles)
	}
	if flags.Changed("unit") {
		settings.DefaultUnit = dtcg.Unit(unit)
	}
	if flags.Changed("color-format") {
		settings.ColorFormat = color.Format(colorFormat)
	}
	if flags.Changed("resolve-references") {
		settings.ResolveReferences = resolveReferences
	}
	if flags.Changed("descriptions") {
		settings.IncludeDescriptions = descriptions
	}

	if err := settings.Validate(); err != nil {
		return nil, false, err
	}

	selectAll := len(settings.Collections) == 0 && len(settings.TextStyles) == 0 && len(settings.EffectStyles) == 0
	return settings, selectAll, nil
}

func buildOptions(cmd *cobra.Command, logger *zap.SugaredLogger) (figmadtcg.Options, *fileConfig, error) {
	settings, selectAll, err := loadSettings(cmd)
	if err != nil {
		return figmadtcg.Options{}, nil, err
	}

	return figmadtcg.Options{
		InputFile:     inputFile,
		FileURL:       figmaURL,
		AccessToken:   accessToken,
		ClientOptions: []figma.ClientOption{figma.WithHTTPClient(&http.Client{Timeout: timeout})},
		Config:        &settings.Config,
		SelectAll:     selectAll,
		Logger:        logger,
	}, settings, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	red := fcolor.New(fcolor.FgRed)

	printBanner()

	logger := newLogger(verbose)
	defer logger.Sync()

	opts, settings, err := buildOptions(cmd, logger)
	if err != nil {
		red.Printf("Error: %v\n", err)
		return err
	}

	result, err := figmadtcg.Run(opts)
	if err != nil {
		red.Printf("Error: %v\n", err)
		return err
	}

	if err := save(result, settings); err != nil {
		red.Printf("Error: %v\n", err)
		return err
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	red := fcolor.New(fcolor.FgRed)
	cyan := fcolor.New(fcolor.FgCyan)

	printBanner()

	logger := newLogger(verbose)
	defer logger.Sync()

	opts, settings, err := buildOptions(cmd, logger)
	if err != nil {
		red.Printf("Error: %v\n", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cyan.Printf("👀 Watching %s (Ctrl+C to stop)\n", opts.InputFile)
	err = figmadtcg.Watch(ctx, opts, func(result *figmadtcg.Result, err error) {
		if err == nil {
			err = save(result, settings)
		}
		if err != nil {
			red.Printf("Error: %v\n", err)
		}
	})
	if err != nil {
		red.Printf("Error: %v\n", err)
		return err
	}
	return nil
}

func printBanner() {
	cyan := fcolor.New(fcolor.FgCyan)
	cyan.Println("\n🎨 Figma DTCG Exporter")
	cyan.Println("======================")
	cyan.Println()
}

// save writes the token files and the optional report, then prints a summary.
func save(result *figmadtcg.Result, settings *fileConfig) error {
	green := fcolor.New(fcolor.FgGreen)
	red := fcolor.New(fcolor.FgRed)
	cyan := fcolor.New(fcolor.FgCyan)

	green.Printf("\n💾 Writing to %s... ", settings.Output)
	written, err := writer.Write(result.Files, writer.Config{OutputDir: settings.Output, Zip: settings.Zip})
	if err != nil {
		red.Printf("✗\n")
		return err
	}
	green.Println("✓")

	cyan.Println("\n📊 Export Summary:")
	total := 0
	for _, f := range written.Files {
		label := f.CollectionName
		if f.ModeName != "" {
			label += " / " + f.ModeName
		}
		fmt.Printf("  • %s: %d token(s) (%s)\n", f.Filename, f.Tokens, label)
		total += f.Tokens
	}
	fmt.Printf("  • Total: %d token(s) in %d file(s)\n", total, len(written.Files))

	if settings.Report != "" {
		title := filepath.Base(result.Source)
		md := formatter.ToMarkdown(result.Files, title)
		if err := os.WriteFile(settings.Report, []byte(md), 0644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("  • Report: %s\n", settings.Report)
	}

	if written.ZipPath != "" {
		green.Printf("\n✨ Successfully exported design tokens to %s\n\n", written.ZipPath)
	} else {
		green.Printf("\n✨ Successfully exported design tokens to %s\n\n", settings.Output)
	}
	return nil
}
