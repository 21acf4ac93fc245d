package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/wellview/internal/config"
	"github.com/san-kum/wellview/internal/field"
)

var (
	configFile string
	preset     string
	logLevel   string
	dbPath     string
	sampleName string
	outFile    string
	// Render
	width     float64
	height    float64
	pitch     float64
	yaw       float64
	zoom      float64
	wellID    string
	component string
	// View
	watch   bool
	logFile string
	// Serve
	addr string
	// Path export
	format string
	// Snapshots
	snapName string

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wellview",
		Short: "3d well trajectory and completion viewer",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = resolveConfig(cmd)
			if err != nil {
				return err
			}
			return setupLogger(os.Stderr, cfg.Log.Level)
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", config.DefaultLevel, "debug, info, warn or error")
	pf.StringVar(&dbPath, "db", config.DefaultDBPath, "snapshot database")
	pf.StringVar(&sampleName, "sample", "north-sea", "built-in field used when no file is given")

	viewCmd := &cobra.Command{
		Use:   "view [field]",
		Short: "interactive terminal viewer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().BoolVar(&watch, "watch", false, "reload the field file when it changes")
	viewCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the viewer runs")

	renderCmd := &cobra.Command{
		Use:   "render [field]",
		Short: "render the field to svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "image width")
	renderCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "image height")
	renderCmd.Flags().Float64Var(&pitch, "pitch", -45, "pitch in degrees")
	renderCmd.Flags().Float64Var(&yaw, "yaw", 45, "yaw in degrees")
	renderCmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor")
	renderCmd.Flags().StringVar(&wellID, "well", "", "selected well")
	renderCmd.Flags().StringVar(&component, "component", "", "selected component")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	summaryCmd := &cobra.Command{
		Use:   "summary [field]",
		Short: "total MD, final TVD and displacement per well",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummary,
	}

	pathCmd := &cobra.Command{
		Use:   "path [field]",
		Short: "export a computed well path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPath,
	}
	pathCmd.Flags().StringVar(&wellID, "well", "", "well id (default first well)")
	pathCmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	pathCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	serveCmd := &cobra.Command{
		Use:   "serve [field]",
		Short: "serve the field over http",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	serveCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "image width")
	serveCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "image height")

	surveyCmd := &cobra.Command{
		Use:   "survey [stations]",
		Short: "parse a station table and report the computed path",
		Args:  cobra.ExactArgs(1),
		RunE:  runSurvey,
	}

	importCmd := &cobra.Command{
		Use:   "import [field] [stations]",
		Short: "replace the survey of a well from a station table",
		Args:  cobra.ExactArgs(2),
		RunE:  runImport,
	}
	importCmd.Flags().StringVar(&wellID, "well", "", "well id")
	importCmd.MarkFlagRequired("well")

	saveCmd := &cobra.Command{
		Use:   "save [field]",
		Short: "store a field snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSave,
	}
	saveCmd.Flags().StringVar(&snapName, "name", "", "snapshot name (default field name)")

	loadCmd := &cobra.Command{
		Use:   "load [snapshot]",
		Short: "restore a field snapshot by id or name",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoad,
	}
	loadCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the field here (.yaml or .json)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  runList,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [snapshot]",
		Short: "delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	sampleCmd := &cobra.Command{
		Use:   "sample [name]",
		Short: "print a built-in field",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSample,
	}
	sampleCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (.yaml or .json)")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPresets,
	}

	rootCmd.AddCommand(viewCmd, renderCmd, summaryCmd, pathCmd, serveCmd, surveyCmd, importCmd,
		saveCmd, loadCmd, listCmd, deleteCmd, sampleCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		c = config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") || c.Log.Level == "" {
		c.Log.Level = logLevel
	}
	if flags.Changed("db") || c.Storage.Path == "" {
		c.Storage.Path = dbPath
	}
	if flags.Changed("width") {
		c.Viewport.Width = width
	}
	if flags.Changed("height") {
		c.Viewport.Height = height
	}
	if flags.Changed("addr") {
		c.Server.Addr = addr
	}
	return c, nil
}

func setupLogger(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadField reads the field named by args, or the built-in sample.
func loadField(args []string) (*field.Field, string, error) {
	if len(args) > 0 {
		f, err := field.Load(args[0])
		return f, args[0], err
	}
	f, err := field.Sample(sampleName)
	return f, "", err
}
