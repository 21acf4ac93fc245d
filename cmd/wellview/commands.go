package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/wellview/internal/config"
	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
	"github.com/san-kum/wellview/internal/server"
	"github.com/san-kum/wellview/internal/storage"
	"github.com/san-kum/wellview/internal/survey"
	"github.com/san-kum/wellview/internal/tui"
)

func runView(cmd *cobra.Command, args []string) error {
	f, path, err := loadField(args)
	if err != nil {
		return err
	}
	if watch && path == "" {
		return errors.New("--watch needs a field file")
	}
	b, err := cfg.Builder()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logFile != "" {
		lf, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer lf.Close()
		logger = slog.New(slog.NewTextHandler(lf, nil))
	}

	m, err := tui.New(f, tui.Options{
		Path:    path,
		Watch:   watch,
		Builder: b,
		Orbit:   cfg.Orbit,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	return tui.Run(m)
}

func runRender(cmd *cobra.Command, args []string) error {
	f, _, err := loadField(args)
	if err != nil {
		return err
	}
	b, err := cfg.Builder()
	if err != nil {
		return err
	}

	w, h := cfg.Viewport.Width, cfg.Viewport.Height
	vp := scene.NewViewport(w, h, cfg.Orbit)
	vp.State.Rotation = scene.Rotation{Pitch: pitch * math.Pi / 180, Yaw: yaw * math.Pi / 180}
	vp.State.SelectedWellID = wellID
	vp.State.SelectedComponentID = component
	vp.Zoom = vp.Zoom.ScaleBy(zoom, scene.Point2{X: w / 2, Y: h / 2})

	sc := scene.Aggregate(f.Wells, nil)
	fr := b.Build(sc, vp.Projector(sc), vp.State, nil)
	for _, warn := range fr.Warnings {
		slog.Warn("component outside survey", "well", warn.WellID, "component", warn.ComponentID,
			"top", warn.Top, "bottom", warn.Bottom, "drawn_top", warn.ClampedTop, "drawn_bottom", warn.ClampedBottom)
	}

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	defer closeOut()
	return render.WriteSVG(out, fr.Drawables, render.SVGOptions{
		Width:      int(w),
		Height:     int(h),
		Zoom:       vp.Zoom,
		Background: b.Palette.Background,
	})
}

func runSummary(cmd *cobra.Command, args []string) error {
	f, _, err := loadField(args)
	if err != nil {
		return err
	}

	sc := scene.Aggregate(f.Wells, nil)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tSTATIONS\tTOTAL MD\tFINAL TVD\tDISPLACEMENT")
	for _, wp := range sc.Wells {
		sum, ok := survey.Summarize(wp.Path)
		if !ok {
			fmt.Fprintf(w, "%s\t%s\t%s\t0\t-\t-\t-\n", wp.Well.ID, wp.Well.Name, wp.Well.Kind)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%.1f\t%.1f\n",
			wp.Well.ID,
			wp.Well.Name,
			wp.Well.Kind,
			len(wp.Well.Survey),
			sum.TotalMD,
			sum.FinalTVD,
			sum.Displacement,
		)
	}
	return w.Flush()
}

func runPath(cmd *cobra.Command, args []string) error {
	f, _, err := loadField(args)
	if err != nil {
		return err
	}
	if len(f.Wells) == 0 {
		return errors.New("field has no wells")
	}
	w := f.Wells[0]
	if wellID != "" {
		var ok bool
		if w, ok = f.Well(wellID); !ok {
			return fmt.Errorf("%w: %s", field.ErrWellNotFound, wellID)
		}
	}
	path := survey.MinimumCurvature(w.Survey)

	out, closeOut, err := output()
	if err != nil {
		return err
	}
	defer closeOut()

	switch format {
	case "csv":
		return storage.WritePathCSV(out, path)
	case "json":
		sum, _ := survey.Summarize(path)
		return storage.WritePathJSON(out, storage.PathExport{WellID: w.ID, Name: w.Name, Summary: sum, Points: path})
	}
	return fmt.Errorf("unknown format: %s", format)
}

func runServe(cmd *cobra.Command, args []string) error {
	f, _, err := loadField(args)
	if err != nil {
		return err
	}
	b, err := cfg.Builder()
	if err != nil {
		return err
	}

	srv := server.New(f, b, server.Options{
		Width:        cfg.Viewport.Width,
		Height:       cfg.Viewport.Height,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		Logger:       slog.Default(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		srv.Shutdown()
	}()
	return srv.Listen(cfg.Server.Addr)
}

func runSurvey(cmd *cobra.Command, args []string) error {
	stations, err := readStations(args[0])
	if err != nil {
		return err
	}
	path := survey.MinimumCurvature(stations)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MD\tINC\tAZI\tTVD\tEAST\tNORTH\tDLS")
	for i, st := range stations {
		dls := 0.0
		if i > 0 {
			dls = survey.DoglegSeverity(stations[i-1], st, 30)
		}
		p := path[i]
		fmt.Fprintf(w, "%.1f\t%.2f\t%.2f\t%.1f\t%.1f\t%.1f\t%.2f\n", st.MD, st.Inc, st.Azi, p.TVD, p.E, p.N, dls)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if sum, ok := survey.Summarize(path); ok {
		fmt.Printf("\ntotal MD %.1f  final TVD %.1f  displacement %.1f\n", sum.TotalMD, sum.FinalTVD, sum.Displacement)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := field.Load(args[0])
	if err != nil {
		return err
	}
	stations, err := readStations(args[1])
	if err != nil {
		return err
	}
	if err := f.SetSurvey(wellID, stations); err != nil {
		return err
	}
	if err := field.Save(args[0], f); err != nil {
		return err
	}
	slog.Info("survey imported", "well", wellID, "stations", len(stations), "field", args[0])
	return nil
}

// readStations parses a station table, logging rows it had to drop.
func readStations(path string) ([]survey.Station, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stations, dropped, err := field.ParseSurvey(file)
	if err != nil {
		return nil, err
	}
	for _, le := range dropped {
		slog.Warn("dropped survey row", "file", path, "line", le.Line, "text", le.Text, "err", le.Wrapped)
	}
	return stations, nil
}

func runSave(cmd *cobra.Command, args []string) error {
	f, _, err := loadField(args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	st, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(ctx, snapName, f)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	f, err := st.Load(ctx, args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return field.Save(outFile, f)
	}
	data, err := field.Encode(f, ".yaml")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	snaps, err := st.List(ctx)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tWELLS\tCREATED")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.ID, s.Name, s.Wells, s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := storage.Open(ctx, cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.Delete(ctx, args[0])
}

func runSample(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range field.ListSamples() {
			fmt.Println(name)
		}
		return nil
	}
	f, err := field.Sample(args[0])
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, field.ListSamples())
	}
	if outFile != "" {
		return field.Save(outFile, f)
	}
	data, err := field.Encode(f, ".yaml")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, name := range config.ListPresets() {
			fmt.Println(name)
		}
		return nil
	}
	c := config.GetPreset(args[0])
	if c == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

// output opens --out, or stdout when it is empty.
func output() (io.Writer, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return nil, nil, err
	}
	file, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}
