package main

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/wavecollapse/internal/config"
	"github.com/katalvlaran/wavecollapse/internal/metrics"
	"github.com/katalvlaran/wavecollapse/render"
	"github.com/katalvlaran/wavecollapse/rng"
	"github.com/katalvlaran/wavecollapse/sample"
	"github.com/katalvlaran/wavecollapse/wfc"
)

type generateOptions struct {
	configPath  string
	framesDir   string
	frameEvery  int
	metricsFile string
	seed        uint32
	job         config.File
}

func newGenerateCmd() *cobra.Command {
	o := newGenerateOptions()
	generateCmd := &cobra.Command{
		Use:   "generate [sample]",
		Short: "Generate an image from a sample",
		Long: `Generate learns the patterns of a sample image and writes a PNG of the
solved output. Settings come from --config, then from flags.

        $ wfcgen generate samples/flowers.png -W 48 -H 48 --text "hello world"
        `,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := o.resolve(cmd.Flags(), args)
			if err != nil {
				return err
			}
			return runGenerate(job, o)
		},
	}

	o.bindFlags(generateCmd.Flags())

	return generateCmd
}

func newGenerateOptions() *generateOptions {
	return &generateOptions{job: config.Default()}
}

func (o *generateOptions) bindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML job file")
	fs.StringVarP(&o.job.Output, "output", "o", o.job.Output, "output PNG path")
	fs.IntVarP(&o.job.Width, "width", "W", o.job.Width, "output width in cells")
	fs.IntVarP(&o.job.Height, "height", "H", o.job.Height, "output height in cells")
	fs.IntVar(&o.job.N, "n", o.job.N, "pattern size")
	fs.IntVar(&o.job.Symmetry, "symmetry", o.job.Symmetry, "number of symmetry variants (1-8)")
	fs.BoolVar(&o.job.PeriodicInput, "periodic-input", o.job.PeriodicInput, "wrap the sample when extracting patterns")
	fs.BoolVar(&o.job.PeriodicOutput, "periodic-output", o.job.PeriodicOutput, "wrap the output grid")
	fs.IntVar(&o.job.Ground, "ground", o.job.Ground, "pin pattern index to the bottom row (0 disables, negative counts from the end)")
	fs.StringVar(&o.job.Seed.Account, "account", "", "account used for seed derivation")
	fs.StringVar(&o.job.Seed.Index, "index", "", "token index used for seed derivation")
	fs.StringVar(&o.job.Seed.Text, "text", "", "text used for seed derivation")
	fs.Uint32Var(&o.seed, "seed", 0, "root seed; overrides account/index/text")
	fs.IntVar(&o.job.Scale, "scale", o.job.Scale, "upscale factor for the written image")
	fs.BoolVar(&o.job.Pixelated, "pixelated", o.job.Pixelated, "nearest-neighbor upscaling")
	fs.StringVar(&o.framesDir, "frames-dir", "", "write preview PNG frames of the solve here")
	fs.IntVar(&o.frameEvery, "frame-every", 1, "capture one frame per this many iterations")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write prometheus text metrics here")
}

// resolve loads the job file, if any, and lays explicitly set flags over it.
func (o *generateOptions) resolve(fs *pflag.FlagSet, args []string) (*config.File, error) {
	job := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		job = *loaded
	}
	overlay(fs, &job, &o.job)
	if fs.Changed("seed") {
		seed := o.seed
		job.Seed.Value = &seed
	}
	if len(args) == 1 {
		job.Sample = args[0]
	}
	if job.Sample == "" {
		return nil, errors.New("no sample given")
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	return &job, nil
}

// overlay copies every flag the user set from src into dst.
func overlay(fs *pflag.FlagSet, dst, src *config.File) {
	apply := map[string]func(){
		"output":          func() { dst.Output = src.Output },
		"width":           func() { dst.Width = src.Width },
		"height":          func() { dst.Height = src.Height },
		"n":               func() { dst.N = src.N },
		"symmetry":        func() { dst.Symmetry = src.Symmetry },
		"periodic-input":  func() { dst.PeriodicInput = src.PeriodicInput },
		"periodic-output": func() { dst.PeriodicOutput = src.PeriodicOutput },
		"ground":          func() { dst.Ground = src.Ground },
		"account":         func() { dst.Seed.Account = src.Seed.Account },
		"index":           func() { dst.Seed.Index = src.Seed.Index },
		"text":            func() { dst.Seed.Text = src.Seed.Text },
		"scale":           func() { dst.Scale = src.Scale },
		"pixelated":       func() { dst.Pixelated = src.Pixelated },
	}
	fs.Visit(func(f *pflag.Flag) {
		if fn, ok := apply[f.Name]; ok {
			fn()
		}
	})
}

func runGenerate(job *config.File, o *generateOptions) error {
	s, err := loadSample(job.Sample)
	if err != nil {
		return err
	}
	cfg := job.Solver()
	rs, err := wfc.Compile(s, cfg.PatternOptions())
	if err != nil {
		return errors.Wrap(err, "compiling sample")
	}
	m, err := wfc.New(rs, cfg, wfc.WithLogger(log))
	if err != nil {
		return errors.Wrap(err, "building model")
	}
	rec := metrics.New()
	rec.SetPatterns(rs.Patterns())

	root := job.Seed.Root()
	src := rng.New(rng.MixSeed(root, rng.TagSolve))
	fields := logrus.Fields{"seed": root, "patterns": rs.Patterns(), "width": cfg.Width, "height": cfg.Height}
	log.WithFields(fields).Info("solving")

	var status wfc.Status
	if o.framesDir != "" {
		frames, st, err := render.Record(m, src, render.RecordOptions{Every: o.frameEvery})
		if err != nil {
			return errors.Wrap(err, "recording frames")
		}
		for _, f := range frames {
			path := filepath.Join(o.framesDir, fmt.Sprintf("frame_%05d.png", f.Iteration))
			if err := writePNG(path, scaled(job, render.ToImage(f.Pixels, cfg.Width, cfg.Height))); err != nil {
				return err
			}
		}
		log.WithField("frames", len(frames)).Info("wrote frames")
		status = st
	} else {
		status = m.Generate(src)
	}

	res, stats := m.Result(), m.Stats()
	rec.ObserveSolve(res, stats)
	if o.metricsFile != "" {
		if err := rec.WriteFile(o.metricsFile); err != nil {
			return errors.Wrapf(err, "writing metrics %s", o.metricsFile)
		}
	}

	px, err := render.Render(m, nil)
	if err != nil {
		return err
	}
	if err := writePNG(job.Output, scaled(job, render.ToImage(px, cfg.Width, cfg.Height))); err != nil {
		return err
	}

	entry := log.WithFields(logrus.Fields{
		"status":       status,
		"observations": stats.Observations,
		"bans":         stats.Bans,
		"output":       job.Output,
	})
	if status != wfc.Success {
		entry.WithField("cell", res.Cell).Warn("solve did not complete, wrote preview")
		return errors.Errorf("solve ended with %s at cell %d (seed %d)", status, res.Cell, root)
	}
	regions, err := countRegions(m, s.Palette, px)
	if err != nil {
		return err
	}
	entry.WithField("regions", regions).Info("solved")

	return nil
}

// countRegions counts 4-connected single-color regions of a solved output.
func countRegions(m *wfc.Model, pal sample.Palette, px []byte) (int, error) {
	labels := make([]int, len(px)/4)
	for i := range labels {
		p := px[i*4 : i*4+4]
		labels[i] = pal.Index(sample.Color{R: p[0], G: p[1], B: p[2], A: p[3]})
	}
	comps, err := m.Topology().Components(labels)
	if err != nil {
		return 0, errors.Wrap(err, "labelling regions")
	}

	return len(comps), nil
}

func scaled(job *config.File, img *image.NRGBA) image.Image {
	if job.Scale == 1 {
		return img
	}
	b := img.Bounds()

	return render.Upscale(img, b.Dx()*job.Scale, b.Dy()*job.Scale, job.Pixelated)
}
