package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/wavecollapse/internal/config"
	"github.com/katalvlaran/wavecollapse/internal/harness"
	"github.com/katalvlaran/wavecollapse/internal/metrics"
)

type harnessOptions struct {
	account     string
	texts       []string
	tries       int
	limit       int
	workers     int
	width       int
	height      int
	sizeByText  bool
	out         string
	metricsFile string
}

func newHarnessCmd() *cobra.Command {
	def := config.Default()
	o := &harnessOptions{}
	harnessCmd := &cobra.Command{
		Use:   "harness <sample>...",
		Short: "Search seeds that end in a contradiction",
		Long: `Harness solves every sample for a range of token ids and probe texts and
reports the runs that contradicted. The report format follows the --out
extension: .json, or Markdown otherwise. Without --out a Markdown table is
printed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarness(cmd.Context(), o, args)
		},
	}

	fs := harnessCmd.Flags()
	fs.StringVar(&o.account, "account", "", "derive seeds from this account; empty uses token_<i>+text keys")
	fs.StringSliceVar(&o.texts, "text", nil, "probe texts (default: built-in list)")
	fs.IntVar(&o.tries, "tries", 200, "token ids probed per text")
	fs.IntVar(&o.limit, "count", 5, "stop reporting after this many contradictions per sample (0 = all)")
	fs.IntVar(&o.workers, "workers", runtime.GOMAXPROCS(0), "parallel solves")
	fs.IntVarP(&o.width, "width", "W", def.Width, "output width in cells")
	fs.IntVarP(&o.height, "height", "H", def.Height, "output height in cells")
	fs.BoolVar(&o.sizeByText, "size-by-text", false, "size each run's square output from its text length")
	fs.StringVarP(&o.out, "out", "o", "", "report path (.json or .md)")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write prometheus text metrics here")

	return harnessCmd
}

func runHarness(ctx context.Context, o *harnessOptions, samples []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	job := config.Default()
	job.Width, job.Height = o.width, o.height
	if err := job.Validate(); err != nil {
		return err
	}

	rec := metrics.New()
	h := harness.New(harness.NewCache(), rec, log)
	total := &harness.Report{Findings: []harness.Finding{}}
	for _, path := range samples {
		s, err := loadSample(path)
		if err != nil {
			return err
		}
		rep, err := h.Search(ctx, s, harness.Options{
			Account:    o.account,
			Texts:      o.texts,
			Tries:      o.tries,
			Limit:      o.limit,
			Workers:    o.workers,
			Config:     job.Solver(),
			SizeByText: o.sizeByText,
		})
		if err != nil {
			return errors.Wrapf(err, "searching %s", path)
		}
		log.WithFields(logrus.Fields{
			"sample":         path,
			"runs":           rep.Runs,
			"successes":      rep.Successes,
			"contradictions": len(rep.Findings),
		}).Info("searched")
		total.Grid = rep.Grid
		total.Runs += rep.Runs
		total.Successes += rep.Successes
		total.Findings = append(total.Findings, rep.Findings...)
	}

	if o.metricsFile != "" {
		if err := rec.WriteFile(o.metricsFile); err != nil {
			return errors.Wrapf(err, "writing metrics %s", o.metricsFile)
		}
	}
	if o.out == "" {
		return total.WriteMarkdown(os.Stdout)
	}

	f, err := os.Create(o.out)
	if err != nil {
		return errors.Wrapf(err, "creating %s", o.out)
	}
	if strings.EqualFold(filepath.Ext(o.out), ".json") {
		err = total.WriteJSON(f)
	} else {
		err = total.WriteMarkdown(f)
	}
	if err != nil {
		f.Close()
		return err
	}
	log.WithField("path", o.out).Info("wrote report")

	return errors.Wrapf(f.Close(), "closing %s", o.out)
}
