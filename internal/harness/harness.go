// Package harness searches seed space for configurations that end in a
// contradiction, so they can be reproduced and studied.
//
// For every text and every token index 0..Tries-1 a fresh Model is solved
// and contradicting runs are reported. With an Account the root seed is
// derived from (Account, index, text) as a minting front end would and the
// solver runs on the LCG stream of that seed. Without one the seed key is
// "token_<i>"+text and the solver draws straight from a Mulberry32 stream
// hashed from the key. Runs execute in parallel on independent models
// sharing one compiled Ruleset.
package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/wavecollapse/internal/metrics"
	"github.com/katalvlaran/wavecollapse/rng"
	"github.com/katalvlaran/wavecollapse/sample"
	"github.com/katalvlaran/wavecollapse/wfc"
)

// DefaultTexts are the hand-picked probe texts.
var DefaultTexts = []string{
	"hi this",
	"hello world",
	"thought look svg",
	"abcd efgh ijkl",
	"abc def ghi",
	"hello hello hel",
	"abcd abcd abcd ab",
	"gysy go zb",
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// ProbeTexts returns DefaultTexts followed, for even lengths 10 through 18,
// by an alphabet run and the same run split into four-letter words.
func ProbeTexts() []string {
	texts := append([]string(nil), DefaultTexts...)
	for n := 10; n <= 18; n += 2 {
		run := strings.Repeat(alphabet, n/len(alphabet)+1)[:n]
		texts = append(texts, run, wordBlocks(run, 4))
	}

	return texts
}

func wordBlocks(run string, size int) string {
	words := make([]string, 0, len(run)/size+1)
	for len(run) > size {
		words = append(words, run[:size])
		run = run[size:]
	}

	return strings.Join(append(words, run), " ")
}

// Options configures a Search.
type Options struct {
	// Account is the account identifier fed to seed derivation.
	Account string
	// Texts are probed in order; nil means ProbeTexts().
	Texts []string
	// Tries is the number of indices probed per text.
	Tries int
	// Limit caps the number of reported findings; 0 reports all.
	Limit int
	// Workers bounds parallel solves; values below 1 mean 1.
	Workers int
	// Config is the solver configuration for every run.
	Config wfc.Config
	// SizeByText replaces Config's width and height with a square of side
	// GridSize(text), at least N, for each text.
	SizeByText bool
}

// GridSize is the side of the square output a front end grows for text:
// round(5 + sqrt(len-5)) above five characters, len+1 otherwise, where len
// counts UTF-16 code units.
func GridSize(text string) int {
	n := len(utf16.Encode([]rune(text)))
	if n > 5 {
		return int(math.Round(5 + math.Sqrt(float64(n-5))))
	}

	return n + 1
}

// config returns the solver configuration for one text.
func (o Options) config(text string) wfc.Config {
	cfg := o.Config
	if o.SizeByText {
		side := max(GridSize(text), cfg.N)
		cfg.Width, cfg.Height = side, side
	}

	return cfg
}

// Finding is one contradicting run.
type Finding struct {
	Text    string `json:"text"`
	Index   int    `json:"index"`
	TokenID string `json:"tokenId"`
	Grid    string `json:"grid"`
	Seed    uint32 `json:"seed"`
	Cell    int    `json:"contradictionCell"`
}

// Report summarizes a Search.
type Report struct {
	// Grid is the shared output size; empty when sized per text.
	Grid      string    `json:"grid,omitempty"`
	Runs      int       `json:"runs"`
	Successes int       `json:"successes"`
	Findings  []Finding `json:"findings"`
}

// Harness runs searches against a shared ruleset cache.
type Harness struct {
	cache   *Cache
	metrics *metrics.Recorder
	log     logrus.FieldLogger
}

// New returns a Harness. Any argument may be nil.
func New(cache *Cache, rec *metrics.Recorder, log logrus.FieldLogger) *Harness {
	if cache == nil {
		cache = NewCache()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Harness{cache: cache, metrics: rec, log: log}
}

type run struct {
	grid  string
	text  string
	index int
	seed  uint32
	res   wfc.Result
}

// TokenID names probe index i.
func TokenID(i int) string {
	return "token_" + strconv.Itoa(i)
}

// stream returns the root seed and solver stream for one probe.
func stream(account string, i int, text string) (uint32, rng.Source) {
	if account == "" {
		seed := rng.HashSeed(TokenID(i) + text)
		return seed, rng.NewMulberry32(seed)
	}
	seed := rng.DeriveSeed32(account, strconv.Itoa(i), text)

	return seed, rng.New(rng.MixSeed(seed, rng.TagSolve))
}

func gridName(cfg wfc.Config) string {
	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
}

// Search solves every (text, index) pair on s and reports contradictions in
// a deterministic order (text order, then index) regardless of scheduling.
func (h *Harness) Search(ctx context.Context, s *sample.Sample, opts Options) (*Report, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid solver settings")
	}
	texts := opts.Texts
	if texts == nil {
		texts = ProbeTexts()
	}
	configs := make([]wfc.Config, len(texts))
	for ti, text := range texts {
		configs[ti] = opts.config(text)
		if err := configs[ti].Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid solver settings for %q", text)
		}
	}
	rs, err := h.cache.Get(s, opts.Config.PatternOptions())
	if err != nil {
		return nil, errors.Wrap(err, "compiling sample")
	}
	if h.metrics != nil {
		h.metrics.SetPatterns(rs.Patterns())
	}

	runs := make([]run, len(texts)*opts.Tries)
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for ti, text := range texts {
		text := text // per-iteration copy (go 1.21 loop semantics)
		cfg := configs[ti]
		grid := gridName(cfg)
		for i := 0; i < opts.Tries; i++ {
			i := i // per-iteration copy (go 1.21 loop semantics)
			slot := &runs[ti*opts.Tries+i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				m, err := wfc.New(rs, cfg)
				if err != nil {
					return err
				}
				seed, src := stream(opts.Account, i, text)
				m.Generate(src)
				*slot = run{grid: grid, text: text, index: i, seed: seed, res: m.Result()}
				if h.metrics != nil {
					h.metrics.ObserveSolve(slot.res, m.Stats())
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Runs: len(runs), Findings: []Finding{}}
	if !opts.SizeByText {
		rep.Grid = gridName(opts.Config)
	}
	for _, r := range runs {
		switch r.res.Status {
		case wfc.Success:
			rep.Successes++
		case wfc.Contradiction:
			if opts.Limit > 0 && len(rep.Findings) >= opts.Limit {
				continue
			}
			rep.Findings = append(rep.Findings, Finding{
				Text:    r.text,
				Index:   r.index,
				TokenID: TokenID(r.index),
				Grid:    r.grid,
				Seed:    r.seed,
				Cell:    r.res.Cell,
			})
			h.log.WithFields(logrus.Fields{
				"text":  r.text,
				"index": r.index,
				"grid":  r.grid,
				"seed":  r.seed,
				"cell":  r.res.Cell,
			}).Info("contradiction")
		}
	}

	return rep, nil
}

// WriteJSON writes r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return errors.Wrap(enc.Encode(r), "encoding report")
}

// WriteMarkdown writes r as a Markdown table.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Contradiction Harness Results\n\n")
	fmt.Fprintf(&b, "%d runs, %d succeeded, %d contradictions reported.\n\n", r.Runs, r.Successes, len(r.Findings))
	b.WriteString("| Text | token_id | grid | contradiction cell | seed |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %d |\n", f.Text, f.TokenID, f.Grid, f.Cell, f.Seed)
	}
	_, err := io.WriteString(w, b.String())

	return errors.Wrap(err, "writing report")
}
