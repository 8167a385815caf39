package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/httputil"
	"github.com/matzehuels/waifufy/pkg/layout"
	"github.com/matzehuels/waifufy/pkg/lex"
	"github.com/matzehuels/waifufy/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	codePath  string // source file to reshape
	artPath   string // ASCII-art target file
	imagePath string // raster image target file
	outPath   string // output file; empty writes to stdout
	config    string // explicit config file path

	width     int    // target width override
	height    int    // target height override
	threshold int    // luminance threshold for image conversion
	invert    bool   // invert ink and background
	seedSpec  string // seed flag value; empty keeps the default
	randomize bool   // draw a fresh seed and bypass the render cache
	verify    bool   // re-tokenize the output and fail on mismatch
	minimal   bool   // emit the minimal join instead of the art layout
	dumpMeta  bool   // print grid and token metadata to stderr
	plain     bool   // suppress spinner and styled status output
	preview   bool   // open the interactive output preview
	noCache   bool   // disable the on-disk cache
	refresh   bool   // bypass cache reads, recompute and rewrite
}

// convertCommand creates the convert command that drives the full pipeline.
//
// At most one of --art or --image supplies the target; with neither, the
// target is empty. A missing input file
// is treated as empty with a warning rather than an error, so pipelines can
// probe optional inputs without shell guards.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Reshape source code so it renders the target art",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.codePath, "code", "c", "", "source file to reshape")
	cmd.Flags().StringVarP(&opts.artPath, "art", "a", "", "ASCII-art target file")
	cmd.Flags().StringVarP(&opts.imagePath, "image", "i", "", "raster image target file")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default waifufy.toml)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "target width override")
	cmd.Flags().IntVar(&opts.height, "height", 0, "target height override")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 0, "luminance threshold 0-255 (0 = automatic)")
	cmd.Flags().BoolVar(&opts.invert, "invert", false, "invert ink and background")
	cmd.Flags().StringVar(&opts.seedSpec, "seed", "", "random seed for reproducible layout")
	cmd.Flags().BoolVar(&opts.randomize, "randomize", false, "use a fresh random seed")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "verify token preservation after rendering")
	cmd.Flags().BoolVar(&opts.minimal, "minimal", false, "emit the shortest valid join instead of the art layout")
	cmd.Flags().BoolVar(&opts.dumpMeta, "dump-meta", false, "print grid and token metadata to stderr")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain output without spinner or styling")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "open an interactive preview of the result")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the on-disk cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runConvert executes the pipeline for the convert command.
func (c *CLI) runConvert(ctx context.Context, opts *convertOpts) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if cfg.NoCache {
		opts.noCache = true
	}
	if cfg.Plain {
		opts.plain = true
	}

	if opts.minimal {
		return c.runMinimal(opts)
	}

	popts, err := c.pipelineOptions(ctx, opts, cfg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *spinner
	if !opts.plain && opts.outPath != "" {
		spin = newSpinnerWithContext(ctx, "Reshaping source...")
		spin.start()
	}

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Reshaped %d tokens into a %dx%d target",
		result.Stats.TokenCount, result.Grid.W, result.Grid.H))

	if result.Grid.W > 0 && result.Grid.W < layout.MinWidth {
		printWarning("target width %d is below %d; narrow grids leave little room for code",
			result.Grid.W, layout.MinWidth)
	}

	if opts.dumpMeta {
		fmt.Fprintf(os.Stderr, "W=%d H=%d, tokens=%d\n",
			result.Grid.W, result.Grid.H, result.Stats.TokenCount)
	}

	if err := writeOutput(opts.outPath, result.Output); err != nil {
		return err
	}

	if opts.outPath != "" && !opts.plain {
		printSuccess("Wrote %s", opts.outPath)
		printStats(result.Stats.TokenCount, result.Grid.W, result.Grid.H, result.CacheInfo.RenderHit)
		if opts.verify {
			printDetail("verified: token stream preserved")
		}
	}

	if opts.preview {
		model := newPreviewModel(string(result.Output), string(result.ArtText))
		if _, err := tea.NewProgram(model).Run(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "preview")
		}
	}

	return nil
}

// pipelineOptions assembles pipeline options from flags, config, and inputs.
func (c *CLI) pipelineOptions(ctx context.Context, opts *convertOpts, cfg Config) (pipeline.Options, error) {
	if opts.artPath != "" && opts.imagePath != "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidArgument,
			"--art and --image are mutually exclusive")
	}

	seed, err := parseSeed(opts.seedSpec)
	if err != nil {
		return pipeline.Options{}, err
	}

	code, err := readInput(opts.codePath, "code")
	if err != nil {
		return pipeline.Options{}, err
	}
	art, err := readInput(opts.artPath, "art")
	if err != nil {
		return pipeline.Options{}, err
	}
	image, err := readImageInput(ctx, opts.imagePath)
	if err != nil {
		return pipeline.Options{}, err
	}

	popts := pipeline.Options{
		Code:      code,
		Art:       art,
		Image:     image,
		Width:     opts.width,
		Height:    opts.height,
		Threshold: opts.threshold,
		Invert:    opts.invert,
		Seed:      seed,
		Randomize: opts.randomize,
		Verify:    opts.verify,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	}
	applyConfig(&popts, cfg)
	return popts, nil
}

// parseSeed converts the --seed flag into a seed value. Empty means "no
// override" and returns zero.
func parseSeed(spec string) (uint64, error) {
	if err := errors.ValidateSeedSpec(spec); err != nil {
		return 0, err
	}
	if spec == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(spec, 10, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidArgument, "seed must be a non-negative 64-bit integer, got %q", spec)
	}
	return seed, nil
}

// readInput reads an input file. An empty path yields nil bytes. A path
// that does not exist also yields nil bytes, with a warning, so optional
// inputs degrade gracefully.
func readInput(path, kind string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			printWarning("%s file %s not found, treating as empty", kind, path)
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeIOOutput, err, "read %s file %s", kind, path)
	}
	return data, nil
}

// readImageInput resolves an image target. URLs are downloaded with retry;
// anything else is treated as a local file path via readInput.
func readImageInput(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	if httputil.IsURL(path) {
		data, err := httputil.Fetch(ctx, nil, path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIOOutput, err, "fetch image %s", path)
		}
		return data, nil
	}
	return readInput(path, "image")
}

// writeOutput writes the rendered result to path, or stdout when empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return errors.Wrap(errors.ErrCodeIOOutput, err, "write stdout")
		}
		return nil
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIOOutput, err, "write %s", path)
	}
	return nil
}

// runMinimal emits the shortest whitespace-valid join of the source tokens.
// No target is consulted, so the art and image inputs are ignored.
func (c *CLI) runMinimal(opts *convertOpts) error {
	code, err := readInput(opts.codePath, "code")
	if err != nil {
		return err
	}
	tokens := lex.Tokenize(lex.StripComments(code))

	if opts.dumpMeta {
		fmt.Fprintf(os.Stderr, "W=0 H=0, tokens=%d\n", len(tokens))
	}

	output := []byte(lex.JoinMinimal(tokens) + "\n")
	if err := writeOutput(opts.outPath, output); err != nil {
		return err
	}
	if opts.outPath != "" && !opts.plain {
		printSuccess("Wrote %s", opts.outPath)
	}
	return nil
}
