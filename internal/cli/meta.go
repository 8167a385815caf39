package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waifufy/pkg/art"
	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/layout"
	"github.com/matzehuels/waifufy/pkg/lex"
	"github.com/matzehuels/waifufy/pkg/pipeline"
)

// metaOpts holds the command-line flags for the meta command.
type metaOpts struct {
	codePath  string
	artPath   string
	imagePath string
	config    string
	width     int
	height    int
	threshold int
	invert    bool
	noCache   bool
}

// inputMeta is the JSON shape emitted by the meta command. It describes the
// inputs without rendering, so users can check whether a source fits a
// target before committing to a run.
type inputMeta struct {
	Width         int  `json:"width"`
	Height        int  `json:"height"`
	InkCells      int  `json:"ink_cells"`
	Tokens        int  `json:"tokens"`
	TokenBytes    int  `json:"token_bytes"`
	MaxTokenLen   int  `json:"max_token_len"`
	WidthBound    int  `json:"width_bound"`
	Fits          bool `json:"fits"`
	MinimalLength int  `json:"minimal_length"`
}

// metaCommand creates the meta command that inspects inputs without
// rendering.
func (c *CLI) metaCommand() *cobra.Command {
	var opts metaOpts

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Inspect the grid and token stream without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMeta(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.codePath, "code", "c", "", "source file to inspect")
	cmd.Flags().StringVarP(&opts.artPath, "art", "a", "", "ASCII-art target file")
	cmd.Flags().StringVarP(&opts.imagePath, "image", "i", "", "raster image target file")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default waifufy.toml)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "target width override")
	cmd.Flags().IntVar(&opts.height, "height", 0, "target height override")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 0, "luminance threshold 0-255 (0 = automatic)")
	cmd.Flags().BoolVar(&opts.invert, "invert", false, "invert ink and background")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the on-disk cache")

	return cmd
}

// runMeta resolves the target grid and tokenizes the source, then prints
// the combined metadata as JSON on stdout.
func (c *CLI) runMeta(ctx context.Context, opts *metaOpts) error {
	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	if cfg.NoCache {
		opts.noCache = true
	}

	if opts.artPath != "" && opts.imagePath != "" {
		return errors.New(errors.ErrCodeInvalidArgument,
			"--art and --image are mutually exclusive")
	}

	code, err := readInput(opts.codePath, "code")
	if err != nil {
		return err
	}
	artBytes, err := readInput(opts.artPath, "art")
	if err != nil {
		return err
	}
	image, err := readImageInput(ctx, opts.imagePath)
	if err != nil {
		return err
	}

	popts := pipeline.Options{
		Code:      code,
		Art:       artBytes,
		Image:     image,
		Width:     opts.width,
		Height:    opts.height,
		Threshold: opts.threshold,
		Invert:    opts.invert,
		Logger:    c.Logger,
	}
	applyConfig(&popts, cfg)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	artText, err := runner.PrepareArt(ctx, popts)
	if err != nil {
		return err
	}
	var parseOpts art.ParseOptions
	if popts.Width > 0 {
		w := popts.Width
		parseOpts.Width = &w
	}
	if popts.Height > 0 {
		h := popts.Height
		parseOpts.Height = &h
	}
	grid := art.Parse(artText, parseOpts)
	tokens := lex.Tokenize(lex.StripComments(code))

	meta := inputMeta{
		Width:         grid.W,
		Height:        grid.H,
		InkCells:      countInk(grid),
		Tokens:        len(tokens),
		TokenBytes:    tokenBytes(tokens),
		MaxTokenLen:   maxTokenLen(tokens),
		WidthBound:    grid.W + layout.Shoot,
		Fits:          layout.Validate(grid, tokens) == nil,
		MinimalLength: len(lex.JoinMinimal(tokens)),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode metadata")
	}
	return nil
}

// gridOf parses art text with no overrides.
func gridOf(artText []byte) art.Grid {
	return art.Parse(artText, art.ParseOptions{})
}

func countInk(g art.Grid) int {
	n := 0
	for row := 0; row < g.H; row++ {
		for col := 0; col < g.W; col++ {
			if g.Ink(row, col) {
				n++
			}
		}
	}
	return n
}

func tokenBytes(tokens []lex.Token) int {
	n := 0
	for _, t := range tokens {
		n += len(t)
	}
	return n
}

func maxTokenLen(tokens []lex.Token) int {
	m := 0
	for _, t := range tokens {
		if len(t) > m {
			m = len(t)
		}
	}
	return m
}
