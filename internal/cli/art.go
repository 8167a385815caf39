package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waifufy/pkg/errors"
	"github.com/matzehuels/waifufy/pkg/pipeline"
)

// artOpts holds the command-line flags for the art command.
type artOpts struct {
	imagePath string
	outPath   string
	config    string
	width     int
	height    int
	threshold int
	invert    bool
	plain     bool
	noCache   bool
	refresh   bool
}

// artCommand creates the art command that converts a raster image into
// ASCII-art text without running the layout pipeline. The result is the
// same text the convert command would use internally, so it can be edited
// by hand and fed back via --art.
func (c *CLI) artCommand() *cobra.Command {
	var opts artOpts

	cmd := &cobra.Command{
		Use:   "art",
		Short: "Convert a raster image into ASCII-art text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runArt(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.imagePath, "image", "i", "", "raster image file (required)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.config, "config", "", "config file (default waifufy.toml)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "art width in characters")
	cmd.Flags().IntVar(&opts.height, "height", 0, "art height in rows")
	cmd.Flags().IntVar(&opts.threshold, "threshold", 0, "luminance threshold 0-255 (0 = automatic)")
	cmd.Flags().BoolVar(&opts.invert, "invert", false, "invert ink and background")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain output without styling")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the on-disk cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

// runArt converts the image and writes the art text.
func (c *CLI) runArt(ctx context.Context, opts *artOpts) error {
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

	image, err := readImageInput(ctx, opts.imagePath)
	if err != nil {
		return err
	}
	if len(image) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "image file %s is empty or missing", opts.imagePath)
	}

	popts := pipeline.Options{
		Image:     image,
		Width:     opts.width,
		Height:    opts.height,
		Threshold: opts.threshold,
		Invert:    opts.invert,
		Refresh:   opts.refresh,
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

	artText, hit, err := runner.PrepareArtWithCacheInfo(ctx, popts)
	if err != nil {
		return err
	}

	if err := writeOutput(opts.outPath, artText); err != nil {
		return err
	}

	if opts.outPath != "" && !opts.plain {
		printSuccess("Wrote %s", opts.outPath)
		grid := gridOf(artText)
		printStats(0, grid.W, grid.H, hit)
	}
	return nil
}
