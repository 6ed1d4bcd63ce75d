package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/gui"
)

var (
	scenePath string
	output    string
	frames    int
	width     int
	height    int
	logFile   string
	verbose   bool
	fonts     map[string]string
)

// rootCmd renders a scene when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "guidemo",
	Short: "Render a retained-mode widget scene to PNG",
	Long: `guidemo loads a TOML scene describing labels, buttons and images,
applies their attributes through the property registries, wires the
declared bindings and renders the requested number of frames with the
software engine. Scripted steps change attributes between frames so the
invalidation path can be observed in the debug log.

Without --scene a built-in scene is rendered.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer setupLogging(cmd.ErrOrStderr(), verbose, logFile)()

		sc, err := loadScene(scenePath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("width") || sc.Width == 0 {
			sc.Width = width
		}
		if cmd.Flags().Changed("height") || sc.Height == 0 {
			sc.Height = height
		}
		if cmd.Flags().Changed("frames") || sc.Frames == 0 {
			sc.Frames = frames
		}
		if cmd.Flags().Changed("output") || sc.Output == "" {
			sc.Output = output
		}

		env := gui.NewEnv(gui.WithName("guidemo"))
		if err := env.Init(); err != nil {
			return err
		}
		defer func() { _ = env.Release() }()

		d, err := newDemo(env, sc)
		if err != nil {
			return err
		}
		defer func() { _ = d.close() }()

		for family, path := range fonts {
			ttf, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read font %s: %w", family, err)
			}
			if err := d.engine.RegisterFont(family, ttf); err != nil {
				return err
			}
		}

		if err := d.build(); err != nil {
			return err
		}
		if err := d.run(sc.Frames); err != nil {
			gui.Logger().Warn("guidemo: frames rendered with errors", "err", err)
		}
		if err := d.engine.Target().SavePNG(sc.Output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d frame(s) to %s (%dx%d)\n",
			sc.Frames, sc.Output, sc.Width, sc.Height)
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&scenePath, "scene", "s", "", "TOML scene file (default: built-in scene)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "guidemo.png", "PNG file written after the last frame")
	rootCmd.Flags().IntVarP(&frames, "frames", "n", 3, "number of frames to render")
	rootCmd.Flags().IntVar(&width, "width", 480, "target width in pixels")
	rootCmd.Flags().IntVar(&height, "height", 320, "target height in pixels")
	rootCmd.Flags().StringToStringVar(&fonts, "font", nil, "register a font family from a TTF file (family=path)")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log frame statistics and bindings")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file, rotated")

	rootCmd.AddCommand(attrsCmd)
}
