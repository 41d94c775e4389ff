// Command planets is an interactive n-body gravity simulator.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/plus3/planets/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	scene      string
	assets     string
	resolution string
	windowed   bool
	debug      bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "planets",
		Short: "interactive n-body gravity simulator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runWindow(cfg, opts.debug)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file path (yaml)")
	flags.StringVar(&opts.scene, "scene", "", "scene file, relative to the assets directory")
	flags.StringVar(&opts.assets, "assets", "", "assets directory")
	rootCmd.Flags().StringVar(&opts.resolution, "resolution", fmt.Sprintf("%dx%d", config.DefaultWidth, config.DefaultHeight), "window size as WIDTHxHEIGHT")
	rootCmd.Flags().BoolVar(&opts.windowed, "windowed", false, "run in a window instead of fullscreen")
	rootCmd.Flags().BoolVar(&opts.debug, "debug", false, "show the debug overlay")

	rootCmd.AddCommand(newBenchCommand(opts))
	rootCmd.AddCommand(newConfigCommand())
	return rootCmd
}

// load reads the config file, if any, and applies the flags the user set on top.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configFile != "" {
		loaded, err := config.Load(o.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("scene") {
		cfg.Scene = o.scene
	}
	if flags.Changed("assets") {
		cfg.Assets = o.assets
	}
	if flags.Changed("resolution") {
		width, height, err := config.ParseResolution(o.resolution)
		if err != nil {
			return nil, err
		}
		cfg.Window.Width, cfg.Window.Height = width, height
	}
	if flags.Changed("windowed") && o.windowed {
		cfg.Window.Fullscreen = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func scenePath(cfg *config.Config) string {
	if filepath.IsAbs(cfg.Scene) {
		return cfg.Scene
	}
	return filepath.Join(cfg.Assets, cfg.Scene)
}

func texturePath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.Assets, "textures", name+".png")
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}

	writeCmd := &cobra.Command{
		Use:   "write [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			log.Printf("Wrote default configuration to %s", args[0])
			return nil
		},
	}

	configCmd.AddCommand(writeCmd)
	return configCmd
}
