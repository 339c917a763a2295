package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/lukaszgryglicki/pepperjack/internal/pepperjack"
)

func expand(paths ...*string) error {
	for _, p := range paths {
		if *p == "" {
			continue
		}
		e, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = e
	}
	return nil
}

func newRootCmd() *cobra.Command {
	var (
		opts    pepperjack.Options
		debug   bool
		profile bool
	)
	cmd := &cobra.Command{
		Use:           "pepperjack",
		Short:         "Take a video and slice it through time.",
		Long:          "Take a video and slice it by the configured geometry: every output pixel samples the video frame at its projected depth.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pepperjack.SetDebug(debug || os.Getenv("DEBUG") != "")
			pepperjack.RAW = pepperjack.RAW || os.Getenv("RAW") != ""
			if err := expand(&opts.VideoPath, &opts.InputCachePath, &opts.OutputCachePath, &opts.OutputPath, &opts.ConfigPath); err != nil {
				return err
			}
			if profile || os.Getenv("PROFILE") != "" {
				f, err := os.Create("cpu.out")
				if err != nil {
					return err
				}
				if err := pprof.StartCPUProfile(f); err != nil {
					return err
				}
				defer func() {
					pprof.StopCPUProfile()
					_ = f.Close()
				}()
			}
			return pepperjack.Run(opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.VideoPath, "video-path", "v", "", "File path to video file.")
	f.StringVarP(&opts.InputCachePath, "input-cache-path", "i", pepperjack.InputCachePath, "File path to input cache folder.")
	f.IntVarP(&opts.SampleIntervalMs, "sample-interval-ms", "s", pepperjack.SampleIntervalMs, "Only analyze every n ms of the video to save cache size. Supply -1 to analyze every frame.")
	f.StringVarP(&opts.OutputCachePath, "output-cache-path", "o", pepperjack.OutputCachePath, "File path to output cache folder (must be empty).")
	f.StringVar(&opts.OutputPath, "out", pepperjack.OutputPath, "Where to write the rendered PNG.")
	f.StringVar(&opts.ConfigPath, "config", "", "Optional TOML render config (geometry, resolution, workers, mode).")
	f.BoolVarP(&opts.CPUOnly, "cpu-only", "c", false, "Render with the sequential strategy only.")
	f.BoolVar(&pepperjack.RAW, "raw", false, "Also save a raw RGB dump next to the PNG.")
	f.BoolVar(&pepperjack.Keep, "keep", false, "Keep the output cache folder.")
	f.BoolVar(&debug, "debug", false, "Verbose debug output.")
	f.BoolVar(&profile, "profile", false, "Write a CPU profile to cpu.out.")
	_ = cmd.MarkFlagRequired("video-path")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
