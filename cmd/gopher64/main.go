// Command gopher64 is the headless command-line front-end for the
// emulation core: load ROM images, optionally attach a cartridge or disk
// image, run the machine for a number of frames, and optionally record the
// SID output to a WAV file. There is no GUI here, matching spec.md's
// explicit Non-goal — this front-end exists only to exercise the core from
// a terminal and in scripts.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/gopher64/gopher64/audioexport"
	"github.com/gopher64/gopher64/cartridgeloader"
	"github.com/gopher64/gopher64/diagnostics"
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/fs/cbm"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/logger"
)

// romPaths collects the fixed ROM image flags shared by every subcommand
// that actually runs the machine.
type romPaths struct {
	basic, kernal, char, drive8 string
}

var roms romPaths

func main() {
	root := &cobra.Command{
		Use:   "gopher64",
		Short: "A headless Commodore 64 / 1541 emulation core",
	}

	root.PersistentFlags().StringVar(&roms.basic, "basic", "", "path to BASIC ROM image")
	root.PersistentFlags().StringVar(&roms.kernal, "kernal", "", "path to KERNAL ROM image")
	root.PersistentFlags().StringVar(&roms.char, "char", "", "path to character ROM image")
	root.PersistentFlags().StringVar(&roms.drive8, "drive-rom", "", "path to 1541 DOS ROM image")

	root.AddCommand(newRunCommand())
	root.AddCommand(newDirCommand())
	root.AddCommand(newAboutCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAboutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Print a short description of this emulation core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return diagnostics.RenderAbout(cmd.OutOrStdout())
		},
	}
}

func newDirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dir <d64-image>",
		Short: "List the directory of a D64 disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ld, err := cartridgeloader.NewLoaderFromFilename(args[0])
			if err != nil {
				return err
			}
			img, err := cbm.Load(ld.Data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "0 \"%-16s\" %s %s\n", img.DiskName, img.DiskID, img.DOSType)

			entries, err := img.Directory()
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%-5d \"%s\"\n", e.Blocks, e.Name)
			}
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	var frames int
	var cartPath, diskPath, wavPath string
	var graphPath string
	var stats bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the machine headlessly for a number of frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if stats {
				go diagnostics.StartStatsServer()
			}

			env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
			if err != nil {
				return err
			}
			m, err := hardware.New(env, "PAL")
			if err != nil {
				return err
			}

			if err := loadROM(roms.basic, m.LoadBasicROM); err != nil {
				return err
			}
			if err := loadROM(roms.kernal, m.LoadKernalROM); err != nil {
				return err
			}
			if err := loadROM(roms.char, m.LoadCharROM); err != nil {
				return err
			}
			if roms.drive8 != "" {
				if err := loadROM(roms.drive8, func(d []byte) { m.LoadDriveROM(8, d) }); err != nil {
					return err
				}
			}

			if cartPath != "" {
				ld, err := cartridgeloader.NewLoaderFromFilename(cartPath)
				if err != nil {
					return err
				}
				crt, err := cartridgeloader.ParseCRT(ld.Data)
				if err != nil {
					return err
				}
				if err := m.AttachCartridge(crt.Type, ld.Filename, ld.Name, ld.HashSHA1, crt.Banks); err != nil {
					return err
				}
			}

			if diskPath != "" {
				ld, err := cartridgeloader.NewLoaderFromFilename(diskPath)
				if err != nil {
					return err
				}
				img, err := cbm.Load(ld.Data)
				if err != nil {
					return err
				}
				dk, err := img.ToDisk()
				if err != nil {
					return err
				}
				m.Drive8.InsertDisk(dk)
			}

			var wav *audioexport.Writer
			if wavPath != "" {
				wav, err = audioexport.Create(wavPath, hardwareSampleRate)
				if err != nil {
					return err
				}
				defer wav.Close()
			}

			if err := runFrames(m, frames, wav); err != nil {
				return err
			}

			if graphPath != "" {
				f, err := os.Create(graphPath)
				if err != nil {
					return err
				}
				defer f.Close()
				diagnostics.DumpGraph(f, m)
			}

			logger.Logf("gopher64", "ran %d frames", frames)
			if isTerminal(int(os.Stdout.Fd())) {
				fmt.Fprintf(cmd.OutOrStdout(), "ran %d frames\n", frames)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&frames, "frames", 60, "number of video frames to run")
	cmd.Flags().StringVar(&cartPath, "cartridge", "", "path to a CRT cartridge image")
	cmd.Flags().StringVar(&diskPath, "disk", "", "path to a D64 disk image to insert in drive 8")
	cmd.Flags().StringVar(&wavPath, "wav", "", "write SID output to this WAV file")
	cmd.Flags().StringVar(&graphPath, "graph", "", "dump a Graphviz struct graph of the machine to this file")
	cmd.Flags().BoolVar(&stats, "stats", false, "serve a live runtime-stats dashboard")

	return cmd
}

// hardwareSampleRate is the fixed rate sidbridge's ring buffer is drained
// at; the SID itself is a register-routing black box in this core (see
// DESIGN.md), so there's no real oscillator sample rate to read back.
const hardwareSampleRate = 44100

func loadROM(path string, load func([]byte)) error {
	if path == "" {
		return nil
	}
	ld, err := cartridgeloader.NewLoaderFromFilename(path)
	if err != nil {
		return err
	}
	load(ld.Data)
	return nil
}

// runFrames steps the machine until the VIC's raster counter has wrapped
// frames times, draining audio after every step when wav is non-nil.
func runFrames(m *hardware.C64, frames int, wav *audioexport.Writer) error {
	seen := 0
	lastRaster := m.VIC.Raster()
	for seen < frames {
		if err := m.Step(); err != nil {
			return err
		}
		if wav != nil {
			if err := wav.DrainFrom(m.SID); err != nil {
				return err
			}
		}

		raster := m.VIC.Raster()
		if raster < lastRaster {
			seen++
		}
		lastRaster = raster
	}
	return nil
}

// isTerminal reports whether fd refers to an interactive terminal, used to
// decide whether "run" should print a completion message at all (scripted,
// non-interactive invocations usually pipe stdout elsewhere).
func isTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	return err == nil
}
