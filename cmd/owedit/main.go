package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/owedit/owedit"
	"github.com/owedit/owedit/project"
	"github.com/owedit/owedit/rom"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB       = "owedit.db"
	defaultSettings = "owedit.yaml"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func layoutOptions(c *cli.Context) ([]rom.Option, error) {
	switch c.String("layout") {
	case "":
		return nil, nil
	case "vanilla":
		return []rom.Option{rom.WithLayout(rom.LayoutVanilla)}, nil
	case "expanded":
		return []rom.Option{rom.WithLayout(rom.LayoutExpanded)}, nil
	default:
		return nil, fmt.Errorf("unknown layout %q", c.String("layout"))
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "owedit"
	app.Usage = "SNES overworld map and graphics editing utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"OWEDIT_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to project database",
		},
		&cli.StringFlag{
			Name:    "settings",
			EnvVars: []string{"OWEDIT_SETTINGS"},
			Value:   filepath.Join(cwd, defaultSettings),
			Usage:   "path to editor settings file",
		},
		&cli.StringFlag{
			Name:  "layout",
			Usage: "override ROM layout detection (vanilla or expanded)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Identify a ROM image",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				options, err := layoutOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				img, err := rom.Open(c.Args().First(), options...)
				if err != nil {
					return cli.Exit(err, 1)
				}

				fmt.Printf("%q: %s layout, %d bytes, CRC %08X\n", img.Title(), img.Layout(), img.Size(), img.CRC32())

				return nil
			},
		},
		{
			Name:      "scan",
			Usage:     "Scan a directory for ROM images",
			ArgsUsage: "[DIRECTORY]",
			Action: func(c *cli.Context) error {
				// Without an argument, fall back to the configured
				// project directory.
				dir := c.Args().First()
				if dir == "" {
					s, err := project.LoadSettings(c.String("settings"))
					if err != nil {
						return cli.Exit(err, 1)
					}
					dir = s.ProjectDir
				}
				if dir == "" {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				results, err := owedit.Scan(dir, newLogger(c))
				if err != nil {
					return cli.Exit(err, 1)
				}

				for _, r := range results {
					fmt.Printf("%s: %q, %s layout, CRC %08X\n", r.Path, r.Title, r.Layout, r.CRC)
				}

				return nil
			},
		},
		{
			Name:  "config",
			Usage: "Show the editor settings, creating the file with defaults if missing",
			Action: func(c *cli.Context) error {
				path := c.String("settings")

				s, err := project.LoadSettings(path)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					if err := project.SaveSettings(path, s); err != nil {
						return cli.Exit(err, 1)
					}
				}

				fmt.Printf("project dir: %s\npixel size: %g\ngrid alpha: %g\n", s.ProjectDir, s.PixelSize, s.GridAlpha)

				return nil
			},
		},
		{
			Name:      "export",
			Usage:     "Re-encode a ROM image, fixing up the header checksum",
			ArgsUsage: "SRC DST",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				options, err := layoutOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				store, err := project.NewStore(c.String("db"))
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer store.Close()

				e, err := owedit.New(c.Args().Get(0), store, newLogger(c), options...)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer e.Close()

				if err := e.Save(c.Args().Get(1)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "import-bg",
			Usage:     "Decode the BG color table of a ROM image",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				options, err := layoutOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				img, err := rom.Open(c.Args().First(), options...)
				if err != nil {
					return cli.Exit(err, 1)
				}

				p, err := owedit.ImportBGColors(img)
				if err != nil {
					return cli.Exit(err, 1)
				}

				for i, col := range p {
					rgba := col.NRGBA()
					fmt.Printf("%2d: #%02x%02x%02x\n", i, rgba.R, rgba.G, rgba.B)
				}

				return nil
			},
		},
		{
			Name:      "import-gfx",
			Usage:     "Import an image into a graphics sheet and save the ROM",
			ArgsUsage: "ROM IMAGE",
			Flags: []cli.Flag{
				&cli.UintFlag{
					Name:  "sheet",
					Usage: "target sheet id",
				},
				&cli.UintFlag{
					Name:  "palette",
					Usage: "target palette slot",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				options, err := layoutOptions(c)
				if err != nil {
					return cli.Exit(err, 1)
				}

				f, err := os.Open(c.Args().Get(1))
				if err != nil {
					return cli.Exit(err, 1)
				}
				m, _, err := image.Decode(f)
				f.Close()
				if err != nil {
					return cli.Exit(err, 1)
				}

				e, err := owedit.New(c.Args().Get(0), nil, newLogger(c), options...)
				if err != nil {
					return cli.Exit(err, 1)
				}

				if err := e.ImportSheetImage(uint8(c.Uint("sheet")), uint8(c.Uint("palette")), m); err != nil {
					return cli.Exit(err, 1)
				}

				if err := e.Save(c.Args().Get(0)); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
