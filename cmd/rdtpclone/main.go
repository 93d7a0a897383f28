// Command rdtpclone clones configuration memory between a Retevis
// HA1-series radio and an image file on disk.
//
// Usage:
//
//	rdtpclone [-p port] [-m model] [-c config.yaml] [-v] download <image-file>
//	rdtpclone [-p port] [-m model] [-c config.yaml] [-v] upload <image-file>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/hamtools/go-rdtp/clone"
	"github.com/hamtools/go-rdtp/radio"
	"github.com/hamtools/go-rdtp/transport"
)

func main() {
	var (
		portName   = flag.String("p", "/dev/ttyUSB0", "serial port the radio is connected to")
		modelName  = flag.String("m", "HA1G", "radio model (HA1G or HA1UV)")
		configPath = flag.String("c", "", "optional YAML config file")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		// Explicit flags win over the config file.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if cfg.Port != "" && !set["p"] {
			*portName = cfg.Port
		}
		if cfg.Model != "" && !set["m"] {
			*modelName = cfg.Model
		}
		if cfg.Verbose && !set["v"] {
			*verbose = true
		}
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: rdtpclone [-p port] [-m model] [-c config.yaml] [-v] download|upload <image-file>")
		os.Exit(2)
	}
	op, imagePath := flag.Arg(0), flag.Arg(1)

	model, ok := radio.ModelByName(*modelName)
	if !ok {
		logger.Fatal().Str("model", *modelName).Msg("unknown radio model")
	}

	port, err := transport.Open(*portName, transport.Config{BaudRate: model.BaudRate})
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open serial port")
	}
	defer port.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch op {
	case "download":
		err = download(ctx, logger, port, model, imagePath)
	case "upload":
		err = upload(ctx, logger, port, model, imagePath)
	default:
		fmt.Fprintf(os.Stderr, "unknown operation %q (want download or upload)\n", op)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("clone failed")
	}
}

func download(ctx context.Context, logger zerolog.Logger, port *transport.Port, model radio.Model, imagePath string) error {
	bar := newBar(model.DownloadTotal(), "downloading")
	c := clone.New(port, model,
		clone.WithLogger(logger),
		clone.WithProgressCallback(barCallback(bar)),
	)

	img, err := c.CloneFromDevice(ctx)
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	if err := os.WriteFile(imagePath, img.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	logger.Info().Str("file", imagePath).Int("bytes", img.Len()).Msg("image saved")
	return nil
}

func upload(ctx context.Context, logger zerolog.Logger, port *transport.Port, model radio.Model, imagePath string) error {
	raw, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	img, err := radio.ImageFromBytes(model, raw)
	if err != nil {
		return err
	}

	bar := newBar(model.UploadTotal(), "uploading")
	c := clone.New(port, model,
		clone.WithLogger(logger),
		clone.WithProgressCallback(barCallback(bar)),
	)

	err = c.CloneToDevice(ctx, img)
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	return err
}

func newBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(0),
	)
}

func barCallback(bar *progressbar.ProgressBar) clone.ProgressCallback {
	return func(p clone.Progress) {
		bar.Set(p.Current)
	}
}
