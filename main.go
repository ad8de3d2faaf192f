// microscan scans for BLE advertisements and prints every packet it hears.
// The BLE link layer itself (HCI transport, timing, framing) is owned by the
// external stack; this program only configures it and renders the results.
package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rigado/ble"
	"github.com/urfave/cli"

	"github.com/ganwell/microscan/dev"
	"github.com/ganwell/microscan/output"
	"github.com/ganwell/microscan/registry"
	"github.com/ganwell/microscan/scan"
)

var version = "0.2.0"

func main() {
	app := cli.NewApp()
	app.Name = "microscan"
	app.Usage = "scan for BLE advertisements"
	app.Version = version
	app.Flags = flags
	app.Action = run
	app.Commands = []cli.Command{
		{
			Name:   "scan",
			Usage:  "scan for advertisements (default command)",
			Flags:  flags,
			Action: run,
		},
	}

	if err := app.Run(os.Args); err != nil {
		scan.NewLogger(false).Error(err)
		os.Exit(1)
	}
}

var flags = []cli.Flag{
	cli.IntFlag{
		Name:  "device, i",
		Value: 0,
		Usage: "HCI socket index",
	},
	cli.StringFlag{
		Name:  "h4-socket",
		Usage: "H4 socket server address",
	},
	cli.StringFlag{
		Name:  "h4-uart",
		Usage: "H4 UART device path",
	},
	cli.DurationFlag{
		Name:  "duration, d",
		Usage: "scan duration, 0 for indefinitely",
	},
	cli.BoolTFlag{
		Name:  "dup",
		Usage: "report duplicate advertisements",
	},
	cli.BoolFlag{
		Name:  "active",
		Usage: "active scanning (send scan requests)",
	},
	cli.DurationFlag{
		Name:  "interval",
		Value: 500 * time.Millisecond,
		Usage: "scan interval",
	},
	cli.DurationFlag{
		Name:  "window",
		Value: 500 * time.Millisecond,
		Usage: "scan window",
	},
	cli.StringFlag{
		Name:  "name",
		Usage: "only report advertisers with this local name",
	},
	cli.StringSliceFlag{
		Name:  "addr",
		Usage: "only report advertisers with this address (repeatable)",
	},
	cli.IntFlag{
		Name:  "rssi",
		Value: -128,
		Usage: "minimum RSSI in dBm",
	},
	cli.BoolFlag{
		Name:  "json",
		Usage: "emit JSON lines instead of text",
	},
	cli.StringFlag{
		Name:  "output, o",
		Usage: "write reports to a file instead of stdout",
	},
	cli.StringFlag{
		Name:  "registry",
		Usage: "persist the seen-device registry to this file",
	},
	cli.BoolFlag{
		Name:  "verbose, v",
		Usage: "debug logging",
	},
}

func run(c *cli.Context) error {
	log := scan.NewLogger(c.Bool("verbose"))

	transport, err := dev.Transport(c.Int("device"), c.String("h4-socket"), c.String("h4-uart"))
	if err != nil {
		return err
	}

	opts := []ble.Option{
		ble.OptScanParams(scan.Params(c.Bool("active"), c.Duration("interval"), c.Duration("window"))),
	}
	if transport != nil {
		opts = append(opts, transport)
	}

	sink, err := newSink(c)
	if err != nil {
		return err
	}

	reg := registry.New()
	regPath := c.String("registry")
	if regPath != "" {
		if err := reg.Load(regPath); err != nil {
			return errors.Wrap(err, "load registry")
		}
	}

	s := scan.New(
		scan.WithDeviceOptions(opts...),
		scan.WithFilter(filter(c)),
		scan.WithSink(sink),
		scan.WithRecorder(reg),
		scan.WithLogger(log),
		scan.WithDuplicates(c.BoolT("dup")),
	)

	ctx := scanContext(c.Duration("duration"))
	runErr := s.Run(ctx)

	if err := sink.Close(); err != nil {
		log.Warnf("close sink: %v", err)
	}

	if regPath != "" {
		if err := reg.Save(regPath); err != nil {
			log.Errorf("save registry: %v", err)
		}
	}
	log.Infof("scan done: %d reports from %d devices", s.Reports(), reg.Len())

	return runErr
}

// scanContext builds a signal-aware context: interrupt stops the scan, a
// non-zero duration bounds it.
func scanContext(d time.Duration) context.Context {
	if d > 0 {
		return ble.WithSigHandler(context.WithTimeout(context.Background(), d))
	}
	return ble.WithSigHandler(context.WithCancel(context.Background()))
}

func filter(c *cli.Context) ble.AdvFilter {
	var ff []ble.AdvFilter
	if name := c.String("name"); name != "" {
		ff = append(ff, scan.AllowName(name))
	}
	if addrs := c.StringSlice("addr"); len(addrs) > 0 {
		ff = append(ff, scan.AllowAddrs(addrs...))
	}
	if min := c.Int("rssi"); min > -128 {
		ff = append(ff, scan.MinRSSI(min))
	}
	if len(ff) == 0 {
		return nil
	}
	return scan.All(ff...)
}

func newSink(c *cli.Context) (scan.Sink, error) {
	var w io.Writer = os.Stdout
	if path := c.String("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, errors.Wrap(err, "open output file")
		}
		w = f
	}

	if c.Bool("json") {
		return output.NewJSON(w), nil
	}
	return output.NewText(w), nil
}
