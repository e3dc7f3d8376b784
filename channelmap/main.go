// Command channelmap translates between TPC electronics channels and wires
// using the same resolver as reconstruction.
//
//	channelmap -map tpc.map -C 1-4-11 -g     geometry of a channel
//	channelmap -G X-231 -c                   channel reading a wire
//	channelmap -W 903 -a                     ASIC address of a wire
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	channelmap "github.com/next-exp/channelmap/pkg"
	"github.com/next-exp/channelmap/pkg/h5writer"
)

type request struct {
	configFile string
	mapFile    string
	exportFile string
	batchFile  string
	run        int
	mc         bool
	verbosity  int

	channelArg  string
	geometryArg string
	wire        int

	findASIC     bool
	findChannel  bool
	findGeometry bool
	findWire     bool
}

func parseFlags(args []string, stderr io.Writer) (request, error) {
	var req request
	fs := flag.NewFlagSet("channelmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&req.configFile, "config", "", "Configuration file path (JSON or YAML)")
	fs.StringVar(&req.mapFile, "map", "", "Channel map file, overrides the configuration and environment")
	fs.StringVar(&req.exportFile, "export", "", "Write the loaded channel map to this HDF5 file")
	fs.StringVar(&req.batchFile, "batch", "", "Translate every crate-slot-channel listed in this file")
	fs.IntVar(&req.run, "run", -1, "Run number of the event context")
	fs.BoolVar(&req.mc, "mc", false, "Use a simulated event context")
	fs.IntVar(&req.verbosity, "v", -1, "Verbosity level")
	fs.StringVar(&req.channelArg, "C", "", "Reference channel as crate-slot-channel, e.g. 1-4-11")
	fs.StringVar(&req.geometryArg, "G", "", "Reference wire as plane-wire, e.g. X-231")
	fs.IntVar(&req.wire, "W", -1, "Reference wire number")
	fs.BoolVar(&req.findASIC, "a", false, "Print the ASIC address")
	fs.BoolVar(&req.findChannel, "c", false, "Print the channel")
	fs.BoolVar(&req.findGeometry, "g", false, "Print the geometry")
	fs.BoolVar(&req.findWire, "w", false, "Print the wire number")
	err := fs.Parse(args)
	return req, err
}

func buildContext(config channelmap.Configuration, req request) (channelmap.EventContext, error) {
	partition, err := channelmap.ParsePartition(config.Partition)
	if err != nil {
		return channelmap.EventContext{}, err
	}
	if req.mc {
		partition |= channelmap.PartitionMCData
	}
	run := config.Run
	if req.run >= 0 {
		run = req.run
	}
	return channelmap.NewEventContext(run, config.Event, partition, time.Now()), nil
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	req, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	config, err := LoadConfiguration(req.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading configuration file: %v\n", err)
		return 1
	}
	if req.mapFile != "" {
		config.ChannelMap = req.mapFile
	}
	if req.exportFile != "" {
		config.ExportFile = req.exportFile
	}
	if req.verbosity >= 0 {
		config.Verbosity = req.verbosity
	}

	logger := NewLogger(stdout, stderr, config.Verbosity)
	channelmap.SetLogger(logger)
	if config.Verbosity > 0 {
		printConfiguration(config, logger)
	}

	eventContext, err := buildContext(config, req)
	if err != nil {
		logger.Error(fmt.Errorf("error building event context: %w", err).Error())
		return 1
	}

	resolver := channelmap.NewResolver(config.ResolverOptions(logger)...)
	resolver.SetContext(eventContext)

	var referenceChannel channelmap.ChannelID
	if req.channelArg != "" {
		referenceChannel, err = channelmap.ParseTPCChannelID(req.channelArg)
		if err != nil {
			logger.Error(err.Error())
		}
	}
	var referenceGeometry channelmap.GeometryID
	if req.geometryArg != "" {
		referenceGeometry, err = channelmap.ParseWireGeometryID(req.geometryArg)
		if err != nil {
			logger.Error(err.Error())
		}
	}

	if config.ExportFile != "" {
		if err := export(resolver.Store(), config, stdout); err != nil {
			logger.Error(err.Error())
			return 1
		}
	}

	if req.batchFile != "" {
		return translateBatch(resolver, eventContext, req.batchFile, config.NumWorkers, stdout, logger)
	}

	switch {
	case req.findWire:
		return printWire(resolver, referenceChannel, referenceGeometry, stdout)
	case req.findChannel:
		return printChannel(resolver, req.wire, referenceGeometry, stdout)
	case req.findGeometry:
		return printGeometry(resolver, req.wire, referenceChannel, stdout)
	case req.findASIC:
		return printASIC(resolver, req.wire, referenceGeometry, referenceChannel, stdout)
	}
	return 0
}

func export(store *channelmap.Store, config channelmap.Configuration, stdout io.Writer) error {
	writer, err := h5writer.NewWriter(config.ExportFile, config.CompressionLevel)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	n, err := writer.WriteStore(store)
	if closeErr := writer.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d channels to %s\n", n, config.ExportFile)
	return nil
}

// translateBatch prints "<channel> <geometry>" for each channel in the file.
func translateBatch(resolver *channelmap.Resolver, eventContext channelmap.EventContext, filename string, numWorkers int, stdout io.Writer, logger Logger) int {
	file, err := os.Open(filename)
	if err != nil {
		logger.Error((&channelmap.ErrOpenFile{Filename: filename, Err: err}).Error())
		return 1
	}
	defer file.Close()

	status := 0
	var channels []channelmap.ChannelID
	err = channelmap.ReadLines(file, func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			return
		}
		cid, err := channelmap.ParseTPCChannelID(line)
		if err != nil {
			logger.Error(err.Error())
			status = 1
			return
		}
		channels = append(channels, cid)
	})
	if err != nil {
		logger.Error(fmt.Errorf("error reading %s: %w", filename, err).Error())
		return 1
	}

	for _, result := range resolver.TranslateChannels(eventContext, channels, numWorkers) {
		if result.Err != nil {
			logger.Error(result.Err.Error())
			fmt.Fprintf(stdout, "%v invalid\n", result.Channel)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%v %v\n", result.Channel, result.Geometry)
	}
	return status
}

func printWire(resolver *channelmap.Resolver, cid channelmap.ChannelID, gid channelmap.GeometryID, stdout io.Writer) int {
	wire := -1
	switch {
	case cid.IsValid():
		wire = resolver.GetWireFromChannel(cid)
	case gid.IsValid():
		wire = resolver.GetWireFromGeometry(gid)
	default:
		fmt.Fprintln(stdout, "Invalid inputs")
		return 1
	}
	if wire < 0 {
		fmt.Fprintln(stdout, "Invalid wire")
		return 1
	}
	fmt.Fprintln(stdout, wire)
	return 0
}

func printChannel(resolver *channelmap.Resolver, wire int, gid channelmap.GeometryID, stdout io.Writer) int {
	var cid channelmap.ChannelID
	switch {
	case wire != -1:
		cid = resolver.GetChannelForWire(wire)
	case gid.IsValid():
		cid = resolver.GetChannel(gid, 0)
	default:
		fmt.Fprintln(stdout, "Invalid inputs")
		return 1
	}
	if !cid.IsValid() {
		fmt.Fprintln(stdout, "Invalid channel")
		return 1
	}
	fmt.Fprintln(stdout, cid)
	return 0
}

func printGeometry(resolver *channelmap.Resolver, wire int, cid channelmap.ChannelID, stdout io.Writer) int {
	var gid channelmap.GeometryID
	switch {
	case wire != -1:
		gid = resolver.GetGeometryForWire(wire)
	case cid.IsValid():
		gid = resolver.GetGeometry(cid, 0)
	default:
		fmt.Fprintln(stdout, "Invalid inputs")
		return 1
	}
	if !gid.IsValid() {
		fmt.Fprintln(stdout, "Invalid geometry")
		return 1
	}
	if !gid.IsWire() {
		fmt.Fprintln(stdout, "Not a wire")
		return 1
	}
	fmt.Fprintf(stdout, "    %v\n", gid)
	return 0
}

func printASIC(resolver *channelmap.Resolver, wire int, gid channelmap.GeometryID, cid channelmap.ChannelID, stdout io.Writer) int {
	switch {
	case wire != -1:
		cid = resolver.GetChannelForWire(wire)
	case gid.IsValid():
		cid = resolver.GetChannel(gid, 0)
	}
	asic := resolver.GetASIC(cid)
	if asic < 0 {
		fmt.Fprintln(stdout, "Invalid channel")
		return 1
	}
	fmt.Fprintf(stdout, "    MB: %d ASIC: %d Chan: %d\n", asic/1000/1000, (asic/1000)%1000, asic%1000)
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
