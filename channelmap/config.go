package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	channelmap "github.com/next-exp/channelmap/pkg"
	"gopkg.in/yaml.v3"
)

func defaultConfiguration() channelmap.Configuration {
	return channelmap.Configuration{
		Verbosity:        0,
		MapVariable:      channelmap.DefaultMapVariable,
		Run:              4400,
		Event:            1,
		Partition:        "mcaptain",
		WiresPerPlane:    channelmap.DefaultWiresPerPlane,
		CompressionLevel: 4,
		NumWorkers:       1,
	}
}

// LoadConfiguration reads a JSON or YAML file over the defaults. An empty
// filename returns the defaults.
func LoadConfiguration(filename string) (channelmap.Configuration, error) {
	config := defaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("error decoding %s: %w", filename, err)
	}
	return config, nil
}

func printConfiguration(config channelmap.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("Channel map: %s", config.ChannelMap), "config")
	logger.Info(fmt.Sprintf("Map variable: %s", config.MapVariable), "config")
	logger.Info(fmt.Sprintf("Run: %d", config.Run), "config")
	logger.Info(fmt.Sprintf("Event: %d", config.Event), "config")
	logger.Info(fmt.Sprintf("Partition: %s", config.Partition), "config")
	logger.Info(fmt.Sprintf("Wires per plane: %d", config.WiresPerPlane), "config")
	logger.Info(fmt.Sprintf("Export file: %s", config.ExportFile), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Number of workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
