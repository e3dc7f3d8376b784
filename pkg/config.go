package channelmap

type Configuration struct {
	Verbosity        int    `json:"verbosity" yaml:"verbosity"`
	ChannelMap       string `json:"channel_map" yaml:"channel_map"`
	MapVariable      string `json:"map_variable" yaml:"map_variable"`
	Run              int    `json:"run" yaml:"run"`
	Event            int    `json:"event" yaml:"event"`
	Partition        string `json:"partition" yaml:"partition"`
	WiresPerPlane    int    `json:"wires_per_plane" yaml:"wires_per_plane"`
	ExportFile       string `json:"export_file" yaml:"export_file"`
	CompressionLevel int    `json:"compression_level" yaml:"compression_level"`
	NumWorkers       int    `json:"num_workers" yaml:"num_workers"`
}

// ResolverOptions turns the configuration into resolver options. An
// explicit channel map file wins over the environment variable.
func (c Configuration) ResolverOptions(l Logger) []Option {
	opts := []Option{WithLogger(l), WithWiresPerPlane(c.WiresPerPlane)}
	switch {
	case c.ChannelMap != "":
		opts = append(opts, WithMapFile(c.ChannelMap))
	case c.MapVariable != "":
		opts = append(opts, WithMapVariable(c.MapVariable))
	}
	return opts
}
