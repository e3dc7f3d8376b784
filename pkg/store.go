package channelmap

import (
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/exp/maps"
)

// DefaultMapVariable names the environment variable holding the channel map path.
const DefaultMapVariable = "CHANNELMAP"

type Entry struct {
	Channel  ChannelID
	Geometry GeometryID
}

// LoadReport summarises the ingestion of a channel map.
type LoadReport struct {
	Source  string
	Lines   int
	Entries int
	Skipped int
	Errors  []error
}

// Store is the channel map of the real detector: two lookups kept in step so
// that a channel maps to a geometry id exactly when that geometry id maps
// back to the channel. It is not modified after loading.
type Store struct {
	source            string
	channelToGeometry map[ChannelID]GeometryID
	geometryToChannel map[GeometryID]ChannelID
	logger            Logger
}

func newStore(source string, l Logger) *Store {
	if l == nil {
		l = logger
	}
	return &Store{
		source:            source,
		channelToGeometry: make(map[ChannelID]GeometryID),
		geometryToChannel: make(map[GeometryID]ChannelID),
		logger:            l,
	}
}

// LoadStore reads a channel map. Bad lines are reported and skipped; they
// never stop the load.
func LoadStore(r io.Reader, source string, l Logger) (*Store, LoadReport) {
	s := newStore(source, l)
	report := LoadReport{Source: source}

	err := ReadLines(r, func(line string) {
		report.Lines++
		entry, ok, err := parseLine(line, report.Lines)
		if err != nil {
			s.logger.Error(fmt.Sprintf("%s: %v", source, err))
			report.Errors = append(report.Errors, err)
			report.Skipped++
			return
		}
		if !ok {
			report.Skipped++
			return
		}
		for _, dup := range s.insert(entry, report.Lines) {
			s.logger.Error(fmt.Sprintf("%s: %v", source, dup))
			report.Errors = append(report.Errors, dup)
		}
	})
	if err != nil {
		errMessage := fmt.Errorf("error reading channel map %s: %w", source, err)
		s.logger.Error(errMessage.Error())
		report.Errors = append(report.Errors, errMessage)
	}

	report.Entries = s.Len()
	s.logger.Info(fmt.Sprintf("Loaded %d channels from %s (%d lines, %d errors)",
		report.Entries, source, report.Lines, len(report.Errors)), "store")
	return s, report
}

// LoadStoreFile reads the channel map at path. A file that cannot be opened
// leaves the store empty.
func LoadStoreFile(path string, l Logger) (*Store, LoadReport) {
	file, err := os.Open(path)
	if err != nil {
		s := newStore(path, l)
		openErr := &ErrOpenFile{Filename: path, Err: err}
		s.logger.Error(openErr.Error())
		return s, LoadReport{Source: path, Errors: []error{openErr}}
	}
	defer file.Close()
	return LoadStore(file, path, l)
}

// LoadStoreFromEnv reads the channel map named by the environment variable.
// An unset or empty variable is not an error: the store stays empty and
// every lookup misses.
func LoadStoreFromEnv(variable string, l Logger) (*Store, LoadReport) {
	path := os.Getenv(variable)
	if path == "" {
		s := newStore("", l)
		s.logger.Info(fmt.Sprintf("%s not set, no channel map loaded", variable), "store")
		return s, LoadReport{}
	}
	return LoadStoreFile(path, l)
}

// insert adds the entry, evicting any pair that shares its channel or its
// geometry id. One error is returned for each evicted pair.
func (s *Store) insert(e Entry, lineNumber int) []error {
	var dups []error
	if g, found := s.channelToGeometry[e.Channel]; found {
		dups = append(dups, &ErrDuplicateEntry{
			LineNumber: lineNumber, Key: "channel", Channel: e.Channel, Geometry: e.Geometry, Previous: g.String(),
		})
		delete(s.geometryToChannel, g)
	}
	if c, found := s.geometryToChannel[e.Geometry]; found {
		dups = append(dups, &ErrDuplicateEntry{
			LineNumber: lineNumber, Key: "geometry", Channel: e.Channel, Geometry: e.Geometry, Previous: c.String(),
		})
		delete(s.channelToGeometry, c)
	}
	s.channelToGeometry[e.Channel] = e.Geometry
	s.geometryToChannel[e.Geometry] = e.Channel
	return dups
}

func (s *Store) Source() string { return s.source }

func (s *Store) Len() int { return len(s.channelToGeometry) }

// ResolveGeometry returns an invalid id when the channel is not in the map.
func (s *Store) ResolveGeometry(cid ChannelID) GeometryID {
	gid, found := s.lookupGeometry(cid)
	if !found {
		s.logger.Error(fmt.Sprintf("Geometry for channel is not found: %v", cid))
		return GeometryID{}
	}
	return gid
}

// ResolveChannel returns an invalid id when the geometry id is not in the map.
func (s *Store) ResolveChannel(gid GeometryID) ChannelID {
	cid, found := s.lookupChannel(gid)
	if !found {
		s.logger.Error(fmt.Sprintf("Channel for object not found: %v", gid))
		return ChannelID{}
	}
	return cid
}

func (s *Store) lookupGeometry(cid ChannelID) (GeometryID, bool) {
	gid, found := s.channelToGeometry[cid]
	return gid, found
}

func (s *Store) lookupChannel(gid GeometryID) (ChannelID, bool) {
	cid, found := s.geometryToChannel[gid]
	return cid, found
}

// Snapshot returns a copy of the channel to geometry lookup.
func (s *Store) Snapshot() map[ChannelID]GeometryID {
	return maps.Clone(s.channelToGeometry)
}

// Entries returns every pair sorted by channel.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.channelToGeometry))
	for cid, gid := range s.channelToGeometry {
		entries = append(entries, Entry{Channel: cid, Geometry: gid})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return a.Channel.Compare(b.Channel)
	})
	return entries
}
