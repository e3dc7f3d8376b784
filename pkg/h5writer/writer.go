// Package h5writer exports a loaded channel map to an HDF5 file so it can be
// inspected next to decoded data.
package h5writer

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
	channelmap "github.com/next-exp/channelmap/pkg"
)

const (
	GroupName = "ChannelMap"
	TableName = "TPC"
)

type Writer struct {
	File       *hdf5.File
	Filename   string
	MapGroup   *hdf5.Group
	TPCTable   *hdf5.Dataset
	RowCounter int
}

func NewWriter(filename string, compressionLevel int) (*Writer, error) {
	file, err := hdf5.CreateFile(filename, hdf5.F_ACC_TRUNC)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	writer := &Writer{File: file, Filename: filename}

	writer.MapGroup, err = file.CreateGroup(GroupName)
	if err != nil {
		file.Close()
		return nil, &ErrCreateGroup{GroupName: GroupName, Err: err}
	}
	writer.TPCTable, err = createTable(writer.MapGroup, TableName, ChannelMapHDF5{}, compressionLevel)
	if err != nil {
		writer.MapGroup.Close()
		file.Close()
		return nil, err
	}
	return writer, nil
}

// rowsFromEntries keeps the order of the entries, which the store sorts by
// channel.
func rowsFromEntries(entries []channelmap.Entry) []ChannelMapHDF5 {
	// The array MUST be allocated at creation, HDF5 writes from its backing store
	rows := make([]ChannelMapHDF5, len(entries))
	for i, entry := range entries {
		rows[i] = ChannelMapHDF5{
			crate:   int32(entry.Channel.Crate()),
			slot:    int32(entry.Channel.Slot()),
			channel: int32(entry.Channel.Channel()),
			plane:   int32(entry.Geometry.Plane()),
			wire:    int32(entry.Geometry.WireNumber()),
		}
	}
	return rows
}

// WriteStore appends every entry of the store and returns the number of rows written.
func (w *Writer) WriteStore(store *channelmap.Store) (int, error) {
	rows := rowsFromEntries(store.Entries())
	if err := writeArrayToTable(w.TPCTable, &rows, w.RowCounter); err != nil {
		return 0, fmt.Errorf("error writing channel map from %s: %w", store.Source(), err)
	}
	w.RowCounter += len(rows)
	return len(rows), nil
}

func (w *Writer) Close() error {
	w.TPCTable.Close()
	w.MapGroup.Close()
	return w.File.Close()
}
