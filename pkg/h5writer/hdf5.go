package h5writer

import (
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

type ChannelMapHDF5 struct {
	crate   int32
	slot    int32
	channel int32
	plane   int32
	wire    int32
}

func createTable(group *hdf5.Group, name string, datatype interface{}, compressionLevel int) (*hdf5.Dataset, error) {
	dims := []uint{0}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	fileSpace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer fileSpace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	defer plist.Close()

	chunks := []uint{4096}
	if err := plist.SetChunk(chunks); err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	if compressionLevel > 0 {
		if err := plist.SetDeflate(compressionLevel); err != nil {
			return nil, &ErrCreateTable{TableName: name, Err: err}
		}
	}

	dtype, err := hdf5.NewDatatypeFromValue(datatype)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}

	dset, err := group.CreateDatasetWith(name, dtype, fileSpace, plist)
	if err != nil {
		return nil, &ErrCreateTable{TableName: name, Err: err}
	}
	return dset, nil
}

// writeArrayToTable appends data after the first offset rows of the table.
func writeArrayToTable[T any](dataset *hdf5.Dataset, data *[]T, offset int) error {
	length := uint(len(*data))
	if length == 0 {
		return nil
	}
	dataspace, err := hdf5.CreateSimpleDataspace([]uint{length}, nil)
	if err != nil {
		return fmt.Errorf("error creating memory dataspace: %w", err)
	}
	defer dataspace.Close()

	rows := uint(offset)
	if err := dataset.Resize([]uint{rows + length}); err != nil {
		return fmt.Errorf("error extending table: %w", err)
	}
	filespace := dataset.Space()
	defer filespace.Close()

	start := []uint{rows}
	count := []uint{length}
	if err := filespace.SelectHyperslab(start, nil, count, nil); err != nil {
		return fmt.Errorf("error selecting rows: %w", err)
	}

	if err := dataset.WriteSubset(data, dataspace, filespace); err != nil {
		return fmt.Errorf("error writing rows: %w", err)
	}
	return nil
}
