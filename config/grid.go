package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kjhughes/febidmc/mc"
)

// gridFile is the on-disk shape of a grid fixture: row-major Grid and
// Surface arrays alongside the voxel shape and cell size.
type gridFile struct {
	Nz      int       `json:"nz"`
	Ny      int       `json:"ny"`
	Nx      int       `json:"nx"`
	CellDim float64   `json:"cell_dim_nm"`
	Grid    []float64 `json:"grid"`
	Surface []byte    `json:"surface"`
}

// LoadGrid decodes a grid fixture referenced by a RunConfig's GridFile.
func LoadGrid(path string) (*mc.GridSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &mc.InvalidInputError{Reason: fmt.Sprintf("reading grid %s: %s", path, err)}
	}

	var gf gridFile
	if err := json.Unmarshal(data, &gf); err != nil {
		return nil, &mc.InvalidInputError{Reason: fmt.Sprintf("decoding grid %s: %s", path, err)}
	}

	shape := mc.Shape{Nz: gf.Nz, Ny: gf.Ny, Nx: gf.Nx}
	want := gf.Nz * gf.Ny * gf.Nx
	if len(gf.Grid) != want || len(gf.Surface) != want {
		return nil, &mc.InvalidInputError{Reason: fmt.Sprintf("grid %s: data length does not match declared shape", path)}
	}

	return &mc.GridSnapshot{
		Shape:   shape,
		CellDim: gf.CellDim,
		Grid:    gf.Grid,
		Surface: gf.Surface,
	}, nil
}
