package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/phil-mansfield/gowake/flow"
)

var end = binary.LittleEndian

// PlaneHeader is the fixed-size header at the start of a binary plane file.
// It is followed by Axis1, Axis2 and then the velocities row by row, all as
// little-endian float64s.
type PlaneHeader struct {
	Type PlaneTypeInfo
	Loc  PlaneLocationInfo
}

type PlaneTypeInfo struct {
	Endianness int64
	HeaderSize int64
	Normal     int64
}

type PlaneLocationInfo struct {
	Offset     float64
	Resolution [2]int64
}

// WritePlane writes a cut plane in the binary plane format.
func WritePlane(pl *flow.Plane, wr io.Writer) error {
	hd := PlaneHeader{}
	hd.Type.Endianness = -1
	hd.Type.HeaderSize = int64(binary.Size(&hd))
	hd.Type.Normal = int64(pl.Normal)
	hd.Loc.Offset = pl.Offset
	hd.Loc.Resolution = [2]int64{int64(len(pl.Axis1)), int64(len(pl.Axis2))}

	for _, x := range []interface{}{&hd, pl.Axis1, pl.Axis2, pl.U.RawMatrix().Data} {
		if err := binary.Write(wr, end, x); err != nil {
			return err
		}
	}
	return nil
}

// ReadPlane reads a cut plane written by WritePlane.
func ReadPlane(rd io.Reader) (*flow.Plane, error) {
	hd := PlaneHeader{}
	if err := binary.Read(rd, end, &hd); err != nil {
		return nil, err
	}
	if hd.Type.Endianness != -1 {
		return nil, fmt.Errorf("plane file is not little-endian")
	}
	n1, n2 := int(hd.Loc.Resolution[0]), int(hd.Loc.Resolution[1])
	if n1 <= 0 || n2 <= 0 {
		return nil, fmt.Errorf("plane file has resolution %d x %d", n1, n2)
	}

	pl := &flow.Plane{
		Normal: flow.Axis(hd.Type.Normal),
		Offset: hd.Loc.Offset,
		Axis1:  make([]float64, n1),
		Axis2:  make([]float64, n2),
	}
	data := make([]float64, n1*n2)
	for _, x := range [][]float64{pl.Axis1, pl.Axis2, data} {
		if err := binary.Read(rd, end, x); err != nil {
			return nil, err
		}
	}
	pl.U = mat.NewDense(n2, n1, data)
	return pl, nil
}

// WritePlaneTable writes a cut plane as a whitespace-separated table with one
// row per sample: the two in-plane coordinates followed by the velocity. Rows
// run fastest along Axis1.
func WritePlaneTable(pl *flow.Plane, wr io.Writer) error {
	bw := bufio.NewWriter(wr)
	for j, x2 := range pl.Axis2 {
		for i, x1 := range pl.Axis1 {
			fmt.Fprintf(bw, "%.4f %.4f %.6f\n", x1, x2, pl.U.At(j, i))
		}
	}
	return bw.Flush()
}

// WritePlaneFile writes a cut plane to fname, as a binary plane file if
// binary is true and as a table otherwise.
func WritePlaneFile(fname string, pl *flow.Plane, binary bool) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	if binary {
		err = WritePlane(pl, f)
	} else {
		err = WritePlaneTable(pl, f)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// ReadPlaneTable reads a table written by WritePlaneTable back into a Plane.
// The normal and offset are not stored in tables and are left zero.
func ReadPlaneTable(fname string, n1, n2 int) (*flow.Plane, error) {
	ws, c1, c2, err := ReadCurveTable(fname)
	if err != nil {
		return nil, err
	}
	if len(ws) != n1*n2 {
		return nil, fmt.Errorf(
			"%s has %d rows, not %d x %d", fname, len(ws), n1, n2,
		)
	}

	pl := &flow.Plane{
		Axis1: make([]float64, n1),
		Axis2: make([]float64, n2),
		U:     mat.NewDense(n2, n1, c2),
	}
	for i := range pl.Axis1 {
		pl.Axis1[i] = ws[i]
	}
	for j := range pl.Axis2 {
		pl.Axis2[j] = c1[j*n1]
	}
	return pl, nil
}
