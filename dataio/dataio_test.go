package dataio_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spkmeans/dataio"
	"github.com/katalvlaran/spkmeans/jacobi"
	"github.com/katalvlaran/spkmeans/matrix"
)

const twoPairs = "0,0\n0,1\n10,10\n10,11\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func writeGzip(t *testing.T, name, body string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return writeFile(t, name, buf.String())
}

func TestRead_Rows(t *testing.T) {
	ds, err := dataio.Read(strings.NewReader("1.5, -2\n\n3,4e1\n"))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1.5, -2}, {3, 40}}, ds.Rows)
	require.Equal(t, 2, ds.N())
	require.Equal(t, 2, ds.Dim())
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"empty", "", dataio.ErrEmpty},
		{"blank lines only", "\n\n", dataio.ErrEmpty},
		{"ragged", "1,2\n3\n", dataio.ErrMalformed},
		{"not a number", "1,x\n", dataio.ErrMalformed},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := dataio.Read(strings.NewReader(tc.body))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRead_Digest(t *testing.T) {
	ds, err := dataio.Read(strings.NewReader(twoPairs))
	require.NoError(t, err)
	require.Equal(t, xxhash.Sum64String(twoPairs), ds.Digest)
}

func TestCheckExtension(t *testing.T) {
	for _, name := range []string{"a.txt", "a.csv", "A.TXT", "a.txt.gz", "dir/a.csv.gz"} {
		_, err := dataio.CheckExtension(name)
		require.NoError(t, err, name)
	}
	gz, _ := dataio.CheckExtension("a.csv.gz")
	require.True(t, gz)

	for _, name := range []string{"a.json", "a", "a.gz", "a.txt.bz2"} {
		_, err := dataio.CheckExtension(name)
		require.ErrorIs(t, err, dataio.ErrExtension, name)
	}
}

func TestLoad_PlainAndGzip(t *testing.T) {
	plain, err := dataio.ReadPoints(writeFile(t, "in.txt", twoPairs))
	require.NoError(t, err)
	zipped, err := dataio.ReadPoints(writeGzip(t, "in.csv.gz", twoPairs))
	require.NoError(t, err)

	require.Equal(t, plain.Rows, zipped.Rows)
	require.Equal(t, plain.Digest, zipped.Digest, "digest covers decompressed bytes")
	require.Equal(t, 4, zipped.N())
}

func TestLoad_Errors(t *testing.T) {
	_, err := dataio.Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, dataio.ErrUnreadable)

	_, err = dataio.Load(writeFile(t, "bad.txt.gz", "not gzip"))
	require.ErrorIs(t, err, dataio.ErrUnreadable)

	_, err = dataio.Load(writeFile(t, "in.dat", twoPairs))
	require.ErrorIs(t, err, dataio.ErrExtension)

	_, err = dataio.ReadMatrix(writeFile(t, "m.txt", twoPairs))
	require.ErrorIs(t, err, dataio.ErrNotSquare)
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataio.WriteRows(&buf, [][]float64{{1, -0.5}, {2.123456, 0}}))
	require.Equal(t, "1.0000,-0.5000\n2.1235,0.0000\n", buf.String())
}

func TestWriteMatrix(t *testing.T) {
	m, err := matrix.NewFromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, dataio.WriteMatrix(&buf, m))
	require.Equal(t, "0.0000,1.0000\n1.0000,0.0000\n", buf.String())

	require.ErrorIs(t, dataio.WriteMatrix(&buf, nil), matrix.ErrNilMatrix)
}

func TestWriteEigen(t *testing.T) {
	A, err := matrix.NewFromRows([][]float64{{3, 0}, {0, 5}})
	require.NoError(t, err)
	res, err := jacobi.Solve(A, jacobi.DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dataio.WriteEigen(&buf, res))
	require.Equal(t, "3.0000,5.0000\n1.0000,0.0000\n0.0000,1.0000\n", buf.String())
}

func TestWriteIndices(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dataio.WriteIndices(&buf, []int{0, 3, 12}))
	require.Equal(t, "0,3,12\n", buf.String())
}
