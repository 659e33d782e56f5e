package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CVSSimpleTest struct {
	Name   string  `csv:"name"`
	Age    int     `csv:"age"`
	Height float32 `csv:"height"`
	Gender bool    `csv:"gender"`
}

func TestCSVSimple(t *testing.T) {
	rows, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/simple.csv", ';')
	require.NoError(t, err)

	got := NewList[CVSSimpleTest](3)
	for row := range rows {
		got.Add(row)
	}
	assert.Equal(t, List[CVSSimpleTest]{
		{Name: "John", Age: 30, Height: 170, Gender: false},
		{Name: "Jane", Age: 25, Height: 160, Gender: true},
		{Name: "Joe", Age: 35, Height: 175, Gender: true},
	}, got)
}

func TestCSVError(t *testing.T) {
	rows, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/error.csv", ';')
	require.NoError(t, err)

	got := NewList[CVSSimpleTest](3)
	for row := range rows {
		got.Add(row)
	}
	// the short row is skipped, empty cells keep zero values
	require.Len(t, got, 3)
	assert.Equal(t, float32(170.5), got[0].Height)
	assert.Equal(t, "Jane", got[1].Name)
	assert.Equal(t, CVSSimpleTest{Age: 28}, got[2])
}

func TestCSVMissingFile(t *testing.T) {
	_, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/missing.csv", ';')
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "meta.json")
	value := Dict[string, int]{"a": 1, "b": 2}

	require.NoError(t, WriteJSONToFile(value, file))
	read, err := ReadJSONFromFile[Dict[string, int]](file)
	require.NoError(t, err)
	assert.Equal(t, value, read)

	_, err = ReadJSONFromFile[Dict[string, int]](filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
