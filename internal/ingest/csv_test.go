package ingest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/speleodata/cavemap/internal/survey"
)

const sampleCSV = `from,name,distance,azimuth,inclination,left,right,up,down,note
A,B,10.5,45,0,1,2,3,4,entrance crawl
B,C,7,90/271.5,-5/5,2/3,,1,0.5,
C,D,3.25,,90,,,,,chimney
`

func TestReadSample(t *testing.T) {
	shots, err := Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, shots, 3)

	want := survey.Shot{
		From:        "A",
		Name:        "B",
		Distance:    10.5,
		Azimuth:     survey.Single(45),
		Inclination: survey.Single(0),
		Left:        survey.Single(1),
		Right:       survey.Single(2),
		Up:          survey.Single(3),
		Down:        survey.Single(4),
		Note:        "entrance crawl",
	}
	if diff := cmp.Diff(want, shots[0]); diff != "" {
		t.Errorf("first shot (-want +got):\n%s", diff)
	}

	// Paired cells and an empty (absent) cell on the second row.
	require.Equal(t, survey.Paired(90, 271.5), shots[1].Azimuth)
	require.Equal(t, survey.Paired(-5, 5), shots[1].Inclination)
	require.Equal(t, survey.Paired(2, 3), shots[1].Left)
	require.Equal(t, survey.Reading{}, shots[1].Right)

	// Blank azimuth on a plumb shot.
	require.Equal(t, survey.Reading{}, shots[2].Azimuth)
	require.Equal(t, survey.Single(90.0), shots[2].Inclination)
}

func TestReadColumnOrderIndependent(t *testing.T) {
	reordered := `name,distance,from,azimuth
B,10,A,15
`
	shots, err := Read(strings.NewReader(reordered))
	require.NoError(t, err)
	require.Len(t, shots, 1)
	require.Equal(t, "A", shots[0].From)
	require.Equal(t, "B", shots[0].Name)
	require.Equal(t, survey.Single(15.0), shots[0].Azimuth)
	// Columns missing from the header read as absent.
	require.Equal(t, survey.Reading{}, shots[0].Inclination)
}

func TestReadMissingRequiredColumn(t *testing.T) {
	_, err := Read(strings.NewReader("from,name,azimuth\nA,B,10\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 1, perr.Row)
	require.Equal(t, "distance", perr.Field)
}

func TestReadBadCells(t *testing.T) {
	tests := []struct {
		name  string
		csv   string
		row   int
		field string
	}{
		{
			"unparseable azimuth",
			"from,name,distance,azimuth\nA,B,10,north\n",
			2, "azimuth",
		},
		{
			"half a pair",
			"from,name,distance,inclination\nA,B,10,5/\n",
			2, "inclination",
		},
		{
			"empty distance",
			"from,name,distance\nA,B,10\nB,C,\n",
			3, "distance",
		},
		{
			"unparseable distance",
			"from,name,distance\nA,B,ten\n",
			2, "distance",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.csv))
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, tt.row, perr.Row)
			require.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		cell string
		want survey.Reading
	}{
		{"", survey.Reading{}},
		{"12.5", survey.Single(12.5)},
		{"-4", survey.Single(-4)},
		{"10/190", survey.Paired(10, 190)},
		{"1/2/3", survey.Paired(1, 2)}, // extra tokens are ignored
		{" 5 / 6 ", survey.Paired(5, 6)},
	}
	for _, tt := range tests {
		got, err := ParseReading(strings.TrimSpace(tt.cell))
		require.NoError(t, err, tt.cell)
		require.Equal(t, tt.want, got, tt.cell)
	}

	for _, bad := range []string{"x", "1/x", "x/1", "/"} {
		_, err := ParseReading(bad)
		require.Error(t, err, bad)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("testdata/does-not-exist.csv")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
