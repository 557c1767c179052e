package db

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/speleodata/cavemap/internal/survey"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "cavemap_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func resolvedFixture(t *testing.T) *survey.Network {
	t.Helper()
	n := survey.NewNetwork("Fixture Cave", "feet", survey.DefaultAngleTolerance)
	shots := []survey.Shot{
		{
			From: "A", Name: "B", Distance: 10,
			Azimuth:     survey.Paired(45, 225),
			Inclination: survey.Single(-5),
			Left:        survey.Single(2),
			Note:        "entrance",
		},
		{
			From: "B", Name: "C", Distance: 4.5,
			Azimuth:     survey.Single(120),
			Inclination: survey.Reading{},
		},
	}
	for _, s := range shots {
		_, err := n.AddShot(s)
		require.NoError(t, err)
	}
	require.NoError(t, n.Process())
	return n
}

func TestMigrateVersion(t *testing.T) {
	d := openTestDB(t)
	version, dirty, err := d.MigrateVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(1), version)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	d := openTestDB(t)
	n := resolvedFixture(t)

	id, err := d.SaveSurvey(n)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := d.LoadSurvey(id)
	require.NoError(t, err)
	require.Equal(t, n.Title, loaded.Title)
	require.Equal(t, n.DistanceUnits, loaded.DistanceUnits)
	require.Equal(t, n.AngleTolerance, loaded.AngleTolerance)
	require.Equal(t, n.OriginName(), loaded.OriginName())
	require.True(t, loaded.Resolved())

	// Replaying the stored shots reproduces the same geometry.
	want, got := n.Stations(), loaded.Stations()
	require.Equal(t, len(want), len(got))
	for i := range want {
		if diff := cmp.Diff(want[i], got[i]); diff != "" {
			t.Errorf("station %d (-want +got):\n%s", i, diff)
		}
	}

	// Reduced readings persist in sheet-cell syntax; the paired azimuth was
	// averaged before saving.
	require.Equal(t, survey.ReadingSingle, loaded.Shots()[0].Azimuth.Kind)
	require.InDelta(t, 45, loaded.Shots()[0].Azimuth.Value(), 1e-9)
	require.Equal(t, "entrance", loaded.Shots()[0].Note)
	require.Equal(t, survey.Reading{}, loaded.Shots()[1].Inclination)
}

func TestSaveRejectsUnresolved(t *testing.T) {
	d := openTestDB(t)
	n := survey.NewNetwork("Unresolved", "feet", survey.DefaultAngleTolerance)
	_, err := n.AddShot(survey.Shot{From: "A", Name: "B", Distance: 1})
	require.NoError(t, err)

	_, err = d.SaveSurvey(n)
	require.Error(t, err)
}

func TestLoadMissingSurvey(t *testing.T) {
	d := openTestDB(t)
	_, err := d.LoadSurvey("no-such-id")
	require.Error(t, err)
}

func TestListSurveys(t *testing.T) {
	d := openTestDB(t)
	n := resolvedFixture(t)

	first, err := d.SaveSurvey(n)
	require.NoError(t, err)
	second, err := d.SaveSurvey(n)
	require.NoError(t, err)

	metas, err := d.ListSurveys()
	require.NoError(t, err)
	require.Len(t, metas, 2)

	ids := []string{metas[0].ID, metas[1].ID}
	require.ElementsMatch(t, []string{first, second}, ids)
	for _, m := range metas {
		require.Equal(t, "Fixture Cave", m.Title)
		require.Equal(t, "A", m.OriginName)
		require.False(t, m.CreatedAt.IsZero())
	}
}
