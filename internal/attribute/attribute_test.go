package attribute

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func testStore(t *testing.T) *Store {
	return NewStore(writeTree(t, map[string]string{
		"usa/usa.yaml":              "config:\n  religion_1: Protestant\n  religion_2: Catholic\n  language_1: English\n  language_2: Spanish\n",
		"usa/cities.txt":            "New York\n",
		"usa/nc/cities.txt":         "Raleigh\nDurham\n",
		"usa/nc/raleigh/cities.txt": "Cary\n",
		"usa/nc/raleigh/roads.txt":  "Hillsborough St\n",
		"usa/nc/areacodes.txt":      "919\n984\n",
		"usa/nc/lakes.txt":          "Jordan Lake\n",
		"usa/nc/zipcodes.txt":       "27601\n",
		"usa/nc/fnames.txt":         "Bob\nAlice\nCarol\n",
		"usa/nc/cia.txt":            "The <a href=rankorder> population, (est.) is \"large\"; the hrefrankorder link.\n",
		"usa/ma/areacodes.txt":      "617\n",
		"usa/ma/notes.md":           "ignored\n",
		"gbr/eng/cities.txt":        "London\n",
		"religion/bible-religions.conf": "Protestant\ncatholic\n",
		"religion/quran-religions.conf": "sunni\nshia\n",
		"religion/king-james-bible-parsed.txt":                 "In The Beginning\n",
		"religion/douay-rheims-parsed.txt":                     "Genesis\n",
		"religion/new-international-version-bible-parsed.txt": "Exodus\n",
		"religion/quran-parsed-eng.txt":                        "Al-Fatiha\n",
		"languages/english.txt":                                "Hello\n",
		"languages/cedict.txt":                                 "Ni Hao\n",
	}))
}

func TestCollect_RecursesIntoChildren(t *testing.T) {
	s := testStore(t)

	got, err := s.Collect("usa/nc", Cities)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Raleigh", "Durham", "Cary"}, got)

	got, err = s.Collect("usa", Cities)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"New York", "Raleigh", "Durham", "Cary"}, got)
}

func TestCollect_NoFilesIsEmpty(t *testing.T) {
	s := testStore(t)

	got, err := s.Collect("gbr", Roads)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollect_Other(t *testing.T) {
	s := testStore(t)

	got, err := s.Collect("usa", Other)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jordan Lake"}, got)
}

func TestCollect_Demographics(t *testing.T) {
	s := testStore(t)

	got, err := s.Collect("usa/nc", Demographics)
	require.NoError(t, err)
	assert.Equal(t, []string{"The", "est", "is", "large", "link", "population", "the"}, got)
}

func TestCollect_RejectsCrossCutting(t *testing.T) {
	s := testStore(t)
	_, err := s.Collect("usa", Religion)
	assert.Error(t, err)
}

func TestExtractDemographics(t *testing.T) {
	got := ExtractDemographics("Total: 1,234 (2020 est.) total: 1,234\n<a hrefrankorder=1>x</a> “quoted”")
	assert.Equal(t, []string{"1234", "2020", "Total", "est", "quoted", "total"}, got)
}

func TestCodes(t *testing.T) {
	s := testStore(t)

	got, err := s.Codes("usa/nc", AreaCodes)
	require.NoError(t, err)
	assert.Equal(t, []string{"919", "984"}, got)

	got, err = s.Codes("", AreaCodes)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"617", "919", "984"}, got)

	got, err = s.Codes("gbr", ZipCodes)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = s.Codes("usa", Cities)
	assert.Error(t, err)
}

func TestNames(t *testing.T) {
	s := testStore(t)

	got, err := s.Names("usa/nc", FirstNames, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Alice"}, got)

	got, err = s.Names("usa/nc", FirstNames, 0)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = s.Names("usa/nc", LastNames, 0)
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	s := testStore(t)

	p, ok, err := s.Profile("usa/nc/raleigh")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"protestant", "catholic"}, p.Religions())
	assert.Equal(t, []string{"english", "spanish"}, p.Languages())

	_, ok, err = s.Profile("gbr/eng")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReligions(t *testing.T) {
	s := testStore(t)

	got, err := s.Religions([]string{"protestant"})
	require.NoError(t, err)
	assert.Equal(t, []string{"in the beginning", "genesis", "exodus"}, got)

	got, err = s.Religions([]string{"shia"})
	require.NoError(t, err)
	assert.Equal(t, []string{"al-fatiha"}, got)

	got, err = s.Religions([]string{"jedi"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLanguages(t *testing.T) {
	s := testStore(t)

	got, err := s.Languages([]string{"english", "spanish", "mandarin"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "ni hao"}, got)
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"cities":     Cities,
		"ZIP":        ZipCodes,
		"phone":      AreaCodes,
		"teams":      Sports,
		"other":      Other,
		"religion":   Religion,
		"first-names": FirstNames,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseKind("volcanoes")
	assert.Error(t, err)
}
