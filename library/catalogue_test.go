package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogueHeader = "code,titre,auteur,note,categories\n"

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "livres.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalogue(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		" l01 , Le Petit Prince , Saint-Exup\xe9ry ,4.5, Conte ; Jeunesse \n"+
		"L02,Dune,Frank Herbert,4.8,sf;classique\n")

	cat, diags := LoadCatalogue(path)

	assert.Empty(t, diags)
	require.Equal(t, 2, cat.Len())

	b, ok := cat.Get("L01")
	require.True(t, ok)
	assert.Equal(t, "Le Petit Prince", b.Title)
	assert.Equal(t, "Saint-Exupéry", b.Author)
	assert.Equal(t, 4.5, b.Rating)
	assert.Equal(t, []string{"conte", "jeunesse"}, b.Categories)
}

func TestLoadCatalogue_MissingFile(t *testing.T) {
	cat, diags := LoadCatalogue(filepath.Join(t.TempDir(), "absent.csv"))

	assert.Equal(t, 0, cat.Len())
	require.Len(t, diags, 1)
	assert.Equal(t, KindMissingFile, diags[0].Kind)

	_, found := FindByCode(cat, "L01")
	assert.False(t, found)
}

func TestLoadCatalogue_SkipsEmptyCodes(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"   ,No code,Nobody,3,\n"+
		",Also none,,,\n"+
		"L03,Kept,,,\n")

	cat, diags := LoadCatalogue(path)

	assert.Empty(t, diags)
	assert.Equal(t, 1, cat.Len())
	_, ok := cat.Get("L03")
	assert.True(t, ok)
}

func TestLoadCatalogue_DuplicateCodesLastWriteWins(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"L01,First,Author A,4.0,roman\n"+
		"L02,Second,Author B,3.0,essai\n"+
		"l01,Replacement,,,\n")

	cat, _ := LoadCatalogue(path)

	books := cat.Books()
	require.Len(t, books, 2)
	// The replaced record keeps its original position.
	assert.Equal(t, "L01", books[0].Code)
	assert.Equal(t, "Replacement", books[0].Title)
	assert.Equal(t, "", books[0].Author)
	assert.Equal(t, 0.0, books[0].Rating)
	assert.Empty(t, books[0].Categories)
	assert.Equal(t, "L02", books[1].Code)
}

func TestLoadCatalogue_RatingDefaults(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"A,,,,\n"+
		"B,,,abc,\n"+
		"C,,,4;5,\n"+
		"D,,,NaN,\n"+
		"E,,, 3.25 ,\n")

	cat, _ := LoadCatalogue(path)

	for code, want := range map[string]float64{"A": 0, "B": 0, "C": 0, "D": 0, "E": 3.25} {
		b, ok := cat.Get(code)
		require.True(t, ok, code)
		assert.Equal(t, want, b.Rating, code)
	}
}

func TestLoadCatalogue_Categories(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+"L01,T,A,1, Roman ; ;SF;roman;\n")

	cat, _ := LoadCatalogue(path)

	b, ok := cat.Get("L01")
	require.True(t, ok)
	assert.Equal(t, []string{"roman", "sf", "roman"}, b.Categories)
}

func TestLoadCatalogue_MissingColumns(t *testing.T) {
	path := writeCatalogue(t, "code,titre\nL01,Only title\nL02\n")

	cat, diags := LoadCatalogue(path)

	assert.Empty(t, diags)
	require.Equal(t, 2, cat.Len())
	b, _ := cat.Get("L01")
	assert.Equal(t, "Only title", b.Title)
	assert.Equal(t, "", b.Author)
	assert.Equal(t, 0.0, b.Rating)
	b, _ = cat.Get("L02")
	assert.Equal(t, "", b.Title)
}

func TestLoadCatalogue_LegacyEncoding(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+"L01,Les Mis\xe9rables,Victor Hugo,5,roman\nL02,Bad \x81 byte,,,\n")

	cat, diags := LoadCatalogue(path)

	b, ok := cat.Get("L01")
	require.True(t, ok)
	assert.Equal(t, "Les Misérables", b.Title)

	b, ok = cat.Get("L02")
	require.True(t, ok)
	assert.Equal(t, "Bad � byte", b.Title)

	require.Len(t, diags, 1)
	assert.Equal(t, KindDecodeError, diags[0].Kind)
	assert.Contains(t, diags[0].Message, "1 undecodable")
}

func TestLoadCatalogue_ByteOrderMark(t *testing.T) {
	path := writeCatalogue(t, "\xEF\xBB\xBF"+catalogueHeader+"L01,Title,,,\n")

	cat, _ := LoadCatalogue(path)

	_, ok := cat.Get("L01")
	assert.True(t, ok)
}

func TestLoadCatalogue_QuotedFields(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"L01,\"Guerre et paix, tome 1\",Tolsto\xef,4.2,\"roman;histoire\"\r\n"+
		"L02,Un \"bon\" livre,,,\r\n")

	cat, diags := LoadCatalogue(path)

	assert.Empty(t, diags)
	b, _ := cat.Get("L01")
	assert.Equal(t, "Guerre et paix, tome 1", b.Title)
	assert.Equal(t, []string{"roman", "histoire"}, b.Categories)
	b, _ = cat.Get("L02")
	assert.Equal(t, `Un "bon" livre`, b.Title)
}

func TestLoadCatalogue_ReadFailure(t *testing.T) {
	cat, diags := LoadCatalogue(t.TempDir())

	assert.Equal(t, 0, cat.Len())
	assert.True(t, diags.Has(KindIOFailure))
}

func TestLoadCatalogue_EmptyFile(t *testing.T) {
	cat, diags := LoadCatalogue(writeCatalogue(t, ""))

	assert.Equal(t, 0, cat.Len())
	assert.Empty(t, diags)
}

func TestCatalogueReturnsCopies(t *testing.T) {
	b, err := NewBook("L01", "T", "A", 1, []string{"x"})
	require.NoError(t, err)
	cat := NewCatalogue(b)

	got, _ := cat.Get("L01")
	got.Categories[0] = "mutated"

	again, _ := cat.Get("L01")
	assert.Equal(t, []string{"x"}, again.Categories)
}

func TestNewBook(t *testing.T) {
	b, err := NewBook("  ab1 ", " Title ", " Author ", 2.5, []string{" Poésie ", "", "  "})
	require.NoError(t, err)
	assert.Equal(t, "AB1", b.Code)
	assert.Equal(t, "Title", b.Title)
	assert.Equal(t, "Author", b.Author)
	assert.Equal(t, []string{"poésie"}, b.Categories)

	_, err = NewBook("   ", "x", "y", 0, nil)
	assert.ErrorIs(t, err, ErrEmptyCode)
}

func TestLoadCatalogue_TextAfterClosingQuote(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"L01,\"Dune\" (tome 1),Herbert,4.8,sf\n"+
		"L02,Fondation,Asimov,4.5,sf\n"+
		"L03,Hyperion,Simmons,4.2,sf\n")

	cat, diags := LoadCatalogue(path)

	assert.Empty(t, diags)
	require.Equal(t, 3, cat.Len())
	b, _ := cat.Get("L01")
	assert.Equal(t, "Dune (tome 1)", b.Title)
	assert.Equal(t, "Herbert", b.Author)
	assert.Equal(t, 4.8, b.Rating)
	for _, code := range []string{"L02", "L03"} {
		_, ok := cat.Get(code)
		assert.True(t, ok, code)
	}
}

func TestLoadCatalogue_UnterminatedQuoteSkipsOneRow(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"L01,\"Dune,Herbert,4.8,sf\n"+
		"L02,Fondation,Asimov,4.5,sf\n"+
		"L03,Hyperion,Simmons,4.2,sf\n")

	cat, diags := LoadCatalogue(path)

	require.Len(t, diags, 1)
	assert.Equal(t, KindMalformedRecord, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, []string{"L02", "L03"}, codesOf(cat.Books()))
}

func TestLoadCatalogue_MultiLineQuotedField(t *testing.T) {
	path := writeCatalogue(t, catalogueHeader+
		"L01,\"Tome un\nsuite\",Auteur,3,\n"+
		"L02,\"Il dit \"\"bonjour\"\"\",,,\n")

	cat, diags := LoadCatalogue(path)

	assert.Empty(t, diags)
	b, _ := cat.Get("L01")
	assert.Equal(t, "Tome un\nsuite", b.Title)
	assert.Equal(t, "Auteur", b.Author)
	b, _ = cat.Get("L02")
	assert.Equal(t, `Il dit "bonjour"`, b.Title)
}
