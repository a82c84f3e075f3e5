package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Greater(t, c.Len(), 1)

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, "005930", first.Code)
	assert.Equal(t, "삼성전자", first.Name)

	for _, s := range c.All() {
		got, ok := c.Lookup(s.Code)
		require.True(t, ok, s.Code)
		assert.Equal(t, s, got)
	}

	_, ok = c.Lookup("999999")
	assert.False(t, ok)
	assert.Len(t, c.Codes(), c.Len())
}

func TestAllReturnsCopy(t *testing.T) {
	c := Default()
	all := c.All()
	all[0].Name = "changed"

	first, _ := c.First()
	assert.Equal(t, "삼성전자", first.Name)
}

func TestNewRejectsBadCodes(t *testing.T) {
	_, err := New([]models.MStock{{Code: "1"}, {Code: "1"}})
	assert.True(t, helpers.IsValidation(err))

	_, err = New([]models.MStock{{Code: " "}})
	assert.True(t, helpers.IsValidation(err))
}

func TestEmptyCatalog(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)
	_, ok := c.First()
	assert.False(t, ok)
	assert.Empty(t, c.All())
}

func TestLoadFile(t *testing.T) {
	body := `stocks:
  - code: "000100"
    name: 유한양행
    price: 120000
    change: 1000
    change_percent: 0.84
    volume: 100
  - code: "000120"
    name: CJ대한통운
    price: 90000
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	s, ok := c.Lookup("000100")
	require.True(t, ok)
	assert.Equal(t, "유한양행", s.Name)
	assert.InDelta(t, 0.84, s.ChangePercent, 1e-9)
}
