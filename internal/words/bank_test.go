package words

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/aaronzipp/undercover/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	bank, err := Default(rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	assert.Equal(t, 50, bank.Len())

	for range 20 {
		civilian, undercover := bank.NextWordPair()
		assert.NotEmpty(t, civilian)
		assert.NotEmpty(t, undercover)
		assert.NotEqual(t, civilian, undercover)
	}
}

func TestNewDropsUnusablePairs(t *testing.T) {
	bank, err := New([]models.WordPair{
		{Civilian: " sun ", Undercover: "moon"},
		{Civilian: "", Undercover: "lake"},
		{Civilian: "Cat", Undercover: "cat"},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, bank.Len())

	civilian, undercover := bank.NextWordPair()
	assert.Equal(t, "sun", civilian)
	assert.Equal(t, "moon", undercover)

	_, err = New(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyBank)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "pairs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"civilian":"guitar","undercover":"piano"}]`), 0o600))
	bank, err := Load(path, nil)
	require.NoError(t, err)
	civilian, undercover := bank.NextWordPair()
	assert.Equal(t, "guitar", civilian)
	assert.Equal(t, "piano", undercover)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{not json`), 0o600))
	_, err = Load(broken, nil)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0o600))
	_, err = Load(empty, nil)
	assert.ErrorIs(t, err, ErrEmptyBank)

	_, err = Load(filepath.Join(dir, "missing.json"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
