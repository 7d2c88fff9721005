package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"JUPITER", "MARTE", "VENUS", "TIERRA", "LUNA", "SOL", "ESTRELLA", "GALAXIA"}, v)

	// callers get a copy
	v[0] = "PLUTON"
	again, _ := Default()
	assert.Equal(t, "JUPITER", again[0])
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	content := "# comets\n  halley \n\nencke\nHALLEY\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"HALLEY", "ENCKE"}, v)
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)
	assert.Len(t, v, 8)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr bool
	}{
		{name: "uppercases", in: []string{"sol", "Luna"}, want: []string{"SOL", "LUNA"}},
		{name: "dedupes", in: []string{"SOL", "sol"}, want: []string{"SOL"}},
		{name: "rejects digits", in: []string{"M31"}, wantErr: true},
		{name: "rejects spaces", in: []string{"VIA LACTEA"}, wantErr: true},
		{name: "rejects empty", in: []string{"", "  "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
