package obprop

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikz/dock/errors"
)

func TestParse(t *testing.T) {
	out, err := os.ReadFile(filepath.Join("testdata", "obprop.txt"))
	require.NoError(t, err)

	props := Parse(string(out))
	assert.Equal(t, "C2H5NO", props["formula"])
	assert.Equal(t, "-0.4393", props["logP"])

	d := props.Descriptors()
	assert.Equal(t, 9, d.Atoms)
	assert.Equal(t, 8, d.Bonds)
	assert.Equal(t, 1, d.Residues)
	assert.Equal(t, 0, d.Rotors)
	assert.Equal(t, 59.0672, d.Weight)
	require.NotNil(t, d.LogP)
	assert.Equal(t, -0.4393, *d.LogP)
}

func TestDescriptorsMissingLogP(t *testing.T) {
	for _, out := range []string{
		"formula C6H6\nnum_atoms 12\n$$$$\n",
		"formula C6H6\nlogP nan\n$$$$\n",
	} {
		d := Parse(out).Descriptors()
		assert.Nil(t, d.LogP, out)
		assert.Equal(t, "C6H6", d.Formula)
	}
}

func TestDescribeMissingBinary(t *testing.T) {
	rec := "HETATM    1  C1  UNL Z   1       0.000   0.000   0.000  1.00  0.00           C\nEND\n"
	d := NewDescriptor(filepath.Join(t.TempDir(), "no-obprop"), t.TempDir())
	_, err := d.Describe(context.Background(), rec)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeDescriptorUnavailable))
}
