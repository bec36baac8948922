package cratedoc_test

import (
	"testing"

	"github.com/fwojciec/cratedoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    cratedoc.Reference
		wantErr bool
	}{
		{name: "bare name", input: "serde", want: cratedoc.Reference{Name: "serde"}},
		{name: "name and version", input: "serde@1.0.0", want: cratedoc.Reference{Name: "serde", Version: "1.0.0"}},
		{name: "version requirement kept verbatim", input: "tokio@>=1, <2", want: cratedoc.Reference{Name: "tokio", Version: ">=1, <2"}},
		{name: "splits on first separator only", input: "a@b@c", want: cratedoc.Reference{Name: "a", Version: "b@c"}},
		{name: "trims surrounding space", input: "  anyhow  ", want: cratedoc.Reference{Name: "anyhow"}},
		{name: "empty input", input: "", wantErr: true},
		{name: "version without name", input: "@1.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cratedoc.ParseReference(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, cratedoc.EINVALID, cratedoc.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReference(t *testing.T) {
	t.Parallel()

	t.Run("requirement defaults to any version", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "*", cratedoc.Reference{Name: "serde"}.Requirement())
		assert.Equal(t, "1.0", cratedoc.Reference{Name: "serde", Version: "1.0"}.Requirement())
	})

	t.Run("display version defaults to latest", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "latest", cratedoc.Reference{Name: "serde"}.DisplayVersion())
		assert.Equal(t, "1.0", cratedoc.Reference{Name: "serde", Version: "1.0"}.DisplayVersion())
	})

	t.Run("lib name replaces hyphens", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "serde_json", cratedoc.Reference{Name: "serde-json"}.LibName())
	})

	t.Run("string round-trips the identifier", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"serde", "serde@1.0.0"} {
			ref, err := cratedoc.ParseReference(s)
			require.NoError(t, err)
			assert.Equal(t, s, ref.String())
		}
	})
}

func TestURLs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://docs.rs/serde", cratedoc.DocsURL("serde"))
	assert.Equal(t, "https://crates.io/crates/serde", cratedoc.RegistryURL("serde"))
}

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := cratedoc.Errorf(cratedoc.ENOTFOUND, "crate %q not found", "serde")

	assert.Equal(t, cratedoc.ENOTFOUND, cratedoc.ErrorCode(err))
	assert.Equal(t, "crate \"serde\" not found", cratedoc.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, cratedoc.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, cratedoc.ErrorMessage(nil))
}

func TestFragment_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires crate name", func(t *testing.T) {
		t.Parallel()

		f := &cratedoc.Fragment{Content: "# x"}
		assert.Equal(t, cratedoc.EINVALID, cratedoc.ErrorCode(f.Validate()))
	})

	t.Run("requires content", func(t *testing.T) {
		t.Parallel()

		f := &cratedoc.Fragment{Reference: cratedoc.Reference{Name: "serde"}}
		assert.Equal(t, cratedoc.EINVALID, cratedoc.ErrorCode(f.Validate()))
	})

	t.Run("accepts complete fragment", func(t *testing.T) {
		t.Parallel()

		f := &cratedoc.Fragment{Reference: cratedoc.Reference{Name: "serde"}, Content: "# serde"}
		assert.NoError(t, f.Validate())
	})
}

func TestMetadata_FindPackage(t *testing.T) {
	t.Parallel()

	md := &cratedoc.Metadata{Packages: []*cratedoc.Package{
		{Name: "doc-fetcher"},
		{Name: "serde", Version: "1.0.210"},
	}}

	require.NotNil(t, md.FindPackage("serde"))
	assert.Equal(t, "1.0.210", md.FindPackage("serde").Version)
	assert.Nil(t, md.FindPackage("tokio"))

	var nilMD *cratedoc.Metadata
	assert.Nil(t, nilMD.FindPackage("serde"))
}
