package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/implhint/implhint/internal/facts"
)

func storePackage() *facts.Package {
	return &facts.Package{
		Path: "/src/store",
		Name: "store",
		Interfaces: []facts.Interface{
			{
				Name: "Store", Line: 3, FilePath: "iface.go",
				Methods: []facts.Method{
					{Name: "Get", Line: 4, FilePath: "iface.go"},
					{Name: "Put", Line: 5, FilePath: "iface.go"},
				},
			},
		},
		Structs: []facts.Struct{
			{
				Name: "FileStore", Line: 3, FilePath: "impl.go",
				Fields: []facts.Field{
					{Name: "dir", Type: "string", Line: 4, FilePath: "impl.go"},
				},
			},
		},
		Methods: []facts.MethodImpl{
			{ReceiverType: "FileStore", MethodName: "Get", Line: 7, FilePath: "impl.go", IsPointer: false},
			{ReceiverType: "FileStore", MethodName: "Put", Line: 11, FilePath: "impl.go", IsPointer: true},
		},
	}
}

func TestIndex_InterfaceSetCarriesDefMarker(t *testing.T) {
	idx := Index(storePackage())

	set := idx.Interfaces["Store"]
	require.NotNil(t, set)

	def, ok := set[DefMarker]
	require.True(t, ok, "interface set must carry its definition site")
	assert.Equal(t, 3, def.Line)
	assert.Equal(t, "iface.go", def.FilePath)

	// Marker plus the two real methods.
	assert.Len(t, set, 3)
}

func TestIndex_PointerReceiversKeyedSeparately(t *testing.T) {
	idx := Index(storePackage())

	require.Contains(t, idx.Methods, "FileStore")
	require.Contains(t, idx.Methods, "*FileStore")

	_, hasGet := idx.Methods["FileStore"]["Get"]
	assert.True(t, hasGet)
	_, hasPut := idx.Methods["*FileStore"]["Put"]
	assert.True(t, hasPut)
}

func TestIndex_StructDefMarkerSeedsValueSet(t *testing.T) {
	idx := Index(storePackage())

	def, ok := idx.Methods["FileStore"][DefMarker]
	require.True(t, ok)
	assert.Equal(t, 3, def.Line)
	assert.Equal(t, "impl.go", def.FilePath)
}

func TestIndex_StructWithoutMethodsStillIndexed(t *testing.T) {
	pkg := &facts.Package{
		Path:    "/src/store",
		Name:    "store",
		Structs: []facts.Struct{{Name: "Empty", Line: 9, FilePath: "types.go"}},
	}
	idx := Index(pkg)

	def, ok := idx.Methods["Empty"][DefMarker]
	require.True(t, ok)
	assert.Equal(t, 9, def.Line)
	assert.Empty(t, idx.EffectiveMethods("Empty"))
}

func TestEffectiveMethods_UnifiesReceiversAndFiltersMarker(t *testing.T) {
	idx := Index(storePackage())

	eff := idx.EffectiveMethods("FileStore")
	assert.Len(t, eff, 2)
	assert.Contains(t, eff, "Get")
	assert.Contains(t, eff, "Put")
	assert.NotContains(t, eff, DefMarker)
}

func TestEffectiveMethods_ReceiverWithoutStruct(t *testing.T) {
	pkg := &facts.Package{
		Path: "/src/store",
		Name: "store",
		Methods: []facts.MethodImpl{
			{ReceiverType: "Alias", MethodName: "Get", IsPointer: true, FilePath: "alias.go"},
		},
	}
	idx := Index(pkg)

	eff := idx.EffectiveMethods("Alias")
	require.Len(t, eff, 1)
	assert.Contains(t, eff, "Get")
}

func TestReceiverBaseNames_FoldsPointerSpelling(t *testing.T) {
	idx := Index(storePackage())

	names := idx.ReceiverBaseNames()
	assert.ElementsMatch(t, []string{"FileStore"}, names)
}

func TestIndex_DuplicateMethodLastWriteWins(t *testing.T) {
	pkg := storePackage()
	pkg.Methods = append(pkg.Methods, facts.MethodImpl{
		ReceiverType: "FileStore", MethodName: "Get", Line: 99, FilePath: "impl2.go",
	})

	idx := Index(pkg)
	got := idx.Methods["FileStore"]["Get"]
	assert.Equal(t, 99, got.Line)
	assert.Equal(t, "impl2.go", got.FilePath)
}

func TestIndex_FieldsKeyedByName(t *testing.T) {
	idx := Index(storePackage())

	fields := idx.Fields["FileStore"]
	require.Len(t, fields, 1)
	assert.Equal(t, "string", fields["dir"].Type)
}

func TestIndex_CarriesDirectives(t *testing.T) {
	pkg := storePackage()
	pkg.Directives = []facts.Directive{
		{StructName: "FileStore", InterfaceName: "Store", Line: 1, FilePath: "impl.go"},
	}

	idx := Index(pkg)
	require.Len(t, idx.Directives, 1)
	assert.Equal(t, "FileStore", idx.Directives[0].StructName)
}
