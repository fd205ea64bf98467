package services

import (
	"testing"

	"github.com/WilkerGw/LP-OTICA/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()
	tables := cat.Tables()

	require.Len(t, tables.LensTypes, 2)
	require.Len(t, tables.VisionFields, 3)
	require.Len(t, tables.RefractiveIndices, 6)
	require.Len(t, tables.Treatments, 5)

	assert.Equal(t, models.LensMonofocal, tables.LensTypes[0].ID)
	assert.Equal(t, "1.50", tables.RefractiveIndices[0].ID)

	premium, ok := cat.VisionField("premium")
	require.True(t, ok)
	assert.Equal(t, models.Reais(1799.90), premium.Price)

	idx, ok := cat.RefractiveIndex("1.74")
	require.True(t, ok)
	assert.Equal(t, models.Reais(220), idx.Price)
	require.NotNil(t, idx.MonofocalPrice)
	assert.Equal(t, models.Reais(1599.90), *idx.MonofocalPrice)

	_, ok = cat.Treatment("laser")
	assert.False(t, ok)

	require.Len(t, cat.Materials(), 5)
	mat, ok := cat.Material("1.59")
	require.True(t, ok)
	assert.Equal(t, "Policarbonato", mat.Material)
	assert.NotEmpty(t, mat.Features)
	_, ok = cat.Material("1.61")
	assert.False(t, ok)
}

func TestLoadCatalog_Validation(t *testing.T) {
	valid := `
lens_types: [{id: monofocal, label: Monofocal, price: "359.90"}]
vision_fields: [{id: basica, label: Básica, price: "599.90"}]
refractive_indices: [{id: "1.50", label: "1.50", price: "0", monofocal_price: "359.90"}]
treatments: [{id: antirreflexo, label: Antirreflexo, price: "40"}]
`
	_, err := LoadCatalog([]byte(valid))
	require.NoError(t, err)

	cases := map[string]string{
		"empty set": `
lens_types: []
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
`,
		"duplicate id": `
lens_types: [{id: monofocal, price: "1"}, {id: monofocal, price: "2"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
`,
		"negative price": `
lens_types: [{id: monofocal, price: "-1"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
`,
		"missing monofocal price": `
lens_types: [{id: monofocal, price: "1"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0"}]
treatments: [{id: a, price: "1"}]
`,
		"missing id": `
lens_types: [{label: Monofocal, price: "1"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
`,
		"material index not a number": `
lens_types: [{id: monofocal, price: "1"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
lens_materials: [{index: standard, material: CR-39}]
`,
		"material index below one": `
lens_types: [{id: monofocal, price: "1"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
lens_materials: [{index: "1", material: Vidro}]
`,
		"duplicate material": `
lens_types: [{id: monofocal, price: "1"}]
vision_fields: [{id: basica, price: "1"}]
refractive_indices: [{id: "1.50", price: "0", monofocal_price: "1"}]
treatments: [{id: a, price: "1"}]
lens_materials: [{index: "1.50", material: CR-39}, {index: "1.50", material: Resina}]
`,
		"not yaml": `lens_types: [`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(data))
			assert.Error(t, err)
		})
	}
}
