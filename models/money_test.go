package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "359.90", Money(35990).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-200.00", Money(-20000).String())
	assert.Equal(t, "0.00", Money(0).String())
}

func TestReaisRoundsToCentavo(t *testing.T) {
	assert.Equal(t, Money(35990), Reais(359.90))
	assert.Equal(t, Money(179990), Reais(1799.9))
	assert.InDelta(t, 359.90, Money(35990).Reais(), 1e-9)
}

func TestParseMoney(t *testing.T) {
	cases := map[string]Money{
		"359.90": 35990,
		"359,90": 35990,
		"359":    35900,
		" 40 ":   4000,
	}
	for in, want := range cases {
		got, err := ParseMoney(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseMoney("")
	assert.Error(t, err)
	_, err = ParseMoney("abc")
	assert.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	line := BudgetLine{Label: "Antirreflexo", Value: 4000}
	data, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"Antirreflexo","value":40.00}`, string(data))

	var fromNumber, fromString Money
	require.NoError(t, json.Unmarshal([]byte(`599.9`), &fromNumber))
	require.NoError(t, json.Unmarshal([]byte(`"599,90"`), &fromString))
	assert.Equal(t, Money(59990), fromNumber)
	assert.Equal(t, Money(59990), fromString)

	var untouched Money = 7
	require.NoError(t, json.Unmarshal([]byte(`null`), &untouched))
	assert.Equal(t, Money(7), untouched)
}

func TestMoneyYAML(t *testing.T) {
	var opt Option
	require.NoError(t, yaml.Unmarshal([]byte("id: \"1.74\"\nlabel: \"1.74\"\nprice: \"220\"\nmonofocal_price: 1599.90\n"), &opt))
	assert.Equal(t, Money(22000), opt.Price)
	require.NotNil(t, opt.MonofocalPrice)
	assert.Equal(t, Money(159990), *opt.MonofocalPrice)
}

func TestSelectionsClone(t *testing.T) {
	field := "premium"
	sel := Selections{LensType: LensMultifocal, VisionField: &field, Treatments: []string{"antirreflexo"}}

	cp := sel.Clone()
	cp.Treatments[0] = "polarizado"
	*cp.VisionField = "basica"

	assert.Equal(t, "antirreflexo", sel.Treatments[0])
	assert.Equal(t, "premium", *sel.VisionField)
	assert.True(t, sel.HasTreatment("antirreflexo"))
	assert.False(t, sel.HasTreatment("polarizado"))
}
