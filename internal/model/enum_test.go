package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnum_Parse(t *testing.T) {
	v, err := ServiceTypes.Parse(" BUY_SELL ")
	require.NoError(t, err)
	assert.Equal(t, ServiceBuySell, v)

	_, err = ServiceTypes.Parse("buy_sell")
	var enumErr *EnumError
	require.True(t, errors.As(err, &enumErr))
	assert.Equal(t, "ServiceType", enumErr.Kind)
	assert.Equal(t, "buy_sell", enumErr.Value)
	assert.Contains(t, err.Error(), "BUY_SELL, RENTAL, INVESTMENT, MARKETING")
}

func TestEnum_ParseList(t *testing.T) {
	got, err := PropertyDetails.ParseList([]string{"House", "PLot_Form"})
	require.NoError(t, err)
	assert.Equal(t, []PropertyDetail{"House", "PLot_Form"}, got)

	_, err = Areas.ParseList([]string{"KARACHI", "QUETTA"})
	assert.ErrorContains(t, err, `invalid Area "QUETTA"`)

	got2, err := Areas.ParseList(nil)
	require.NoError(t, err)
	assert.Empty(t, got2)
}

func TestEnum_ParseOr(t *testing.T) {
	v, err := AgencyTypes.ParseOr("", AgencyBoth)
	require.NoError(t, err)
	assert.Equal(t, AgencyBoth, v)

	_, err = AgencyTypes.ParseOr("BOTHS", AgencyBoth)
	assert.Error(t, err)
}

func TestEnums_Registry(t *testing.T) {
	for _, name := range []string{
		"VerificationStatus", "AgencyType", "ServiceType", "PropertyType", "PropertyDetail", "Area",
		"ResponseTime", "Specialization", "ProjectType", "ProjectStatus", "PaymentPlan", "UnitType",
	} {
		set, ok := Enums[name]
		if assert.True(t, ok, name) {
			assert.Equal(t, name, set.Kind())
		}
	}
	assert.True(t, Enums["UnitType"].Contains("VILLAS"))
}

func TestCatalogs_MatchEnums(t *testing.T) {
	cases := []struct {
		catalog Catalog
		enum    EnumSet
	}{
		{AreaOptions, Areas},
		{ServiceOptions, ServiceTypes},
		{AgentServiceOptions, ServiceTypes},
		{PropertyTypeOptions, PropertyTypes},
		{PropertyDetailOptions, PropertyDetails},
		{SpecializationOptions, Specializations},
		{UnitTypeOptions, UnitTypes},
	}
	for _, tc := range cases {
		assert.ElementsMatch(t, tc.enum.Strings(), tc.catalog.IDs(), tc.enum.Kind())
	}
	assert.Equal(t, "Co-working Space", PropertyTypeOptions.Label("CO_WORK_SPACE"))
	assert.Equal(t, "unknown", PropertyTypeOptions.Label("unknown"))
}

func TestEnum_Label(t *testing.T) {
	assert.Equal(t, "Mixed Use", ProjectTypes.Label(ProjectMixedUse))
	assert.Equal(t, "Within Hours", ResponseTimes.Label(ResponseWithinHours))
	assert.Equal(t, "", PaymentPlans.Label(""))
}
