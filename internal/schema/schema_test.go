package schema

import (
	"errors"
	"testing"

	"estate_listing_v1/internal/api/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAgency() dto.AgencyPayload {
	return dto.AgencyPayload{
		ID:              "u1",
		Name:            "Ace Realty",
		OfficeAddress:   "123 Main",
		PhoneNumber:     "555-1",
		Email:           "a@ace.com",
		ServicesOffered: []string{"BUY_SELL"},
		PropertyTypes:   []string{"HOME"},
		PropertyDetails: []string{"House"},
		AreasCovered:    []string{"KARACHI"},
		TotalAgents:     "2",
		TotalListings:   "5",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Fields
}

func TestValidate_AgencyOK(t *testing.T) {
	assert.NoError(t, Validate(validAgency()))
}

func TestValidate_AgencyFieldErrors(t *testing.T) {
	p := validAgency()
	p.Name = "Ac"
	p.Email = "not-an-email"
	p.Website = "ace dot com"
	p.ServicesOffered = nil
	p.AreasCovered = []string{"KARACHI", "MARS"}
	p.OverallRating = "7"
	p.TotalAgents = "two"

	fields := fieldsOf(t, Validate(p))

	assert.Equal(t, "must be at least 3 characters", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be a valid URL", fields["website"])
	assert.Equal(t, "select at least one option", fields["servicesOffered"])
	assert.Contains(t, fields["areasCovered[1]"], "KARACHI")
	assert.Equal(t, "must be between 0 and 5", fields["overallRating"])
	assert.Equal(t, "must be a number", fields["totalAgents"])
	assert.NotContains(t, fields, "phoneNumber")
}

func TestValidate_NumberRules(t *testing.T) {
	tests := []struct {
		name    string
		total   dto.Numeric
		wantErr string
	}{
		{"plain", "12", ""},
		{"exponent", "1e1", ""},
		{"upper bound", "2147483647", ""},
		{"fraction", "2.5", "must be a whole number"},
		{"too large", "99999999999999999999", "must be a whole number"},
		{"too small", "-2147483649", "must be a whole number"},
		{"word", "two", "must be a number"},
		{"not a number", "NaN", "must be a number"},
		{"infinite", "Inf", "must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validAgency()
			p.TotalAgents = tt.total
			err := Validate(p)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldsOf(t, err)["totalAgents"], tt.wantErr)
		})
	}
}

func TestValidate_PriceAcceptsExponent(t *testing.T) {
	p := dto.PriceRangeFields{MinPrice: "1e3", MaxPrice: "2.5e3"}
	assert.NoError(t, Validator().Struct(p))

	p.MaxPrice = "1e400"
	assert.Error(t, Validator().Struct(p))
}

func TestValidate_EmptyOptionalURLs(t *testing.T) {
	p := validAgency()
	p.Website = ""
	p.ListingLink = ""
	p.SocialMedia = dto.SocialMediaFields{Facebook: ""}
	assert.NoError(t, Validate(p))

	p.SocialMedia.Facebook = "facebook"
	fields := fieldsOf(t, Validate(p))
	assert.Equal(t, "must be a valid URL", fields["socialMedia.facebook"])
}

func TestValidate_Testimonials(t *testing.T) {
	p := validAgency()
	p.Testimonials = []dto.TestimonialFields{
		{Name: "Sara", Comment: "Great", Rating: 5},
		{Name: "", Comment: "Hmm", Rating: 6},
	}
	fields := fieldsOf(t, Validate(p))
	assert.Equal(t, "is required", fields["testimonials[1].name"])
	assert.Equal(t, "must be between 0 and 5", fields["testimonials[1].rating"])
	assert.NotContains(t, fields, "testimonials[0].rating")
}

func TestValidate_ProjectPriceRange(t *testing.T) {
	p := dto.ProjectPayload{
		Name:           "Skyline",
		DeveloperName:  "Zameen Dev",
		ProjectType:    "RESIDENTIAL",
		ProjectStatus:  "ONGOING",
		City:           "Karachi",
		Area:           "Clifton",
		AvailableUnits: []string{"APARTMENTS"},
		LaunchDate:     "2024-01-15",
		PriceRange:     dto.PriceRangeFields{MinPrice: "5000000", MaxPrice: "9000000"},
		Images:         []string{"https://cdn.example.com/a.jpg"},
	}
	require.NoError(t, Validate(p))

	p.PriceRange.MaxPrice = "100"
	p.LaunchDate = "15/01/2024"
	p.ProjectType = "HOTEL"
	fields := fieldsOf(t, Validate(p))
	assert.Equal(t, "must not be less than minPrice", fields["priceRange.maxPrice"])
	assert.Equal(t, "must be a date (YYYY-MM-DD)", fields["launchDate"])
	assert.Contains(t, fields["projectType"], "MIXED_USE")
}

func TestValidate_Agent(t *testing.T) {
	p := dto.AgentPayload{
		FullName:        "Ali Khan",
		AgentType:       "Independent",
		Experience:      "5 years",
		Specialization:  []string{"RESIDENTIAL"},
		PhoneNumber:     "03001234567",
		Email:           "ali@example.com",
		AreasCovered:    []string{"dha_karachi"},
		ServicesOffered: []string{"RENTAL"},
		TotalListings:   "-3",
	}
	fields := fieldsOf(t, Validate(p))
	assert.Equal(t, "must not be negative", fields["totalListings"])

	p.TotalListings = ""
	assert.NoError(t, Validate(p))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDate("2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	_, err = ParseDate("June 30")
	assert.Error(t, err)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"name": "is required", "email": "must be a valid email address"}}
	assert.Equal(t, "validation failed: email: must be a valid email address; name: is required", err.Error())
}
