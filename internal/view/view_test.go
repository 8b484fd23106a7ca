package view

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/datatypes"

	"estate_listing_v1/internal/model"
)

func sampleAgencies() []model.Agency {
	tagline := "Homes that fit"
	return []model.Agency{
		{
			BaseModel:          model.BaseModel{ID: 1},
			Name:               "Ace Realty",
			Tagline:            &tagline,
			PhoneNumber:        "555-1",
			Email:              "a@ace.com",
			AreasCovered:       datatypes.JSONSlice[model.Area]{"KARACHI", "LAHORE"},
			ServicesOffered:    datatypes.JSONSlice[model.ServiceType]{model.ServiceBuySell},
			TotalAgents:        2,
			TotalListings:      5,
			VerificationStatus: model.VerificationPending,
		},
		{
			BaseModel:          model.BaseModel{ID: 2},
			Name:               "Skyline Estates",
			Email:              "info@skyline.pk",
			OverallRating:      4.5,
			VerificationStatus: model.VerificationVerified,
		},
	}
}

func TestListView_LoadingRendersSkeletons(t *testing.T) {
	v := NewListView("Agencies", func(ctx context.Context) ([]model.Agency, error) {
		return nil, nil
	}, AgencyCard, zap.NewNop())

	assert.Equal(t, StateLoading, v.State())
	out := v.Render()
	assert.Contains(t, out, "Agencies")
	assert.Equal(t, SkeletonCount, strings.Count(out, skeletonLine))
}

func TestListView_SuccessRendersOneCardPerRecord(t *testing.T) {
	want := sampleAgencies()
	v := NewListView("Agencies", func(ctx context.Context) ([]model.Agency, error) {
		return want, nil
	}, AgencyCard, zap.NewNop())

	v.Load(context.Background())
	require.Equal(t, StateSuccess, v.State())
	if diff := cmp.Diff(want, v.Items(), cmpopts.IgnoreUnexported(datatypes.JSONType[model.SocialMedia]{})); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	out := v.Render()
	assert.Contains(t, out, "Ace Realty")
	assert.Contains(t, out, "Skyline Estates")
	assert.Contains(t, out, "Karachi, Lahore")
	assert.Contains(t, out, "★ 4.5 / 5")
	assert.NotContains(t, out, skeletonLine)
}

func TestListView_ErrorLogsAndRendersEmpty(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	v := NewListView("Projects", func(ctx context.Context) ([]model.Project, error) {
		return nil, errors.New("connection refused")
	}, ProjectCard, zap.New(core))

	v.Load(context.Background())
	assert.Equal(t, StateError, v.State())
	assert.Empty(t, v.Items())
	assert.EqualError(t, v.Err(), "connection refused")

	entries := logs.FilterMessage("failed to load listings").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Projects", entries[0].ContextMap()["view"])

	out := v.Render()
	assert.Contains(t, out, "Projects")
	assert.NotContains(t, out, skeletonLine)
}

func TestListView_LoadRunsOnce(t *testing.T) {
	var calls atomic.Int32
	v := NewListView("Agents", func(ctx context.Context) ([]model.Agent, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("boom")
		}
		return []model.Agent{{FullName: "Sara Khan"}}, nil
	}, AgentCard, nil)

	v.Load(context.Background())
	v.Load(context.Background())
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateError, v.State())
}

func TestGrid(t *testing.T) {
	assert.Equal(t, "", grid(nil, 2))
	assert.Equal(t, "a\nb", grid([]string{"a", "b"}, 1))
	assert.Equal(t, "ab\nc", grid([]string{"a", "b", "c"}, 2))
}

func TestDetailView(t *testing.T) {
	lo, hi := 1500000.0, 32000000.0
	project := &model.Project{
		BaseModel:      model.BaseModel{ID: 7},
		Name:           "Skyline Towers",
		DeveloperName:  "Skyline Developers",
		ProjectType:    model.ProjectMixedUse,
		City:           "Lahore",
		Area:           "Gulberg",
		PriceRange:     &model.PriceRange{MinPrice: lo, MaxPrice: hi},
		Images:         []model.ProjectImage{{URL: "https://cdn/1.png"}, {URL: "https://cdn/2.png"}},
		AvailableUnits: datatypes.JSONSlice[model.UnitType]{"APARTMENTS", "SHOPS"},
	}

	v := NewDetailView("Project", func(ctx context.Context) (*model.Project, error) {
		return project, nil
	}, ProjectDetail, zap.NewNop())
	assert.Equal(t, StateLoading, v.State())

	v.Load(context.Background())
	require.Equal(t, StateSuccess, v.State())
	if diff := cmp.Diff(project, v.Item()); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}

	out := v.Render()
	assert.Contains(t, out, "Mixed Use")
	assert.Contains(t, out, "PKR 1,500,000 - 32,000,000")
	assert.Contains(t, out, "Apartments, Shops")
	assert.Less(t, strings.Index(out, "https://cdn/1.png"), strings.Index(out, "https://cdn/2.png"))
}

func TestDetailView_Error(t *testing.T) {
	v := NewDetailView("Agent", func(ctx context.Context) (*model.Agent, error) {
		return nil, errors.New("listing not found")
	}, AgentDetail, nil)

	v.Load(context.Background())
	assert.Equal(t, StateError, v.State())
	assert.Nil(t, v.Item())
	assert.Contains(t, v.Render(), "Listing unavailable")
}

func TestMoney(t *testing.T) {
	for in, want := range map[float64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -2500: "-2,500"} {
		assert.Equal(t, want, money(in), "money(%v)", in)
	}
}

func TestAgentCard_Independent(t *testing.T) {
	out := AgentCard(model.Agent{
		FullName:       "Sara Khan",
		AgentType:      "Individual",
		Experience:     "5 years",
		Specialization: datatypes.JSONSlice[model.Specialization]{"RESIDENTIAL"},
		AreasCovered:   datatypes.JSONSlice[string]{"clifton"},
		ApprovalStatus: model.VerificationVerified,
	})
	assert.Contains(t, out, "Independent")
	assert.Contains(t, out, "Clifton")
	assert.Contains(t, out, "Verified")
}
