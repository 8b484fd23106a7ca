package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"estate_listing_v1/internal/model"
	"estate_listing_v1/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenInMemory(model.All()...)
	require.NoError(t, err)
	return db
}

func TestUserRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(setupTestDB(t))

	require.NoError(t, repo.Upsert(ctx, &model.User{ID: "u1", Email: "old@example.com"}))
	require.NoError(t, repo.Upsert(ctx, &model.User{ID: "u1", Email: "new@example.com", Name: "Ayesha"}))

	user, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Ayesha", user.Name)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	ok, err := repo.Exists(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAgencyRepository_EmailAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewAgencyRepository(setupTestDB(t))

	agency := &model.Agency{Name: "Ace Realty", Email: "a@ace.com", UserID: "u1", OfficeAddress: "123 Main", PhoneNumber: "555-1"}
	require.NoError(t, repo.Create(ctx, agency))
	assert.NotZero(t, agency.ID)

	found, err := repo.FindByEmail(ctx, "a@ace.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, agency.ID, found.ID)

	none, err := repo.FindByEmail(ctx, "b@ace.com")
	require.NoError(t, err)
	assert.Nil(t, none)

	// 唯一索引兜底
	err = repo.Create(ctx, &model.Agency{Name: "Copy", Email: "a@ace.com", UserID: "u2"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	hit, err := repo.UpdateVerification(ctx, agency.ID, model.VerificationVerified)
	require.NoError(t, err)
	assert.True(t, hit)

	hit, err = repo.UpdateVerification(ctx, 999, model.VerificationVerified)
	require.NoError(t, err)
	assert.False(t, hit)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusCount{"VERIFIED": 1}, counts)
}

func TestListingUnitOfWork_RollsBackChildren(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	uow := NewListingUnitOfWork(db)

	boom := errors.New("boom")
	err := uow.Transaction(ctx, func(tx *ListingUnitOfWork) error {
		project := &model.Project{Name: "Skyline", DeveloperName: "Dev", UserID: "u1"}
		if err := tx.Projects.Create(ctx, project); err != nil {
			return err
		}
		if err := tx.Projects.CreateImages(ctx, []model.ProjectImage{{ProjectID: project.ID, URL: "https://x/1.jpg"}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	projects, err := uow.Projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, projects)

	var images int64
	require.NoError(t, db.Model(&model.ProjectImage{}).Count(&images).Error)
	assert.Zero(t, images)
}

func TestProjectRepository_Relations(t *testing.T) {
	ctx := context.Background()
	uow := NewListingUnitOfWork(setupTestDB(t))

	var id int64
	err := uow.Transaction(ctx, func(tx *ListingUnitOfWork) error {
		project := &model.Project{Name: "Skyline", DeveloperName: "Dev", UserID: "u1"}
		if err := tx.Projects.Create(ctx, project); err != nil {
			return err
		}
		id = project.ID
		if err := tx.Projects.CreatePriceRange(ctx, &model.PriceRange{ProjectID: id, MinPrice: 1, MaxPrice: 2}); err != nil {
			return err
		}
		if err := tx.Projects.CreateAuthorizedAgents(ctx, []model.AuthorizedAgent{{ProjectID: id, Email: "a@x.com"}}); err != nil {
			return err
		}
		return tx.Projects.CreateImages(ctx, []model.ProjectImage{
			{ProjectID: id, URL: "https://x/2.jpg", Position: 1},
			{ProjectID: id, URL: "https://x/1.jpg", Position: 0},
		})
	})
	require.NoError(t, err)

	project, err := uow.Projects.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, project)
	require.NotNil(t, project.PriceRange)
	assert.Equal(t, float64(2), project.PriceRange.MaxPrice)
	assert.Len(t, project.AuthorizedAgents, 1)
	assert.Equal(t, []string{"https://x/1.jpg", "https://x/2.jpg"}, project.ImageURLs())

	missing, err := uow.Projects.GetByID(ctx, id+1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAgentRepository_SocialLinks(t *testing.T) {
	ctx := context.Background()
	repo := NewAgentRepository(setupTestDB(t))

	fb := "https://facebook.com/ali"
	agent := &model.Agent{FullName: "Ali Khan", PhoneNumber: "03001234567", Email: "ali@x.com", UserID: "u1"}
	require.NoError(t, repo.Create(ctx, agent))
	require.NoError(t, repo.CreateSocialLinks(ctx, &model.SocialMediaLinks{AgentID: agent.ID, Facebook: &fb}))

	agents, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, agents, 1)
	require.NotNil(t, agents[0].SocialMediaLinks)
	assert.Equal(t, fb, *agents[0].SocialMediaLinks.Facebook)
	assert.Equal(t, model.VerificationPending, agents[0].ApprovalStatus)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts["PENDING"])
}
