package model

import (
	"time"

	"gorm.io/datatypes"
)

// Project 楼盘项目
type Project struct {
	BaseModel
	// 1. 基础信息
	Name               string        `gorm:"size:120;not null" json:"name"`
	DeveloperName      string        `gorm:"size:120;not null" json:"developerName"`
	ProjectType        ProjectType   `gorm:"size:20" json:"projectType"`
	ProjectStatus      ProjectStatus `gorm:"size:20;index" json:"projectStatus"`
	LaunchDate         *time.Time    `json:"launchDate"`
	ExpectedCompletion *time.Time    `json:"expectedCompletion"`

	// 2. 位置
	City            string `gorm:"size:100;index" json:"city"`
	Area            string `gorm:"size:100" json:"area"`
	GoogleMapsLink  string `gorm:"size:500" json:"googleMapsLink"`
	NearbyLandmarks string `gorm:"type:text" json:"nearbyLandmarks"`

	// 3. 户型与付款
	AvailableUnits  datatypes.JSONSlice[UnitType] `json:"availableUnits"`
	SizesAndLayouts string                        `gorm:"type:text" json:"sizesAndLayouts"`
	PaymentPlan     PaymentPlan                   `gorm:"size:20" json:"paymentPlan"`

	// 4. 配套
	BasicAmenities   datatypes.JSONSlice[string] `json:"basicAmenities"`
	LuxuryFeatures   datatypes.JSONSlice[string] `json:"luxuryFeatures"`
	NearbyFacilities datatypes.JSONSlice[string] `json:"nearbyFacilities"`

	// 5. 法务与联系
	GovernmentApprovals datatypes.JSONSlice[string] `json:"governmentApprovals"`
	RegistrationDetails string                      `gorm:"type:text" json:"registrationDetails"`
	DeveloperPhone      string                      `gorm:"size:30" json:"developerPhone"`
	BookingProcedure    string                      `gorm:"type:text" json:"bookingProcedure"`

	VerificationStatus VerificationStatus `gorm:"size:20;default:'PENDING';index" json:"verificationStatus"`
	UserID             string             `gorm:"size:64;index;not null" json:"userId"`
	// 最近一次审核操作人，由审计回调写入
	ReviewedBy *string `gorm:"size:64" json:"reviewedBy"`

	// 关联关系
	PriceRange       *PriceRange       `gorm:"foreignKey:ProjectID" json:"priceRange"`
	AuthorizedAgents []AuthorizedAgent `gorm:"foreignKey:ProjectID" json:"authorizedAgents"`
	Images           []ProjectImage    `gorm:"foreignKey:ProjectID" json:"images"`
}

func (Project) TableName() string {
	return "projects"
}

// PriceRange 价格区间，一对一
type PriceRange struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64   `gorm:"uniqueIndex;not null" json:"projectId"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
}

func (PriceRange) TableName() string {
	return "project_price_ranges"
}

// AuthorizedAgent 项目授权代理
type AuthorizedAgent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID int64  `gorm:"index;not null" json:"projectId"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:30" json:"phone"`
}

func (AuthorizedAgent) TableName() string {
	return "project_authorized_agents"
}

// ProjectImage 项目图片，Position 保留上传顺序
type ProjectImage struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID   int64  `gorm:"index;not null" json:"projectId"`
	URL         string `gorm:"size:500;not null" json:"url"`
	Description string `gorm:"size:255" json:"description"`
	Position    int    `gorm:"default:0" json:"position"`
}

func (ProjectImage) TableName() string {
	return "project_images"
}

// ImageURLs 按顺序返回图片地址
func (p *Project) ImageURLs() []string {
	urls := make([]string, len(p.Images))
	for i, img := range p.Images {
		urls[i] = img.URL
	}
	return urls
}
