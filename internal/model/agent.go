package model

import "gorm.io/datatypes"

// Agent 个人经纪人
type Agent struct {
	BaseModel
	FullName       string                              `gorm:"size:120;not null" json:"fullName"`
	ProfilePicture *string                             `gorm:"size:500" json:"profilePicture"`
	AgentType      string                              `gorm:"size:50" json:"agentType"`
	Experience     string                              `gorm:"size:50" json:"experience"`
	Specialization datatypes.JSONSlice[Specialization] `json:"specialization"`

	PhoneNumber   string  `gorm:"size:30;not null" json:"phoneNumber"`
	Email         string  `gorm:"size:100;index;not null" json:"email"`
	OfficeAddress *string `gorm:"size:255" json:"officeAddress"`

	// 所属机构（自由填写，不与 Agency 表关联）
	AgencyName      *string `gorm:"size:120" json:"agencyName"`
	AgencyLogo      *string `gorm:"size:500" json:"agencyLogo"`
	AgencyRegNumber *string `gorm:"size:100" json:"agencyRegNumber"`

	AreasCovered    datatypes.JSONSlice[string]      `json:"areasCovered"`
	ServicesOffered datatypes.JSONSlice[ServiceType] `json:"servicesOffered"`
	TotalListings   int                              `gorm:"default:0" json:"totalListings"`
	ListingLink     *string                          `gorm:"size:500" json:"listingLink"`
	Testimonials    datatypes.JSONSlice[string]      `json:"testimonials"`
	OverallRating   float64                          `gorm:"default:0" json:"overallRating"`
	ResponseTime    string                           `gorm:"size:50" json:"responseTime"`

	CnicVerification   bool               `gorm:"default:false" json:"cnicVerification"`
	LicenseCertificate *string            `gorm:"size:500" json:"licenseCertificate"`
	ApprovalStatus     VerificationStatus `gorm:"size:20;default:'PENDING';index" json:"approvalStatus"`
	UserID             string             `gorm:"size:64;index;not null" json:"userId"`
	// 最近一次审核操作人，由审计回调写入
	ReviewedBy *string `gorm:"size:64" json:"reviewedBy"`

	// 一对一：社交媒体链接单独成表
	SocialMediaLinks *SocialMediaLinks `gorm:"foreignKey:AgentID" json:"socialMediaLinks"`
}

func (Agent) TableName() string {
	return "agents"
}

// SocialMediaLinks 经纪人社交媒体链接
type SocialMediaLinks struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	AgentID   int64   `gorm:"uniqueIndex;not null" json:"agentId"`
	Facebook  *string `gorm:"size:500" json:"facebook"`
	Instagram *string `gorm:"size:500" json:"instagram"`
	LinkedIn  *string `gorm:"size:500" json:"linkedin"`
}

func (SocialMediaLinks) TableName() string {
	return "social_media_links"
}
