package model

import "gorm.io/datatypes"

// SocialMedia 社交媒体链接（内嵌 JSON）
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
}

// Testimonial 客户评价
type Testimonial struct {
	Name    string  `json:"name"`
	Comment string  `json:"comment"`
	Rating  float64 `json:"rating"`
}

// Agency 房产中介机构
type Agency struct {
	BaseModel
	// 1. 基础信息
	Name            string     `gorm:"size:120;not null" json:"name"`
	Logo            *string    `gorm:"size:500" json:"logo"`
	Tagline         *string    `gorm:"size:255" json:"tagline"`
	EstablishedYear int        `gorm:"default:0" json:"establishedYear"`
	AgencyType      AgencyType `gorm:"size:20" json:"agencyType"`

	// 2. 联系方式，email 全局唯一
	OfficeAddress string                          `gorm:"size:255;not null" json:"officeAddress"`
	PhoneNumber   string                          `gorm:"size:30;not null" json:"phoneNumber"`
	Email         string                          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Website       *string                         `gorm:"size:500" json:"website"`
	SocialMedia   datatypes.JSONType[SocialMedia] `json:"socialMedia"`

	// 3. 资质
	RegistrationNumber  *string `gorm:"size:100" json:"registrationNumber"`
	License             *string `gorm:"size:100" json:"license"`
	BusinessCertificate *string `gorm:"size:500" json:"businessCertificate"`

	// 4. 业务范围
	AreasCovered    datatypes.JSONSlice[Area]           `json:"areasCovered"`
	ServicesOffered datatypes.JSONSlice[ServiceType]    `json:"servicesOffered"`
	PropertyTypes   datatypes.JSONSlice[PropertyType]   `json:"propertyTypes"`
	PropertyDetails datatypes.JSONSlice[PropertyDetail] `json:"propertyDetails"`
	TotalAgents     int                                 `gorm:"default:0" json:"totalAgents"`
	TotalListings   int                                 `gorm:"default:0" json:"totalListings"`
	Exclusive       bool                                `gorm:"default:false" json:"exclusive"`
	ListingLink     *string                             `gorm:"size:500" json:"listingLink"`

	// 5. 口碑
	Testimonials  datatypes.JSONSlice[Testimonial] `json:"testimonials"`
	OverallRating float64                          `gorm:"default:0" json:"overallRating"`
	ResponseTime  ResponseTime                     `gorm:"size:20" json:"responseTime"`

	// 6. 审核与归属
	VerificationStatus VerificationStatus `gorm:"size:20;default:'PENDING';index" json:"verificationStatus"`
	UserID             string             `gorm:"size:64;index;not null" json:"userId"`
	// 最近一次审核操作人，由审计回调写入
	ReviewedBy *string `gorm:"size:64" json:"reviewedBy"`
}

func (Agency) TableName() string {
	return "agencies"
}
