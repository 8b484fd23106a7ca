package dto

// Request DTO（表单组装并校验后提交的 payload）
// 校验规则写在 validate 标签里，由 internal/schema 统一执行
// enum=<名称> 对应 model.Enums 中的封闭取值集合

// ==================== 中介机构 ====================

// AgencyPayload 中介机构入驻
type AgencyPayload struct {
	ID string `json:"id,omitempty"` // 归属用户 ID

	Name            string  `json:"name" validate:"required,min=3"`
	Tagline         string  `json:"tagline,omitempty"`
	EstablishedYear Numeric `json:"establishedYear,omitempty" validate:"omitempty,number,integer"`
	AgencyType      string  `json:"agencyType,omitempty" validate:"omitempty,enum=AgencyType"`

	OfficeAddress string   `json:"officeAddress" validate:"required,min=5"`
	AreasCovered  []string `json:"areasCovered" validate:"min=1,dive,enum=Area"`

	PhoneNumber string            `json:"phoneNumber" validate:"required,min=5"`
	Email       string            `json:"email" validate:"required,email"`
	Website     string            `json:"website,omitempty" validate:"omitempty,url"`
	SocialMedia SocialMediaFields `json:"socialMedia"`

	RegistrationNumber string   `json:"registrationNumber,omitempty"`
	License            string   `json:"license,omitempty"`
	TotalAgents        Numeric  `json:"totalAgents,omitempty" validate:"omitempty,number,integer"`
	ServicesOffered    []string `json:"servicesOffered" validate:"min=1,dive,enum=ServiceType"`
	TotalListings      Numeric  `json:"totalListings,omitempty" validate:"omitempty,number,integer"`
	PropertyTypes      []string `json:"propertyTypes" validate:"min=1,dive,enum=PropertyType"`
	PropertyDetails    []string `json:"propertyDetails" validate:"min=1,dive,enum=PropertyDetail"`
	Exclusive          bool     `json:"exclusive"`
	ListingLink        string   `json:"listingLink,omitempty" validate:"omitempty,url"`

	ResponseTime  string  `json:"responseTime,omitempty" validate:"omitempty,enum=ResponseTime"`
	OverallRating Numeric `json:"overallRating,omitempty" validate:"omitempty,rating"`

	// 上传组件返回的公开地址
	Logo                string `json:"logo,omitempty" validate:"omitempty,url"`
	BusinessCertificate string `json:"businessCertificate,omitempty" validate:"omitempty,url"`

	Testimonials       []TestimonialFields `json:"testimonials,omitempty" validate:"dive"`
	VerificationStatus string              `json:"verificationStatus,omitempty" validate:"omitempty,enum=VerificationStatus"`
}

type SocialMediaFields struct {
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

type TestimonialFields struct {
	Name    string  `json:"name" validate:"required"`
	Comment string  `json:"comment" validate:"required"`
	Rating  float64 `json:"rating" validate:"rating"`
}

// ==================== 经纪人 ====================

// AgentPayload 经纪人入驻
type AgentPayload struct {
	ID string `json:"id,omitempty"`

	FullName       string   `json:"fullName" validate:"required,min=3"`
	ProfilePicture string   `json:"profilePicture,omitempty" validate:"omitempty,url"`
	AgentType      string   `json:"agentType" validate:"required"`
	Experience     string   `json:"experience" validate:"required"`
	Specialization []string `json:"specialization" validate:"min=1,dive,enum=Specialization"`

	PhoneNumber   string `json:"phoneNumber" validate:"required,min=10"`
	Email         string `json:"email" validate:"required,email"`
	OfficeAddress string `json:"officeAddress,omitempty"`

	// 社交链接（平铺），服务端落到独立的 social_media_links 表
	Facebook  string `json:"facebook,omitempty" validate:"omitempty,url"`
	Instagram string `json:"instagram,omitempty" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" validate:"omitempty,url"`

	AgencyName      string   `json:"agencyName,omitempty"`
	AgencyLogo      string   `json:"agencyLogo,omitempty" validate:"omitempty,url"`
	AgencyRegNumber string   `json:"agencyRegNumber,omitempty"`
	AreasCovered    []string `json:"areasCovered" validate:"min=1"`

	ServicesOffered []string `json:"servicesOffered" validate:"min=1,dive,enum=ServiceType"`

	TotalListings Numeric `json:"totalListings,omitempty" validate:"omitempty,number,integer,nonnegative"`
	ListingLink   string  `json:"listingLink,omitempty" validate:"omitempty,url"`
	Testimonials  Lines   `json:"testimonials,omitempty"`
	OverallRating Numeric `json:"overallRating,omitempty" validate:"omitempty,rating"`
	ResponseTime  string  `json:"responseTime,omitempty"`

	CnicVerification   bool   `json:"cnicVerification"`
	LicenseCertificate string `json:"licenseCertificate,omitempty" validate:"omitempty,url"`
}

// ==================== 楼盘项目 ====================

// ProjectPayload 楼盘项目发布
type ProjectPayload struct {
	ID string `json:"id,omitempty"`

	Name               string `json:"name" validate:"required,min=3"`
	DeveloperName      string `json:"developerName" validate:"required,min=3"`
	ProjectType        string `json:"projectType" validate:"required,enum=ProjectType"`
	ProjectStatus      string `json:"projectStatus" validate:"required,enum=ProjectStatus"`
	LaunchDate         string `json:"launchDate,omitempty" validate:"omitempty,date"`
	ExpectedCompletion string `json:"expectedCompletion,omitempty" validate:"omitempty,date"`

	City            string `json:"city" validate:"required,min=2"`
	Area            string `json:"area" validate:"required,min=2"`
	GoogleMapsLink  string `json:"googleMapsLink,omitempty" validate:"omitempty,url"`
	NearbyLandmarks string `json:"nearbyLandmarks,omitempty"`

	AvailableUnits   []string         `json:"availableUnits" validate:"min=1,dive,enum=UnitType"`
	SizesAndLayouts  string           `json:"sizesAndLayouts,omitempty"`
	PriceRange       PriceRangeFields `json:"priceRange"`
	PaymentPlan      string           `json:"paymentPlan,omitempty" validate:"omitempty,enum=PaymentPlan"`
	BasicAmenities   []string         `json:"basicAmenities,omitempty"`
	LuxuryFeatures   []string         `json:"luxuryFeatures,omitempty"`
	NearbyFacilities Lines            `json:"nearbyFacilities,omitempty"`

	GovernmentApprovals []string                `json:"governmentApprovals,omitempty"`
	RegistrationDetails string                  `json:"registrationDetails,omitempty"`
	DeveloperPhone      string                  `json:"developerPhone,omitempty"`
	AuthorizedAgents    []AuthorizedAgentFields `json:"authorizedAgents,omitempty" validate:"dive"`
	BookingProcedure    string                  `json:"bookingProcedure,omitempty"`

	// 上传组件返回的图片地址，顺序即展示顺序
	Images []string `json:"images,omitempty" validate:"dive,url"`
}

type PriceRangeFields struct {
	MinPrice Numeric `json:"minPrice" validate:"omitempty,number,nonnegative"`
	MaxPrice Numeric `json:"maxPrice" validate:"omitempty,number,nonnegative"`
}

type AuthorizedAgentFields struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// ==================== 通用 ====================

// UserPayload 外部认证回调同步用户
type UserPayload struct {
	ID    string `json:"id" validate:"required,max=64"`
	Email string `json:"email" validate:"omitempty,email"`
	Name  string `json:"name" validate:"omitempty,max=100"`
}

// VerificationReq 审核状态变更
type VerificationReq struct {
	Status string `json:"status" validate:"required,enum=VerificationStatus"`
}

// ==================== 响应 DTO ====================

// ErrorResp 统一错误响应
type ErrorResp struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// UploadResp 上传结果，顺序与请求中的文件一致
type UploadResp struct {
	URLs []string `json:"urls"`
}

// VerificationReport 各类提交的审核状态统计
type VerificationReport struct {
	Agencies map[string]int64 `json:"agencies"`
	Agents   map[string]int64 `json:"agents"`
	Projects map[string]int64 `json:"projects"`
}
