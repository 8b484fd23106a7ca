package model

// ==================== 审核状态 ====================

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
)

var VerificationStatuses = register(newEnum("VerificationStatus", VerificationPending, VerificationVerified))

// ==================== 中介机构 ====================

type AgencyType string

const (
	AgencyResidential AgencyType = "RESIDENTIAL"
	AgencyCommercial  AgencyType = "COMMERCIAL"
	AgencyBoth        AgencyType = "BOTH"
)

var AgencyTypes = register(newEnum("AgencyType", AgencyResidential, AgencyCommercial, AgencyBoth))

type ServiceType string

const (
	ServiceBuySell    ServiceType = "BUY_SELL"
	ServiceRental     ServiceType = "RENTAL"
	ServiceInvestment ServiceType = "INVESTMENT"
	ServiceMarketing  ServiceType = "MARKETING"
)

var ServiceTypes = register(newEnum("ServiceType", ServiceBuySell, ServiceRental, ServiceInvestment, ServiceMarketing))

type PropertyType string

const (
	PropertyHome        PropertyType = "HOME"
	PropertyPlots       PropertyType = "PLOTS"
	PropertyCommercial  PropertyType = "COMMERCIAL"
	PropertyCoWorkSpace PropertyType = "CO_WORK_SPACE"
)

var PropertyTypes = register(newEnum("PropertyType", PropertyHome, PropertyPlots, PropertyCommercial, PropertyCoWorkSpace))

// PropertyDetail 细分房产类型，取值沿用线上已有数据（含 PLot_Form 拼写）
type PropertyDetail string

var PropertyDetails = register(newEnum[PropertyDetail]("PropertyDetail",
	"House", "Flat", "Upper_Portion", "Lower_Portion", "Farm_House", "Room", "Penthouse",
	"Residential_Plot", "Commercial_Plot", "Agriculture_Land", "Industrial_Land", "Plot_File", "PLot_Form",
	"Office", "Shop", "Factory", "Warehouse", "Building", "Other", "Office_Room", "Software_House",
))

type Area string

var Areas = register(newEnum[Area]("Area", "KARACHI", "LAHORE", "ISLAMABAD", "RAWALPINDI", "PESHAWAR"))

type ResponseTime string

const (
	ResponseWithinHours ResponseTime = "WITHIN_HOURS"
	ResponseSameDay     ResponseTime = "SAME_DAY"
	ResponseWithinDays  ResponseTime = "WITHIN_DAYS"
)

var ResponseTimes = register(newEnum("ResponseTime", ResponseWithinHours, ResponseSameDay, ResponseWithinDays))

// ==================== 经纪人 ====================

type Specialization string

const (
	SpecializationResidential Specialization = "RESIDENTIAL"
	SpecializationCommercial  Specialization = "COMMERCIAL"
	SpecializationPlots       Specialization = "PLOTS"
	SpecializationProjects    Specialization = "PROJECTS"
)

var Specializations = register(newEnum("Specialization",
	SpecializationResidential, SpecializationCommercial, SpecializationPlots, SpecializationProjects))

// ==================== 楼盘项目 ====================

type ProjectType string

const (
	ProjectResidential ProjectType = "RESIDENTIAL"
	ProjectCommercial  ProjectType = "COMMERCIAL"
	ProjectMixedUse    ProjectType = "MIXED_USE"
)

var ProjectTypes = register(newEnum("ProjectType", ProjectResidential, ProjectCommercial, ProjectMixedUse))

type ProjectStatus string

const (
	ProjectOngoing   ProjectStatus = "ONGOING"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectUpcoming  ProjectStatus = "UPCOMING"
)

var ProjectStatuses = register(newEnum("ProjectStatus", ProjectOngoing, ProjectCompleted, ProjectUpcoming))

type PaymentPlan string

const (
	PaymentInstallments PaymentPlan = "INSTALLMENTS"
	PaymentFull         PaymentPlan = "FULL_PAYMENT"
	PaymentBoth         PaymentPlan = "BOTH"
)

var PaymentPlans = register(newEnum("PaymentPlan", PaymentInstallments, PaymentFull, PaymentBoth))

type UnitType string

var UnitTypes = register(newEnum[UnitType]("UnitType", "APARTMENTS", "VILLAS", "PLOTS", "SHOPS", "OFFICES"))
