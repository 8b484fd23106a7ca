package model

// Option 多选项目录中的一项
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Catalog 固定的多选项目录（表单勾选用）
type Catalog []Option

// Has 是否为目录中的选项
func (c Catalog) Has(id string) bool {
	for _, o := range c {
		if o.ID == id {
			return true
		}
	}
	return false
}

// IDs 选项 ID 列表（保持目录顺序）
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, o := range c {
		ids[i] = o.ID
	}
	return ids
}

// Label 根据 ID 取展示文案，未知 ID 原样返回
func (c Catalog) Label(id string) string {
	for _, o := range c {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

var (
	AreaOptions = Catalog{
		{"KARACHI", "Karachi"}, {"LAHORE", "Lahore"}, {"ISLAMABAD", "Islamabad"},
		{"RAWALPINDI", "Rawalpindi"}, {"PESHAWAR", "Peshawar"},
	}

	ServiceOptions = Catalog{
		{"BUY_SELL", "Buy/Sell"}, {"RENTAL", "Rental"}, {"INVESTMENT", "Investment"}, {"MARKETING", "Marketing"},
	}

	PropertyTypeOptions = Catalog{
		{"HOME", "Home"}, {"PLOTS", "Plots"}, {"COMMERCIAL", "Commercial"}, {"CO_WORK_SPACE", "Co-working Space"},
	}

	PropertyDetailOptions = Catalog{
		{"House", "House"}, {"Flat", "Flat"}, {"Upper_Portion", "Upper Portion"}, {"Lower_Portion", "Lower Portion"},
		{"Farm_House", "Farm House"}, {"Room", "Room"}, {"Penthouse", "Penthouse"},
		{"Residential_Plot", "Residential Plot"}, {"Commercial_Plot", "Commercial Plot"},
		{"Agriculture_Land", "Agriculture Land"}, {"Industrial_Land", "Industrial Land"},
		{"Plot_File", "Plot File"}, {"PLot_Form", "Plot Form"}, {"Office", "Office"}, {"Shop", "Shop"},
		{"Factory", "Factory"}, {"Warehouse", "Warehouse"}, {"Building", "Building"}, {"Other", "Other"},
		{"Office_Room", "Office Room"}, {"Software_House", "Software House"},
	}

	SpecializationOptions = Catalog{
		{"RESIDENTIAL", "Residential"}, {"COMMERCIAL", "Commercial"}, {"PLOTS", "Plots"}, {"PROJECTS", "Projects"},
	}

	// AgentAreaOptions 经纪人服务片区（自由字符串，不做枚举约束）
	AgentAreaOptions = Catalog{
		{"dha_karachi", "DHA Karachi"}, {"bahria_town", "Bahria Town"}, {"gulshan", "Gulshan"},
		{"clifton", "Clifton"}, {"johar", "Johar"}, {"model_town", "Model Town"},
	}

	AgentServiceOptions = Catalog{
		{"BUY_SELL", "Buying & Selling Assistance"}, {"RENTAL", "Rental Services"},
		{"INVESTMENT", "Investment Consultation"}, {"MARKETING", "Project Marketing"},
	}

	UnitTypeOptions = Catalog{
		{"APARTMENTS", "Apartments"}, {"VILLAS", "Villas"}, {"PLOTS", "Plots"}, {"SHOPS", "Shops"}, {"OFFICES", "Offices"},
	}

	AmenityOptions = Catalog{
		{"24/7 Security", "24/7 Security"}, {"Underground Electricity", "Underground Electricity"},
		{"Water Filtration Plant", "Water Filtration Plant"}, {"Sewerage System", "Sewerage System"},
		{"Waste Management", "Waste Management"},
	}

	LuxuryFeatureOptions = Catalog{
		{"Olympic-size Swimming Pool", "Swimming Pool"}, {"State-of-the-art Gym", "Gym"},
		{"Community Clubhouse", "Community Center"}, {"Landscaped Parks", "Parks"},
		{"Jogging Tracks", "Jogging Tracks"}, {"Children's Play Area", "Children's Play Area"},
	}

	ApprovalOptions = Catalog{
		{"LDA Approved", "LDA Approved"}, {"RERA Registered", "RERA Registered"},
		{"Environmental Clearance", "Environmental Clearance"},
	}
)
