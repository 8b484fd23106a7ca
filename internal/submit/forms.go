package submit

import (
	"fmt"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/model"
)

const (
	agencyEndpoint  = "/api/agency"
	agentEndpoint   = "/api/agents"
	projectEndpoint = "/api/projects"
)

// single 单文件字段取第一个 URL
func single[P any](field func(p *P) *string) func(p *P, urls []string) {
	return func(p *P, urls []string) { *field(p) = urls[0] }
}

// NewAgencyForm 中介机构入驻表单
func NewAgencyForm(payload dto.AgencyPayload, deps Deps) *Form[dto.AgencyPayload] {
	f := newForm(agencyEndpoint, "Agency submitted successfully", payload, deps)

	f.asset("logo", 1, single(func(p *dto.AgencyPayload) *string { return &p.Logo }))
	f.asset("businessCertificate", 1, single(func(p *dto.AgencyPayload) *string { return &p.BusinessCertificate }))

	f.option("areasCovered", model.AreaOptions, func(p *dto.AgencyPayload) *[]string { return &p.AreasCovered })
	f.option("servicesOffered", model.ServiceOptions, func(p *dto.AgencyPayload) *[]string { return &p.ServicesOffered })
	f.option("propertyTypes", model.PropertyTypeOptions, func(p *dto.AgencyPayload) *[]string { return &p.PropertyTypes })
	f.option("propertyDetails", model.PropertyDetailOptions, func(p *dto.AgencyPayload) *[]string { return &p.PropertyDetails })
	return f
}

// NewAgentForm 经纪人入驻表单
func NewAgentForm(payload dto.AgentPayload, deps Deps) *Form[dto.AgentPayload] {
	f := newForm(agentEndpoint, "Agent registration submitted successfully", payload, deps)

	f.asset("profilePicture", 1, single(func(p *dto.AgentPayload) *string { return &p.ProfilePicture }))
	f.asset("agencyLogo", 1, single(func(p *dto.AgentPayload) *string { return &p.AgencyLogo }))
	f.asset("licenseCertificate", 1, single(func(p *dto.AgentPayload) *string { return &p.LicenseCertificate }))

	f.option("specialization", model.SpecializationOptions, func(p *dto.AgentPayload) *[]string { return &p.Specialization })
	f.option("areasCovered", model.AgentAreaOptions, func(p *dto.AgentPayload) *[]string { return &p.AreasCovered })
	f.option("servicesOffered", model.AgentServiceOptions, func(p *dto.AgentPayload) *[]string { return &p.ServicesOffered })
	return f
}

// ProjectForm 楼盘表单，图片按上传顺序追加
type ProjectForm struct {
	*Form[dto.ProjectPayload]
}

func NewProjectForm(payload dto.ProjectPayload, deps Deps) *ProjectForm {
	f := newForm(projectEndpoint, "Project submitted successfully", payload, deps)

	f.asset("images", 0, func(p *dto.ProjectPayload, urls []string) {
		p.Images = append(p.Images, urls...)
	})

	f.option("availableUnits", model.UnitTypeOptions, func(p *dto.ProjectPayload) *[]string { return &p.AvailableUnits })
	f.option("basicAmenities", model.AmenityOptions, func(p *dto.ProjectPayload) *[]string { return &p.BasicAmenities })
	f.option("luxuryFeatures", model.LuxuryFeatureOptions, func(p *dto.ProjectPayload) *[]string { return &p.LuxuryFeatures })
	f.option("governmentApprovals", model.ApprovalOptions, func(p *dto.ProjectPayload) *[]string { return &p.GovernmentApprovals })
	return &ProjectForm{Form: f}
}

// RemoveImage 移除第 i 张图片
func (f *ProjectForm) RemoveImage(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i < 0 || i >= len(f.payload.Images) {
		return fmt.Errorf("image index %d out of range (have %d)", i, len(f.payload.Images))
	}
	f.payload.Images = append(f.payload.Images[:i:i], f.payload.Images[i+1:]...)
	return nil
}
