package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"estate_listing_v1/internal/model"
)

const cardWidth = 44

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginBottom(1)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Margin(0, 1, 1, 0).
			Width(cardWidth)
	nameStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	verifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	skeletonLine  = strings.Repeat("░", cardWidth-4)
)

// Skeleton 加载占位卡片
func Skeleton() string {
	return cardStyle.Render(strings.Join([]string{
		skeletonLine,
		strings.Repeat("░", cardWidth/2),
		strings.Repeat("░", cardWidth/3),
	}, "\n"))
}

func badge(status model.VerificationStatus) string {
	if status == model.VerificationVerified {
		return verifiedStyle.Render("✔ Verified")
	}
	return pendingStyle.Render("… Pending")
}

// labels 把目录 ID 转为展示文案
func labels[T ~string](catalog model.Catalog, ids []T) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = catalog.Label(string(id))
	}
	return strings.Join(out, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func rating(r float64) string {
	if r <= 0 {
		return "No ratings yet"
	}
	return fmt.Sprintf("★ %.1f / 5", r)
}

// card 组装卡片：标题行 + 非空行
func card(name, status string, lines ...string) string {
	body := []string{nameStyle.Render(name) + "  " + status}
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			body = append(body, l)
		}
	}
	return cardStyle.Render(strings.Join(body, "\n"))
}

// ==================== 卡片 ====================

func AgencyCard(a model.Agency) string {
	return card(a.Name, badge(a.VerificationStatus),
		mutedStyle.Render(deref(a.Tagline)),
		"Areas: "+labels(model.AreaOptions, a.AreasCovered),
		"Services: "+labels(model.ServiceOptions, a.ServicesOffered),
		fmt.Sprintf("Agents: %d  Listings: %d", a.TotalAgents, a.TotalListings),
		rating(a.OverallRating),
		mutedStyle.Render(a.PhoneNumber+" · "+a.Email),
	)
}

func AgentCard(a model.Agent) string {
	agency := deref(a.AgencyName)
	if agency == "" {
		agency = "Independent"
	}
	return card(a.FullName, badge(a.ApprovalStatus),
		mutedStyle.Render(a.AgentType+" · "+a.Experience+" · "+agency),
		"Specialization: "+labels(model.SpecializationOptions, a.Specialization),
		"Areas: "+labels(model.AgentAreaOptions, a.AreasCovered),
		fmt.Sprintf("Listings: %d", a.TotalListings),
		rating(a.OverallRating),
		mutedStyle.Render(a.PhoneNumber+" · "+a.Email),
	)
}

func ProjectCard(p model.Project) string {
	price := ""
	if p.PriceRange != nil {
		price = fmt.Sprintf("PKR %s - %s", money(p.PriceRange.MinPrice), money(p.PriceRange.MaxPrice))
	}
	return card(p.Name, badge(p.VerificationStatus),
		mutedStyle.Render("by "+p.DeveloperName),
		fmt.Sprintf("%s · %s", p.Area, p.City),
		fmt.Sprintf("%s · %s", model.ProjectTypes.Label(p.ProjectType), model.ProjectStatuses.Label(p.ProjectStatus)),
		"Units: "+labels(model.UnitTypeOptions, p.AvailableUnits),
		price,
		fmt.Sprintf("%d image(s)", len(p.Images)),
	)
}

// money 千分位格式
func money(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// ==================== 详情 ====================

// fields 详情页的键值对
type fields [][2]string

func (f fields) render(title, status string) string {
	rows := []string{nameStyle.Render(title) + "  " + status}
	for _, kv := range f {
		if strings.TrimSpace(kv[1]) == "" {
			continue
		}
		rows = append(rows, mutedStyle.Render(fmt.Sprintf("%-18s", kv[0]))+kv[1])
	}
	return cardStyle.Width(cardWidth * 2).Render(strings.Join(rows, "\n"))
}

func AgencyDetail(a model.Agency) string {
	social := a.SocialMedia.Data()
	return fields{
		{"ID", fmt.Sprint(a.ID)},
		{"Tagline", deref(a.Tagline)},
		{"Type", model.AgencyTypes.Label(a.AgencyType)},
		{"Established", nonZero(a.EstablishedYear)},
		{"Office", a.OfficeAddress},
		{"Phone", a.PhoneNumber},
		{"Email", a.Email},
		{"Website", deref(a.Website)},
		{"Facebook", social.Facebook},
		{"Instagram", social.Instagram},
		{"LinkedIn", social.LinkedIn},
		{"Areas", labels(model.AreaOptions, a.AreasCovered)},
		{"Services", labels(model.ServiceOptions, a.ServicesOffered)},
		{"Property types", labels(model.PropertyTypeOptions, a.PropertyTypes)},
		{"Property details", labels(model.PropertyDetailOptions, a.PropertyDetails)},
		{"Agents", fmt.Sprint(a.TotalAgents)},
		{"Listings", fmt.Sprint(a.TotalListings)},
		{"Response time", model.ResponseTimes.Label(a.ResponseTime)},
		{"Rating", rating(a.OverallRating)},
		{"Testimonials", fmt.Sprint(len(a.Testimonials))},
		{"Owner", a.UserID},
	}.render(a.Name, badge(a.VerificationStatus))
}

func AgentDetail(a model.Agent) string {
	f := fields{
		{"ID", fmt.Sprint(a.ID)},
		{"Type", a.AgentType},
		{"Experience", a.Experience},
		{"Specialization", labels(model.SpecializationOptions, a.Specialization)},
		{"Phone", a.PhoneNumber},
		{"Email", a.Email},
		{"Office", deref(a.OfficeAddress)},
		{"Agency", deref(a.AgencyName)},
		{"Areas", labels(model.AgentAreaOptions, a.AreasCovered)},
		{"Services", labels(model.AgentServiceOptions, a.ServicesOffered)},
		{"Listings", fmt.Sprint(a.TotalListings)},
		{"Rating", rating(a.OverallRating)},
		{"CNIC verified", fmt.Sprint(a.CnicVerification)},
	}
	if s := a.SocialMediaLinks; s != nil {
		f = append(f, fields{{"Facebook", deref(s.Facebook)}, {"Instagram", deref(s.Instagram)}, {"LinkedIn", deref(s.LinkedIn)}}...)
	}
	for i, t := range a.Testimonials {
		f = append(f, [2]string{fmt.Sprintf("Testimonial %d", i+1), t})
	}
	f = append(f, [2]string{"Owner", a.UserID})
	return f.render(a.FullName, badge(a.ApprovalStatus))
}

func ProjectDetail(p model.Project) string {
	f := fields{
		{"ID", fmt.Sprint(p.ID)},
		{"Developer", p.DeveloperName},
		{"Type", model.ProjectTypes.Label(p.ProjectType)},
		{"Status", model.ProjectStatuses.Label(p.ProjectStatus)},
		{"Launch", date(p.LaunchDate)},
		{"Completion", date(p.ExpectedCompletion)},
		{"Location", p.Area + ", " + p.City},
		{"Map", p.GoogleMapsLink},
		{"Units", labels(model.UnitTypeOptions, p.AvailableUnits)},
		{"Payment plan", model.PaymentPlans.Label(p.PaymentPlan)},
		{"Amenities", strings.Join(p.BasicAmenities, ", ")},
		{"Luxury", strings.Join(p.LuxuryFeatures, ", ")},
		{"Nearby", strings.Join(p.NearbyFacilities, ", ")},
		{"Approvals", strings.Join(p.GovernmentApprovals, ", ")},
		{"Developer phone", p.DeveloperPhone},
	}
	if p.PriceRange != nil {
		f = append(f, [2]string{"Price", fmt.Sprintf("PKR %s - %s", money(p.PriceRange.MinPrice), money(p.PriceRange.MaxPrice))})
	}
	for _, a := range p.AuthorizedAgents {
		f = append(f, [2]string{"Authorized agent", strings.TrimSpace(a.Email + " " + a.Phone)})
	}
	for i, u := range p.ImageURLs() {
		f = append(f, [2]string{fmt.Sprintf("Image %d", i+1), u})
	}
	f = append(f, [2]string{"Owner", p.UserID})
	return f.render(p.Name, badge(p.VerificationStatus))
}

func nonZero(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

func date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("Jan 2006")
}
