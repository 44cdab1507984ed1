package domain

import "slices"

// Field identifies one enumerated configuration field.
type Field string

const (
	FieldRole         Field = "role"
	FieldSeniority    Field = "seniority"
	FieldCompanyType  Field = "company_type"
	FieldIndustry     Field = "industry"
	FieldSurface      Field = "surface"
	FieldFocusArea    Field = "focus_area"
	FieldProjectScope Field = "project_scope"
)

// Fields lists every required field in form order.
var Fields = []Field{
	FieldRole,
	FieldSeniority,
	FieldIndustry,
	FieldCompanyType,
	FieldSurface,
	FieldFocusArea,
	FieldProjectScope,
}

const (
	RoleProductDesigner  = "Product Designer"
	RoleUXResearcher     = "UX Researcher"
	RoleProductManager   = "Product Manager"
	RoleFullStackProduct = "Full-stack Product Thinker"
)

const (
	SeniorityIntern   = "Intern / Student"
	SeniorityJunior   = "Junior"
	SeniorityMidLevel = "Mid-level"
	SenioritySenior   = "Senior"
	SeniorityStaff    = "Staff / Lead"
)

const (
	CompanyEarlyStage  = "Early-stage startup (Seed/Series A)"
	CompanyGrowthStage = "Growth-stage startup (Series B-D)"
	CompanyPublicTech  = "Public tech company (FAANG-like)"
	CompanyEnterprise  = "Enterprise / B2B SaaS"
	CompanyRegulated   = "Regulated industry (Fintech, Health, Gov)"
)

const (
	IndustryFintech        = "Fintech"
	IndustryHealthcare     = "Healthcare"
	IndustryAIML           = "AI / ML"
	IndustryConsumerSocial = "Consumer Social"
	IndustryMarketplace    = "Marketplace"
	IndustryDevTools       = "Dev Tools"
	IndustryClimate        = "Climate Tech"
	IndustryEducation      = "EdTech"
	IndustryMedia          = "Media & Entertainment"
)

const (
	SurfaceConsumerApp   = "Consumer App (Mobile/Web)"
	SurfaceInternalAdmin = "Internal Admin Tool"
	SurfaceDashboard     = "Data Dashboard / Analytics"
	SurfaceMobileFirst   = "Mobile-first Experience"
	SurfaceDesktopFirst  = "Desktop-first / Pro Workflow"
	SurfaceAPIFirst      = "API / Platform Product"
)

const (
	FocusNewFeature    = "0 -> 1 New Feature"
	FocusGrowth        = "Growth / Optimization"
	FocusRetention     = "Retention / Churn Reduction"
	FocusMonetization  = "Monetization / Pricing"
	FocusTrustSafety   = "Trust & Safety"
	FocusDesignSystem  = "Design Systems / Ops"
	FocusAccessibility = "Accessibility / Inclusion"
)

const (
	ScopeWhiteboard = "Whiteboard Challenge (45 mins)"
	ScopeTakeHome   = "Take-home Assignment (1 week)"
	ScopeQuarterly  = "Quarterly Strategy (3 months)"
	ScopeVision     = "Long-term Vision (1-2 years)"
)

// FieldSpec describes how one field is presented and which values it accepts.
type FieldSpec struct {
	Key         Field    `json:"key"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder"`
	Options     []string `json:"options"`
}

var specs = map[Field]FieldSpec{
	FieldRole: {
		Key: FieldRole, Label: "Role", Placeholder: "e.g. Product Designer",
		Options: []string{RoleProductDesigner, RoleUXResearcher, RoleProductManager, RoleFullStackProduct},
	},
	FieldSeniority: {
		Key: FieldSeniority, Label: "Seniority", Placeholder: "e.g. Senior",
		Options: []string{SeniorityIntern, SeniorityJunior, SeniorityMidLevel, SenioritySenior, SeniorityStaff},
	},
	FieldCompanyType: {
		Key: FieldCompanyType, Label: "Company Type", Placeholder: "e.g. Growth-stage",
		Options: []string{CompanyEarlyStage, CompanyGrowthStage, CompanyPublicTech, CompanyEnterprise, CompanyRegulated},
	},
	FieldIndustry: {
		Key: FieldIndustry, Label: "Industry", Placeholder: "e.g. Fintech",
		Options: []string{
			IndustryFintech, IndustryHealthcare, IndustryAIML, IndustryConsumerSocial, IndustryMarketplace,
			IndustryDevTools, IndustryClimate, IndustryEducation, IndustryMedia,
		},
	},
	FieldSurface: {
		Key: FieldSurface, Label: "Surface", Placeholder: "e.g. Consumer App",
		Options: []string{
			SurfaceConsumerApp, SurfaceInternalAdmin, SurfaceDashboard,
			SurfaceMobileFirst, SurfaceDesktopFirst, SurfaceAPIFirst,
		},
	},
	FieldFocusArea: {
		Key: FieldFocusArea, Label: "Focus Area", Placeholder: "e.g. New Feature",
		Options: []string{
			FocusNewFeature, FocusGrowth, FocusRetention, FocusMonetization,
			FocusTrustSafety, FocusDesignSystem, FocusAccessibility,
		},
	},
	FieldProjectScope: {
		Key: FieldProjectScope, Label: "Project Scope", Placeholder: "e.g. Take-home",
		Options: []string{ScopeWhiteboard, ScopeTakeHome, ScopeQuarterly, ScopeVision},
	},
}

// Specs returns the field descriptors in form order. The result is a copy.
func Specs() []FieldSpec {
	out := make([]FieldSpec, 0, len(Fields))
	for _, f := range Fields {
		s := specs[f]
		s.Options = slices.Clone(s.Options)
		out = append(out, s)
	}
	return out
}

// Valid reports whether value is one of the catalog options for f.
func Valid(f Field, value string) bool {
	s, ok := specs[f]
	if !ok {
		return false
	}
	return slices.Contains(s.Options, value)
}

// SeniorityLevel returns the 0-based rank of a seniority value, or -1 when unknown.
func SeniorityLevel(value string) int {
	return slices.Index(specs[FieldSeniority].Options, value)
}
