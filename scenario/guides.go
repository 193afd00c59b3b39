package scenario

// Priority ranks how urgent a step is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Names of the built-in guides.
const (
	TenantDispute  = "tenant-dispute"
	WorkplaceIssue = "workplace-issue"
)

// Step is one action in a phase.
type Step struct {
	Id          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Timeframe   string   `json:"timeframe"`
}

// Phase groups steps that are taken together.
type Phase struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Steps       []Step `json:"steps"`
}

// Resource points at a template or an external page that helps with a guide.
type Resource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Template    string `json:"template,omitempty"` // Template key for the letter generator
	URL         string `json:"url,omitempty"`
}

// Guide is a multi-phase walkthrough for a common dispute.
type Guide struct {
	Name        string     `json:"name"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Phases      []Phase    `json:"phases"`
	Resources   []Resource `json:"resources"`
}

// StepCount returns the number of steps across all phases.
func (g *Guide) StepCount() int {
	n := 0
	for _, phase := range g.Phases {
		n += len(phase.Steps)
	}
	return n
}

// HasStep reports whether any phase defines stepID.
func (g *Guide) HasStep(stepID string) bool {
	for _, phase := range g.Phases {
		for _, step := range phase.Steps {
			if step.Id == stepID {
				return true
			}
		}
	}
	return false
}

// Names lists the built-in guides.
func Names() []string {
	return []string{TenantDispute, WorkplaceIssue}
}

// Lookup returns the named guide, falling back to the tenant dispute guide
// for unknown names.
func Lookup(name string) *Guide {
	switch name {
	case WorkplaceIssue:
		return workplaceIssueGuide()
	default:
		return tenantDisputeGuide()
	}
}

func tenantDisputeGuide() *Guide {
	return &Guide{
		Name:        TenantDispute,
		Title:       "Tenant Dispute Resolution",
		Description: "Step-by-step guide for resolving issues with your landlord",
		Phases: []Phase{
			{
				Title:       "Document the Issue",
				Description: "Gather evidence and document the problem",
				Steps: []Step{
					{Id: "photo-evidence", Title: "Take photos/videos of the issue", Description: "Document the problem with clear, dated photos or videos", Priority: PriorityHigh, Timeframe: "Immediately"},
					{Id: "written-record", Title: "Create written record", Description: "Write down dates, times, and details of the issue", Priority: PriorityHigh, Timeframe: "Within 24 hours"},
					{Id: "lease-review", Title: "Review your lease agreement", Description: "Check lease terms related to your issue", Priority: PriorityMedium, Timeframe: "Within 2 days"},
				},
			},
			{
				Title:       "Initial Communication",
				Description: "Contact your landlord about the issue",
				Steps: []Step{
					{Id: "verbal-contact", Title: "Contact landlord verbally", Description: "Call or speak to landlord about the issue first", Priority: PriorityHigh, Timeframe: "Within 3 days"},
					{Id: "follow-up-email", Title: "Send follow-up email", Description: "Confirm verbal discussion in writing via email", Priority: PriorityHigh, Timeframe: "Same day as verbal contact"},
					{Id: "reasonable-timeline", Title: "Set reasonable timeline", Description: "Give landlord reasonable time to respond (7-14 days)", Priority: PriorityMedium, Timeframe: "In initial communication"},
				},
			},
			{
				Title:       "Formal Notice",
				Description: "Send formal written notice if initial contact fails",
				Steps: []Step{
					{Id: "formal-letter", Title: "Send formal complaint letter", Description: "Use certified mail for formal written notice", Priority: PriorityHigh, Timeframe: "After initial timeline expires"},
					{Id: "legal-references", Title: "Include legal references", Description: "Reference relevant tenant rights and local laws", Priority: PriorityMedium, Timeframe: "In formal letter"},
					{Id: "final-timeline", Title: "Set final timeline", Description: "Give final deadline for resolution (14-30 days)", Priority: PriorityHigh, Timeframe: "In formal letter"},
				},
			},
			{
				Title:       "Escalation Options",
				Description: "Next steps if landlord doesn't respond",
				Steps: []Step{
					{Id: "local-authority", Title: "Contact local housing authority", Description: "File complaint with city/county housing department", Priority: PriorityHigh, Timeframe: "After formal notice timeline"},
					{Id: "tenant-union", Title: "Contact tenant rights organization", Description: "Seek help from local tenant advocacy groups", Priority: PriorityMedium, Timeframe: "Anytime during process"},
					{Id: "legal-consultation", Title: "Consider legal consultation", Description: "Consult with tenant rights attorney if needed", Priority: PriorityMedium, Timeframe: "For serious issues"},
				},
			},
		},
		Resources: []Resource{
			{Title: "Tenant Complaint Letter Template", Description: "Professional template for formal landlord communication", Template: "tenant-complaint"},
			{Title: "Local Housing Authority Contacts", Description: "Find your local housing authority contact information", URL: "https://www.hud.gov/states"},
		},
	}
}

func workplaceIssueGuide() *Guide {
	return &Guide{
		Name:        WorkplaceIssue,
		Title:       "Workplace Issue Resolution",
		Description: "Navigate workplace problems professionally and legally",
		Phases: []Phase{
			{
				Title:       "Assess the Situation",
				Description: "Understand the nature and severity of the issue",
				Steps: []Step{
					{Id: "document-incident", Title: "Document the incident", Description: "Record dates, times, witnesses, and specific details", Priority: PriorityHigh, Timeframe: "Immediately"},
					{Id: "review-policies", Title: "Review company policies", Description: "Check employee handbook for relevant policies", Priority: PriorityHigh, Timeframe: "Within 24 hours"},
					{Id: "assess-severity", Title: "Assess issue severity", Description: "Determine if issue is safety, legal, or policy-related", Priority: PriorityMedium, Timeframe: "Within 2 days"},
				},
			},
			{
				Title:       "Internal Resolution",
				Description: "Try to resolve through company channels first",
				Steps: []Step{
					{Id: "direct-supervisor", Title: "Speak with direct supervisor", Description: "Discuss issue with immediate manager first", Priority: PriorityHigh, Timeframe: "Within 3 days"},
					{Id: "hr-consultation", Title: "Consult with HR", Description: "Contact HR if supervisor is involved or unhelpful", Priority: PriorityHigh, Timeframe: "If supervisor route fails"},
					{Id: "formal-complaint", Title: "File formal internal complaint", Description: "Use company's formal complaint process", Priority: PriorityMedium, Timeframe: "If informal resolution fails"},
				},
			},
			{
				Title:       "External Resources",
				Description: "Seek outside help if internal resolution fails",
				Steps: []Step{
					{Id: "eeoc-complaint", Title: "File EEOC complaint (if applicable)", Description: "For discrimination or harassment issues", Priority: PriorityHigh, Timeframe: "Within 180-300 days of incident"},
					{Id: "labor-board", Title: "Contact labor board", Description: "For wage, hour, or safety violations", Priority: PriorityHigh, Timeframe: "As soon as possible"},
					{Id: "legal-counsel", Title: "Consult employment attorney", Description: "For serious violations or retaliation", Priority: PriorityMedium, Timeframe: "If other remedies fail"},
				},
			},
		},
		Resources: []Resource{
			{Title: "Workplace Complaint Letter Template", Description: "Professional template for documenting workplace issues", Template: "workplace-complaint"},
			{Title: "EEOC Filing Information", Description: "Learn how to file an EEOC complaint", URL: "https://www.eeoc.gov/filing-charge-discrimination"},
		},
	}
}
