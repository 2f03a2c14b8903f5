package generator

import (
	"fmt"

	"github.com/de-tools/ba-assistant/pkg/models/domain"
)

const fallbackReportTmpl = `# EXECUTIVE SUMMARY
The %[1]s project aims to address key user needs identified during the interview.
This report was produced in demo mode because the model server could not be reached, so it outlines a generic starting point rather than project-specific findings.

# FUNCTIONAL REQUIREMENTS
✅ FR-001: User authentication and secure access management
✅ FR-002: Core workflow for creating, editing and tracking records
✅ FR-003: Search and filtering across all stored data
✅ FR-004: Notifications for important events
✅ FR-005: Reporting dashboard with exportable summaries

# NON-FUNCTIONAL REQUIREMENTS
- Pages respond within 2 seconds under normal load
- Data is encrypted in transit and at rest
- The system is available 99.5%% of the time
- The interface works on desktop and mobile browsers

# USER STORIES
- As a user, I want to sign in securely so that my data stays private
- As a manager, I want an overview dashboard so that I can track progress
- As an administrator, I want to manage roles so that access stays appropriate

# TECHNICAL CONSIDERATIONS
- Start with a modular monolith and split services only when needed
- Expose a versioned REST API for future integrations
- Automate builds, tests and deployments from the first iteration

# BUSINESS RULES
- Every record has a single accountable owner
- Deleted data is retained for 30 days before permanent removal
- Only administrators can change user roles

# SUCCESS METRICS
- 70%% of invited users active within the first month
- Average task completion time reduced by 25%%
- Customer satisfaction score of 4 out of 5 or higher

# NEXT STEPS & RECOMMENDATIONS
1. 📋 Validate these requirements with stakeholders
2. 🏗️ Define the architecture and delivery plan
3. 🎨 Create wireframes for the core workflow
4. 🚀 Build and test a minimum viable product
`

// FallbackReport is the canned report served when no model is reachable.
func FallbackReport(p domain.Project) string {
	return fmt.Sprintf(fallbackReportTmpl, p.DisplayName())
}

// FallbackModelInfo labels a canned response for the given model.
func FallbackModelInfo(model string) string {
	return model + " (Demo Mode)"
}
