package catalog

import (
	"strings"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// Projects is the portfolio shown on the site. Curated here in-process; the
// backend has no portfolio endpoint.
var Projects = []models.Project{
	{
		Title:        "E-Commerce Platform",
		Category:     "Web Development",
		Description:  "Developed a full-featured online store with product management, cart functionality, and secure checkout. Implemented responsive design for optimal mobile experience.",
		Technologies: []string{"React", "Node.js", "MongoDB", "Stripe"},
		Client:       "Local Boutique",
		Year:         "2023",
		Results:      "Increased client's online sales by 200% in first 3 months",
	},
	{
		Title:        "Business Management Dashboard",
		Category:     "Web Application",
		Description:  "Custom CRM solution with analytics dashboard, client management, and task tracking. Automated several manual processes saving 15+ hours/week.",
		Technologies: []string{"Vue.js", "Firebase", "Chart.js"},
		Client:       "Small Business Client",
		Year:         "2023",
		Results:      "Reduced administrative workload by 40%",
	},
	{
		Title:        "Mobile App Prototype",
		Category:     "UI/UX Design",
		Description:  "Designed and prototyped a fitness tracking mobile application with custom illustrations and smooth animations.",
		Technologies: []string{"Figma", "Adobe XD", "Lottie"},
		Client:       "Startup Concept",
		Year:         "2022",
		Results:      "Won local design competition with this concept",
	},
	{
		Title:        "Portfolio Website",
		Category:     "Web Development",
		Description:  "Modern, performant portfolio website with CMS integration allowing easy content updates by the client.",
		Technologies: []string{"Next.js", "Tailwind CSS", "Sanity.io"},
		Client:       "Freelance Photographer",
		Year:         "2023",
		Results:      "Client reported 50% increase in booking inquiries",
	},
}

// FilterProjects narrows by category ("all" or "" keeps everything) and then
// by case-insensitive search over title and description.
func FilterProjects(projects []models.Project, category, term string) []models.Project {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []models.Project
	for _, p := range projects {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ProjectCategories returns the distinct categories in first-seen order.
func ProjectCategories(projects []models.Project) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range projects {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
