package app

// Cache key namespaces, one per API resource.
const (
	resourceProjects  = "projects"
	resourceVenues    = "venues"
	resourceTemplates = "mission-templates"
	resourceTags      = "mission-tags"
)
