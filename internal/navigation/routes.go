package navigation

// Route paths used by page handlers that build trails with FromParentOf.
const (
	PathHome                  = "/"
	PathDashboard             = "/dashboard"
	PathPrompt                = "/prompts/{promptId}"
	PathPromptResponses       = "/prompts/{promptId}/responses"
	PathCollection            = "/collections/{collectionId}"
	PathCollectionEdit        = "/collections/{collectionId}/edit"
	PathExhibit               = "/exhibits/{exhibitId}"
	PathExhibitSubmissions    = "/exhibits/{exhibitId}/submissions"
	PathExhibitSubmission     = "/exhibits/{exhibitId}/submissions/{submissionId}"
	PathCreator               = "/creators/{creatorId}"
	PathCreatorPortfolio      = "/creators/{creatorId}/portfolio"
	PathCreatorPortfolioItem  = "/creators/{creatorId}/portfolio/{itemId}"
	PathAdminUser             = "/admin/users/{userId}"
	PathSettingsNotifications = "/settings/notifications"
)

// AppRoutes is the navigation hierarchy of the application. Literal routes
// come before the dynamic routes they overlap with.
func AppRoutes() []RouteSpec {
	return []RouteSpec{
		{Path: PathHome, LabelKey: "nav.home", Label: "Home", Icon: "home"},
		{Path: PathDashboard, LabelKey: "nav.dashboard", Label: "Dashboard", Icon: "layout-dashboard", Parent: PathHome},

		// Public information pages stand on their own.
		{Path: "/about", LabelKey: "nav.about", Label: "About", Icon: "info"},
		{Path: "/about/changelog", LabelKey: "nav.changelog", Label: "Changelog", Icon: "history", Parent: "/about"},
		{Path: "/about/terms", LabelKey: "nav.terms", Label: "Terms of Service", Parent: "/about"},
		{Path: "/about/privacy", LabelKey: "nav.privacy", Label: "Privacy Policy", Parent: "/about"},

		{Path: "/prompts", LabelKey: "nav.prompts", Label: "Prompts", Icon: "sparkles", Parent: PathHome},
		{Path: "/prompts/new", LabelKey: "nav.prompt_new", Label: "New Prompt", Parent: "/prompts"},
		{Path: PathPrompt, LabelKey: "nav.prompt", Label: "Prompt", Parent: "/prompts"},
		{Path: PathPromptResponses, LabelKey: "nav.prompt_responses", Label: "Responses", Parent: PathPrompt},

		{Path: "/collections", LabelKey: "nav.collections", Label: "Collections", Icon: "images", Parent: PathHome},
		{Path: "/collections/new", LabelKey: "nav.collection_new", Label: "New Collection", Parent: "/collections"},
		{Path: PathCollection, LabelKey: "nav.collection", Label: "Collection", Parent: "/collections"},
		{Path: PathCollectionEdit, LabelKey: "nav.collection_edit", Label: "Edit", Parent: PathCollection},

		{Path: "/exhibits", LabelKey: "nav.exhibits", Label: "Exhibits", Icon: "frame", Parent: PathHome},
		{Path: PathExhibit, LabelKey: "nav.exhibit", Label: "Exhibit", Parent: "/exhibits"},
		{Path: PathExhibitSubmissions, LabelKey: "nav.submissions", Label: "Submissions", Parent: PathExhibit},
		{Path: PathExhibitSubmission, LabelKey: "nav.submission", Label: "Submission", Parent: PathExhibitSubmissions},

		{Path: "/creators", LabelKey: "nav.creators", Label: "Creators", Icon: "users", Parent: PathHome},
		{Path: PathCreator, LabelKey: "nav.creator", Label: "Profile", Parent: "/creators"},
		{Path: PathCreatorPortfolio, LabelKey: "nav.portfolio", Label: "Portfolio", Icon: "briefcase", Parent: "/creators"},
		{Path: PathCreatorPortfolioItem, LabelKey: "nav.portfolio_item", Label: "Work", Parent: PathCreatorPortfolio},

		// /settings has no page of its own.
		{Path: "/settings", LabelKey: "nav.settings", Label: "Settings", Icon: "settings", Parent: PathHome},
		{Path: "/settings/profile", LabelKey: "nav.settings_profile", Label: "Profile", Parent: "/settings"},
		{Path: PathSettingsNotifications, LabelKey: "nav.settings_notifications", Label: "Notifications", Parent: "/settings"},

		{Path: "/admin", LabelKey: "nav.admin", Label: "Admin", Icon: "shield", Parent: PathHome},
		{Path: "/admin/users", LabelKey: "nav.admin_users", Label: "Users", Parent: "/admin"},
		{Path: PathAdminUser, LabelKey: "nav.admin_user", Label: "User", Parent: "/admin/users"},
		{Path: "/admin/exhibits", LabelKey: "nav.admin_exhibits", Label: "Exhibits", Parent: "/admin"},
		{Path: "/admin/reports", LabelKey: "nav.admin_reports", Label: "Reports", Parent: "/admin"},
	}
}

// NewAppTable builds the application table.
func NewAppTable() (*Table, error) {
	return NewTable(AppRoutes())
}
