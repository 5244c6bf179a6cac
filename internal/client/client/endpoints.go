package client

import "net/url"

// Backend endpoints, relative to the API root.
const (
	AuthRegisterPath = "auth/register"
	AuthLoginPath    = "auth/login"
	AuthVerifyPath   = "auth/verify"
	AuthRefreshPath  = "auth/refresh"
	AuthMePath       = "auth/me"
	AuthLogoutPath   = "auth/logout"

	ProfileMePath        = "profile/me"
	ProfileCompletePath  = "profile/complete"
	ProfileInterestsPath = "profile/interests/all"
	ProfileExpertisePath = "profile/expertise/all"

	InvestmentsPath          = "investments"
	InvestmentCategoriesPath = "investments/categories/list"

	EventsPath = "events"
)

func InvestmentPath(id string) string {
	return InvestmentsPath + "/" + url.PathEscape(id)
}

func InvestmentInterestPath(id string) string {
	return InvestmentPath(id) + "/interested"
}

func EventPath(id string) string {
	return EventsPath + "/" + url.PathEscape(id)
}

func EventAttendPath(id string) string {
	return EventPath(id) + "/attend"
}

func EventJoinGroupPath(id string) string {
	return EventPath(id) + "/join-group"
}
