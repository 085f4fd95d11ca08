package apifootball

// Envelope shapes for the api-sports v3 football API. Only the fields the
// bot consumes are mapped; everything else in the payload is ignored.

type fixturesEnvelope struct {
	Response []fixtureItem `json:"response"`
}

type fixtureItem struct {
	Fixture fixtureCore `json:"fixture"`
	League  leagueInfo  `json:"league"`
	Teams   teamPair    `json:"teams"`
}

type fixtureCore struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

type leagueInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type teamPair struct {
	Home teamInfo `json:"home"`
	Away teamInfo `json:"away"`
}

type teamInfo struct {
	Name string `json:"name"`
}

type predictionsEnvelope struct {
	Response []predictionItem `json:"response"`
}

type predictionItem struct {
	Predictions predictionCore      `json:"predictions"`
	League      leagueInfo          `json:"league"`
	Teams       predictionTeamsPair `json:"teams"`
}

type predictionCore struct {
	Advice string `json:"advice"`
}

type predictionTeamsPair struct {
	Home predictionTeam `json:"home"`
	Away predictionTeam `json:"away"`
}

type predictionTeam struct {
	Name   string         `json:"name"`
	Last5  last5Stats     `json:"last_5"`
	League teamLeagueInfo `json:"league"`
}

type last5Stats struct {
	Att string `json:"att"`
	Def string `json:"def"`
}

type teamLeagueInfo struct {
	Form     string          `json:"form"`
	Fixtures fixtureCounters `json:"fixtures"`
}

type fixtureCounters struct {
	Played sideCounter `json:"played"`
	Wins   sideCounter `json:"wins"`
}

type sideCounter struct {
	Home int `json:"home"`
	Away int `json:"away"`
}
