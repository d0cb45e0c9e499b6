package models

// TeamBlock is one side of a matchup panel: the team bar text and the player lines under it.
type TeamBlock struct {
	Header *string  `json:"header"`
	Lines  []string `json:"lines"`
}

// TeamBlocks pairs the away and home blocks.
type TeamBlocks struct {
	Away TeamBlock `json:"away"`
	Home TeamBlock `json:"home"`
}

// NewTeamBlocks returns blocks with empty, non-nil line slices. A nil
// header is written as null.
func NewTeamBlocks(header *string) TeamBlocks {
	away, home := header, header
	if header != nil {
		a, h := *header, *header
		away, home = &a, &h
	}
	return TeamBlocks{
		Away: TeamBlock{Header: away, Lines: []string{}},
		Home: TeamBlock{Header: home, Lines: []string{}},
	}
}

// Weather is the conditions line of a baseball matchup. Only parsed fields are written.
type Weather struct {
	TempF    *float64 `json:"temp_f,omitempty"`
	Humidity *float64 `json:"humidity,omitempty"`
	WindMPH  *float64 `json:"wind_mph,omitempty"`
	WindDir  string   `json:"wind_dir,omitempty"`
	Desc     string   `json:"desc,omitempty"`
}

// Matchup is one baseball game parsed from a dashboard panel.
type Matchup struct {
	Away        string     `json:"away"`
	Home        string     `json:"home"`
	OU          *float64   `json:"ou"`
	MLAway      *int       `json:"ml_away"`
	MLHome      *int       `json:"ml_home"`
	ImpAway     *float64   `json:"imp_away"`
	ImpHome     *float64   `json:"imp_home"`
	Park        *string    `json:"park"`
	BattingPct  *float64   `json:"batting_pct"`
	PitchingPct *float64   `json:"pitching_pct"`
	Weather     Weather    `json:"weather"`
	SPAway      *string    `json:"sp_away"`
	SPHome      *string    `json:"sp_home"`
	TeamBlocks  TeamBlocks `json:"team_blocks"`
}

// GameWeather is the weather line of a football game panel.
type GameWeather struct {
	TempF   *float64 `json:"temp_f"`
	WindMPH *float64 `json:"wind_mph"`
	Desc    *string  `json:"desc"`
	IsDome  bool     `json:"is_dome"`
}

// Game is one football game parsed from the game dashboard.
type Game struct {
	Date       *string      `json:"date"`
	Away       string       `json:"away"`
	Home       string       `json:"home"`
	OU         *float64     `json:"ou"`
	SpreadHome *float64     `json:"spread_home"`
	MLHome     *int         `json:"ml_home"`
	MLAway     *int         `json:"ml_away"`
	Weather    *GameWeather `json:"weather"`
	ImpHome    *float64     `json:"imp_home"`
	ImpAway    *float64     `json:"imp_away"`
	TeamBlocks TeamBlocks   `json:"team_blocks"`
}

// Backfill derives the total from the implied team totals, or the implied
// totals from the total and home spread, when either side is missing.
func (g *Game) Backfill() {
	if g.OU == nil && g.ImpHome != nil && g.ImpAway != nil {
		ou := *g.ImpHome + *g.ImpAway
		g.OU = &ou
	}
	if g.ImpHome == nil && g.OU != nil && g.SpreadHome != nil {
		home := (*g.OU - *g.SpreadHome) / 2
		away := *g.OU - home
		g.ImpHome = &home
		g.ImpAway = &away
	}
}
