package models

// SiteRow is one player entry read from a DraftKings or FanDuel salary sheet.
type SiteRow struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Team string `json:"team,omitempty"`
	Pos  string `json:"pos,omitempty"`
	// Showdown sheets carry the following as well. On DraftKings Pos is
	// the roster role (CPT or FLEX).
	RawName    string   `json:"raw_name,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	SalaryFlex *float64 `json:"salary_flex,omitempty"`
	SalaryMVP  *float64 `json:"salary_mvp,omitempty"`
	Game       string   `json:"game,omitempty"`
	Time       string   `json:"time,omitempty"`
}

// SiteIDs is the document written by the site id readers.
type SiteIDs struct {
	DK       []SiteRow              `json:"dk"`
	FD       []SiteRow              `json:"fd"`
	DKJoined map[string]*JoinedSlot `json:"dk_joined,omitempty"`
}

// RoleSlot is the id and salary of one showdown role.
type RoleSlot struct {
	ID     string   `json:"id"`
	Salary *float64 `json:"salary"`
}

// JoinedSlot groups a showdown player's FLEX and CPT entries.
type JoinedSlot struct {
	Name string    `json:"name"`
	Team string    `json:"team"`
	Flex *RoleSlot `json:"flex"`
	CPT  *RoleSlot `json:"cpt"`
	Time string    `json:"time,omitempty"`
}

// XwalkRow maps a projection name to each site's name and id.
type XwalkRow struct {
	Proj   string `json:"proj"`
	Team   string `json:"team"`
	Pos    string `json:"pos"`
	DKName string `json:"dk_name"`
	DKID   string `json:"dk_id"`
	FDName string `json:"fd_name"`
	FDID   string `json:"fd_id"`
}
