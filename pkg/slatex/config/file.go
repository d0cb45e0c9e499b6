// Package config loads the exporter config file and the runtime settings.
package config

import (
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

// File is an exporter config. Every section is optional; the sections
// present decide what an export run does.
type File struct {
	// OutRelDir is the base directory, under public/, for tasks that name
	// an outfile instead of an out_rel.
	OutRelDir        string            `yaml:"out_rel_dir"`
	Tasks            []Task            `yaml:"tasks" validate:"dive"`
	Cheatsheets      *Cheatsheets      `yaml:"cheatsheets"`
	Matchups         *Matchups         `yaml:"matchups"`
	Gameboard        *Gameboard        `yaml:"gameboard"`
	SiteIDs          *SiteIDs          `yaml:"site_ids"`
	NameXwalk        *NameXwalk        `yaml:"name_xwalk"`
	SalaryMerge      *SalaryMerge      `yaml:"salary_merge"`
	ProjectionsMerge *ProjectionsMerge `yaml:"projections_merge"`
	H2HMatrix        *SheetExport      `yaml:"h2h_matrix"`
	FinishDist       *SheetExport      `yaml:"finish_distribution"`
	Showdown         *Showdown         `yaml:"showdown"`
}

// Task exports one literal table.
type Task struct {
	Sheet        string `yaml:"sheet" validate:"required"`
	HeaderRow    int    `yaml:"header_row" validate:"gte=0"`
	DataStartRow int    `yaml:"data_start_row" validate:"gte=0"`
	LimitToCol   string `yaml:"limit_to_col"`

	KeepRanges StringList `yaml:"keep_ranges"`
	KeepRange  StringList `yaml:"keep_range"`
	UseCols    StringList `yaml:"usecols"`

	KeepColumnsSheetOrder StringList        `yaml:"keep_columns_sheet_order"`
	KeepColumns           StringList        `yaml:"keep_columns"`
	ColumnMapping         map[string]string `yaml:"column_mapping"`
	ColumnOrder           StringList        `yaml:"column_order"`
	Filters               transform.Filters `yaml:"filters" validate:"omitempty,dive"`

	Format  string `yaml:"format" validate:"omitempty,oneof=json csv both JSON CSV BOTH"`
	OutRel  string `yaml:"out_rel"`
	Outfile string `yaml:"outfile"`
	Typed   bool   `yaml:"typed"`

	PercentColumns      StringList `yaml:"percent_columns"`
	PercentNameContains StringList `yaml:"percent_name_contains"`
	PercentAsString     *bool      `yaml:"percent_as_string"`
	RoundDecimals       *int       `yaml:"round_decimals" validate:"omitempty,gte=0,lte=10"`
	IntegerColumns      StringList `yaml:"integer_columns"`
}

// Ranges returns keep_ranges, or its keep_range/usecols spellings.
func (t Task) Ranges() []string {
	switch {
	case len(t.KeepRanges) > 0:
		return t.KeepRanges
	case len(t.KeepRange) > 0:
		return t.KeepRange
	}
	return t.UseCols
}

// WantsJSON reports whether the task writes a .json file.
func (t Task) WantsJSON() bool {
	f := lower(t.Format)
	return f == "" || f == "json" || f == "both"
}

// WantsCSV reports whether the task writes a .csv file.
func (t Task) WantsCSV() bool {
	f := lower(t.Format)
	return f == "csv" || f == "both"
}

// Decimals returns round_decimals, default 1.
func (t Task) Decimals() int {
	if t.RoundDecimals == nil {
		return 1
	}
	return *t.RoundDecimals
}

// Steps converts the task's column and number options to a pipeline.
// Numeric rounding runs for typed tasks or when round_decimals is set.
func (t Task) Steps() transform.Steps {
	return transform.Steps{
		KeepColumns:    t.KeepColumnsSheetOrder,
		Mapping:        t.ColumnMapping,
		Order:          t.ColumnOrder,
		Filters:        t.Filters,
		Select:         t.KeepColumns,
		Percent:        t.PercentColumns,
		PercentContain: t.PercentNameContains,
		PercentString:  boolOr(t.PercentAsString, true),
		Round:          t.Typed || t.RoundDecimals != nil,
		Decimals:       t.Decimals(),
		Integer:        t.IntegerColumns,
	}
}

// Cheatsheets exports tables located by their title text.
type Cheatsheets struct {
	Sheet                string       `yaml:"sheet"`
	OutRel               string       `yaml:"out_rel"`
	TitleMatchCI         *bool        `yaml:"title_match_ci"`
	LimitRows            int          `yaml:"limit_rows" validate:"gte=0"`
	Header               string       `yaml:"header" validate:"omitempty,oneof=title below auto"`
	FirstColumnName      string       `yaml:"first_column_name"`
	FirstColumnPrefixes  StringList   `yaml:"first_column_prefixes"`
	ValueColumnName      string       `yaml:"value_column_name"`
	PercentTitleKeywords StringList   `yaml:"percent_title_keywords"`
	Tables               []CheatTable `yaml:"tables" validate:"dive"`
}

// CheatTable names one title to export.
type CheatTable struct {
	Title string `yaml:"title"`
	Width int    `yaml:"width" validate:"gte=0"`
}

// SheetName returns the sheet, default "Cheat Sheet".
func (c Cheatsheets) SheetName() string {
	return stringOr(c.Sheet, "Cheat Sheet")
}

// CaseInsensitive reports whether titles match regardless of case
// (default true).
func (c Cheatsheets) CaseInsensitive() bool {
	return boolOr(c.TitleMatchCI, true)
}

// Limit returns limit_rows, default 10.
func (c Cheatsheets) Limit() int {
	if c.LimitRows <= 0 {
		return 10
	}
	return c.LimitRows
}

// HeaderMode returns header, default "title".
func (c Cheatsheets) HeaderMode() string {
	return stringOr(lower(c.Header), "title")
}

// FirstColumn returns first_column_name, default "Driver".
func (c Cheatsheets) FirstColumn() string {
	return stringOr(c.FirstColumnName, "Driver")
}

// ValueColumn returns value_column_name, default "Value".
func (c Cheatsheets) ValueColumn() string {
	return stringOr(c.ValueColumnName, "Value")
}

// Prefixes returns first_column_prefixes, default ["top 10"].
func (c Cheatsheets) Prefixes() []string {
	if len(c.FirstColumnPrefixes) > 0 {
		return c.FirstColumnPrefixes
	}
	return []string{"top 10"}
}

// PercentKeywords returns percent_title_keywords, default the win and
// top-N finish rates.
func (c Cheatsheets) PercentKeywords() []string {
	if len(c.PercentTitleKeywords) > 0 {
		return c.PercentTitleKeywords
	}
	return []string{"win%", "t3%", "t5%", "t10%"}
}

// Columns returns width, default 3.
func (t CheatTable) Columns() int {
	if t.Width <= 0 {
		return 3
	}
	return t.Width
}

// Matchups exports the MLB cheat sheet panels and game matchups.
type Matchups struct {
	Sheet           StringList        `yaml:"sheet"`
	HeaderYellowRGB StringList        `yaml:"header_yellow_rgb"`
	TitleRegex      string            `yaml:"title_regex"`
	OutRelDir       string            `yaml:"out_rel_dir"`
	Sections        map[string]string `yaml:"sections"`
	MergeSections   StringList        `yaml:"merge_sections"`
}

// Default MLB panel settings.
var (
	DefaultSections = map[string]string{
		"PITCHER":    "Pitcher",
		"C":          "C",
		"1B":         "1B",
		"2B":         "2B",
		"3B":         "3B",
		"SS":         "SS",
		"OF":         "OF",
		"CASH CORE":  "Cash Core",
		"TOP STACKS": "Top Stacks",
	}
	DefaultMergeSections = []string{"OF"}
	DefaultPanelSheets   = []string{"Cheat Sheet", "MLB Dashboard"}
)

// Gameboard exports the NFL game dashboard.
type Gameboard struct {
	Sheet           StringList `yaml:"sheet"`
	OutRel          string     `yaml:"out_rel"`
	HeaderYellowRGB StringList `yaml:"header_yellow_rgb"`
	TitleRegex      string     `yaml:"title_regex"`
}

// Site id reader modes.
const (
	ModeColumns  = "columns"
	ModeAuto     = "auto"
	ModeBlocks   = "blocks"
	ModeShowdown = "showdown"
)

// SiteIDs exports DraftKings and FanDuel player ids.
type SiteIDs struct {
	Mode    string `yaml:"mode" validate:"omitempty,oneof=columns auto blocks showdown"`
	OutRel  string `yaml:"out_rel"`
	DKSheet string `yaml:"dk_sheet"`
	FDSheet string `yaml:"fd_sheet"`
	Sheet   string `yaml:"sheet"`

	DKNameCol string `yaml:"dk_name_col"`
	DKIDCol   string `yaml:"dk_id_col"`
	DKTeamCol string `yaml:"dk_team_col"`
	DKPosCol  string `yaml:"dk_pos_col"`
	DKSalCol  string `yaml:"dk_sal_col"`
	DKGameCol string `yaml:"dk_game_col"`

	FDNameCol   string `yaml:"fd_name_col"`
	FDIDCol     string `yaml:"fd_id_col"`
	FDTeamCol   string `yaml:"fd_team_col"`
	FDPosCol    string `yaml:"fd_pos_col"`
	FDSalCol    string `yaml:"fd_sal_col"`
	FDMVPCol    string `yaml:"fd_mvp_col"`
	FDMVPSalCol string `yaml:"fd_mvp_sal_col"`
	FDGameCol   string `yaml:"fd_game_col"`

	DKAutodetect bool `yaml:"dk_autodetect"`
	FDAutodetect bool `yaml:"fd_autodetect"`
	RowHardCap   int  `yaml:"row_hard_cap" validate:"gte=0"`
	MaxBlankRows int  `yaml:"max_blank_rows" validate:"gte=0"`
}

// ModeOrDefault returns the reader mode, default columns.
func (s SiteIDs) ModeOrDefault() string {
	return stringOr(lower(s.Mode), ModeColumns)
}

// NameXwalk maps projection names to site names and ids.
type NameXwalk struct {
	ProjectionsSheet string     `yaml:"projections_sheet"`
	ProjectionSheets StringList `yaml:"projection_sheets"`
	HeaderRow        int        `yaml:"header_row" validate:"gte=0"`
	DataStartRow     int        `yaml:"data_start_row" validate:"gte=0"`
	PlayerField      string     `yaml:"player_field"`
	TeamField        string     `yaml:"team_field"`
	PosField         string     `yaml:"pos_field"`
	MinRatio         float64    `yaml:"min_ratio" validate:"gte=0,lte=1"`
	OutRel           string     `yaml:"out_rel"`
}

// Sheets returns the projection sheets to read, default "Projections".
func (n NameXwalk) Sheets() []string {
	if len(n.ProjectionSheets) > 0 {
		return n.ProjectionSheets
	}
	return []string{stringOr(n.ProjectionsSheet, "Projections")}
}

// Ratio returns min_ratio, default 0.94.
func (n NameXwalk) Ratio() float64 {
	if n.MinRatio <= 0 {
		return 0.94
	}
	return n.MinRatio
}

// SalaryMerge injects salaries and kickoff times into projections.json.
type SalaryMerge struct {
	BaseRel        string     `yaml:"base_rel"`
	ProjectionsRel string     `yaml:"projections_rel"`
	Sources        StringList `yaml:"sources"`
	KickoffSheets  StringList `yaml:"kickoff_sheets"`
}

// Default salary merge locations.
var (
	DefaultSalaryBase    = "data/nfl/classic/latest"
	DefaultSalarySources = []string{"qb_data.json", "rb_data.json", "wr_data.json", "te_data.json", "dst_data.json"}
	DefaultKickoffSheets = []string{"DK Salaries", "DraftKings Salaries", "Salaries"}
)

// Base returns base_rel or the NFL classic default.
func (s SalaryMerge) Base() string {
	return stringOr(s.BaseRel, DefaultSalaryBase)
}

// ProjectionsMerge concatenates batter and pitcher projections.
type ProjectionsMerge struct {
	BattersRel  string `yaml:"batters_rel"`
	PitchersRel string `yaml:"pitchers_rel"`
	OutRel      string `yaml:"out_rel"`
}

// SheetExport is a single-sheet export with optional header rows.
type SheetExport struct {
	Sheet        string `yaml:"sheet"`
	OutRel       string `yaml:"out_rel"`
	HeaderRow    int    `yaml:"header_row" validate:"gte=0"`
	DataStartRow int    `yaml:"data_start_row" validate:"gte=0"`
}

// Showdown builds NFL showdown position files from exported JSON.
type Showdown struct {
	ShowdownRel string `yaml:"showdown_rel"`
	ClassicRel  string `yaml:"classic_rel"`
}
