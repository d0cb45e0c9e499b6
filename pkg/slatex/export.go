package slatex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/matchups"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/output"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/players"
	"github.com/ukaji3/slatex-go/pkg/slatex/transform"
)

// Default output locations under public/.
const (
	DefaultPanelsRel       = "data/mlb/latest"
	DefaultShowdownSiteRel = "data/nfl/showdown/latest/site_ids"
	DefaultH2HSheet        = "H2H Matrix"
	DefaultH2HRel          = "data/nascar/cup/latest/h2h_matrix"
	DefaultFinishSheet     = "Finish Distributions"
	DefaultFinishRel       = "data/nascar/cup/latest/finish_dist"
	DefaultProjectionsFile = "projections.json"
)

// PrintAreaRange is the keep_ranges entry naming the sheet's print area.
const PrintAreaRange = "print_area"

// Section names, as logged and recorded in the run summary.
const (
	SectionTasks       = "tasks"
	SectionCheatsheets = "cheatsheets"
	SectionPanels      = "panels"
	SectionGameboard   = "gameboard"
	SectionSiteIDs     = "site_ids"
	SectionXwalk       = "name_xwalk"
	SectionH2H         = "h2h_matrix"
	SectionFinish      = "finish_distribution"
	SectionSalary      = "salary_merge"
	SectionProjections = "projections_merge"
	SectionShowdown    = "showdown"
)

// Export stages the workbook at xlsm and runs every section cfg configures.
// Section failures are logged and recorded in the summary; the returned
// error is set only when the run could not start.
func Export(xlsm string, cfg *config.File, opts Options) (*models.RunSummary, error) {
	root, err := ProjectRoot(opts.Project)
	if err != nil {
		return nil, err
	}
	wb, err := Stage(xlsm)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	r := newRunner(wb.Workbook, cfg, root, opts)
	r.summary.BookName = wb.BookName()
	r.log.Info("export started", zap.String("workbook", xlsm), zap.String("project", root))
	r.export()
	return r.summary, nil
}

// Run executes the export sections against an open workbook, writing under
// root/public.
func Run(wb *parser.Workbook, cfg *config.File, root string, opts Options) *models.RunSummary {
	r := newRunner(wb, cfg, root, opts)
	r.export()
	return r.summary
}

type runner struct {
	wb      *parser.Workbook
	cfg     *config.File
	root    string
	pretty  bool
	opts    Options
	log     *zap.Logger
	summary *models.RunSummary
}

func newRunner(wb *parser.Workbook, cfg *config.File, root string, opts Options) *runner {
	if cfg == nil {
		cfg = &config.File{}
	}
	return &runner{
		wb:      wb,
		cfg:     cfg,
		root:    root,
		pretty:  opts.Pretty,
		opts:    opts,
		log:     opts.logger(),
		summary: &models.RunSummary{Outputs: []models.Output{}},
	}
}

func (r *runner) export() {
	for i, t := range r.cfg.Tasks {
		r.section(SectionTasks, func() error { return r.task(i, t) })
	}
	if r.opts.OnlyTasks {
		return
	}
	if c := r.cfg.Cheatsheets; c != nil {
		r.section(SectionCheatsheets, func() error { return r.cheatsheets(*c) })
	}
	if m := r.cfg.Matchups; m != nil {
		r.section(SectionPanels, func() error { return r.panels(*m) })
	}
	if g := r.cfg.Gameboard; g != nil {
		r.section(SectionGameboard, func() error { return r.gameboard(*g) })
	}
	if s := r.cfg.SiteIDs; s != nil {
		r.section(SectionSiteIDs, func() error {
			_, err := r.siteIDs(*s, true)
			return err
		})
	}
	if h := r.cfg.H2HMatrix; h != nil {
		r.section(SectionH2H, func() error { return r.h2h(*h) })
	}
	if f := r.cfg.FinishDist; f != nil {
		r.section(SectionFinish, func() error { return r.finish(*f) })
	}
	if r.opts.SkipMerge {
		return
	}
	if s := r.cfg.SalaryMerge; s != nil {
		r.section(SectionSalary, func() error { return r.salaryMerge(*s) })
	}
	if p := r.cfg.ProjectionsMerge; p != nil {
		r.section(SectionProjections, func() error { return r.projectionsMerge(*p) })
	}
}

// section runs fn, logging and recording its failure instead of stopping.
func (r *runner) section(name string, fn func() error) {
	r.log.Debug("section started", zap.String("section", name))
	err := fn()
	if err == nil {
		return
	}
	var se *SectionError
	if !errors.As(err, &se) {
		err = NewSectionError(name, "", err)
	}
	r.log.Warn("section skipped", zap.String("section", name), zap.Error(err))
	r.summary.Fail(name, err)
}

func (r *runner) wrote(section, path string, rows int) {
	r.log.Info("wrote", zap.String("section", section), zap.String("path", path), zap.Int("rows", rows))
	r.summary.Add(section, path, rows)
}

func (r *runner) path(rel, ext string) string {
	return PublicPath(r.root, rel, ext)
}

// taskBase returns the output path of a task without extension: out_rel,
// else outfile (default: the sheet name in snake case) under out_rel_dir.
func (r *runner) taskBase(t config.Task) string {
	if rel := strings.TrimSpace(t.OutRel); rel != "" {
		return trimExt(r.path(rel, ""))
	}
	if t.Outfile == "" && r.cfg.OutRelDir == "" {
		return ""
	}
	name := t.Outfile
	if name == "" {
		name = strings.ReplaceAll(strings.ToLower(t.Sheet), " ", "_")
	}
	return trimExt(r.path(filepath.Join(r.cfg.OutRelDir, name), ""))
}

func trimExt(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

func (r *runner) task(i int, t config.Task) error {
	base := r.taskBase(t)
	if base == "" {
		return NewSectionError(SectionTasks, t.Sheet, fmt.Errorf("task %d: %w", i+1, ErrMissingOutput))
	}
	g, err := r.wb.Grid(t.Sheet)
	if err != nil {
		return NewSectionError(SectionTasks, t.Sheet, err)
	}
	spans, err := transform.ResolveSpans(t.Ranges(), r.names(t.Sheet))
	if err != nil {
		return NewSectionError(SectionTasks, t.Sheet, err)
	}

	opts := parser.DefaultTableOptions()
	opts.HeaderRow = t.HeaderRow
	opts.DataStartRow = t.DataStartRow
	opts.LimitCol = parser.ColumnNumber(t.LimitToCol)
	opts.Typed = t.Typed
	opts.Dedup = parser.DedupIndexed
	tbl := parser.ReadTable(g, opts)

	steps := t.Steps()
	steps.Spans = spans
	tbl = steps.Apply(tbl)
	if tbl.Rows == nil {
		tbl.Rows = []*models.Record{}
	}

	if t.WantsCSV() {
		p := base + ".csv"
		if err := output.WriteCSV(p, tbl); err != nil {
			return NewSectionError(SectionTasks, t.Sheet, err)
		}
		r.wrote(SectionTasks, p, tbl.Len())
	}
	if t.WantsJSON() {
		p := base + ".json"
		if err := output.WriteJSON(p, tbl.Rows, r.pretty); err != nil {
			return NewSectionError(SectionTasks, t.Sheet, err)
		}
		r.wrote(SectionTasks, p, tbl.Len())
	}
	return nil
}

// names resolves keep_ranges entries that are not column spans: the sheet's
// print area for "print_area", else a defined name.
func (r *runner) names(sheet string) transform.NameResolver {
	return func(name string) ([]models.Area, error) {
		if strings.EqualFold(name, PrintAreaRange) {
			if areas := parser.PrintAreas(r.wb.File(), sheet); len(areas) > 0 {
				return areas, nil
			}
			return nil, fmt.Errorf("sheet %q has no print area", sheet)
		}
		return parser.ResolveDefinedName(r.wb.File(), sheet, name)
	}
}

func (r *runner) cheatsheets(c config.Cheatsheets) error {
	if c.OutRel == "" {
		return NewSectionError(SectionCheatsheets, c.SheetName(), ErrMissingOutput)
	}
	p := r.path(c.OutRel, ".json")
	n, missing, err := matchups.ExportCheatSheets(r.wb, c, p, r.pretty)
	for _, title := range missing {
		r.log.Warn("cheat sheet title not found", zap.String("sheet", c.SheetName()), zap.String("title", title))
	}
	if err != nil {
		return NewSectionError(SectionCheatsheets, c.SheetName(), err)
	}
	r.wrote(SectionCheatsheets, p, n)
	return nil
}

func (r *runner) panels(m config.Matchups) error {
	rel := m.OutRelDir
	if rel == "" {
		rel = r.cfg.OutRelDir
	}
	if rel == "" {
		rel = DefaultPanelsRel
	}
	res, err := matchups.ExportMLB(r.wb, m, r.path(rel, ""), r.pretty)
	if err != nil {
		return NewSectionError(SectionPanels, res.Sheet, err)
	}
	r.log.Info("panels parsed",
		zap.String("sheet", res.Sheet),
		zap.Int("panels", res.Panels),
		zap.Strings("sections", res.Sections),
		zap.Int("games", res.Games))
	for _, f := range res.Files {
		r.wrote(SectionPanels, f.Path, f.Rows)
	}
	return nil
}

func (r *runner) gameboard(g config.Gameboard) error {
	if g.OutRel == "" {
		return NewSectionError(SectionGameboard, g.Sheet.First(), ErrMissingOutput)
	}
	p := r.path(g.OutRel, ".json")
	sheet, games, err := matchups.ExportGameboard(r.wb, g, p, r.pretty)
	if err != nil {
		return NewSectionError(SectionGameboard, sheet, err)
	}
	r.wrote(SectionGameboard, p, games)
	return nil
}

// siteIDs reads the site ids and, when write is set, writes them.
func (r *runner) siteIDs(s config.SiteIDs, write bool) (*models.SiteIDs, error) {
	ids, err := players.ReadSiteIDs(r.wb, s)
	if err != nil {
		return nil, NewSectionError(SectionSiteIDs, s.Sheet, err)
	}
	r.log.Info("site ids read",
		zap.String("mode", s.ModeOrDefault()),
		zap.Int("dk", len(ids.DK)),
		zap.Int("fd", len(ids.FD)))
	if !write {
		return ids, nil
	}
	rel := s.OutRel
	if rel == "" && s.ModeOrDefault() == config.ModeShowdown {
		rel = DefaultShowdownSiteRel
	}
	if rel == "" {
		return ids, NewSectionError(SectionSiteIDs, s.Sheet, ErrMissingOutput)
	}
	p := r.path(rel, ".json")
	if err := output.WriteJSON(p, ids, r.pretty); err != nil {
		return ids, NewSectionError(SectionSiteIDs, s.Sheet, err)
	}
	r.wrote(SectionSiteIDs, p, len(ids.DK)+len(ids.FD))
	return ids, nil
}

func (r *runner) xwalk(nx config.NameXwalk, ids *models.SiteIDs) error {
	if nx.OutRel == "" {
		return NewSectionError(SectionXwalk, "", ErrMissingOutput)
	}
	proj, err := players.ReadProjections(r.wb, nx)
	if err != nil {
		return NewSectionError(SectionXwalk, strings.Join(nx.Sheets(), ","), err)
	}
	rows := players.Crosswalk(proj, ids.DK, ids.FD, nx.Ratio())
	var dkHits, fdHits int
	for _, row := range rows {
		if row.DKID != "" {
			dkHits++
		}
		if row.FDID != "" {
			fdHits++
		}
	}
	r.log.Info("crosswalk built",
		zap.Int("players", len(rows)),
		zap.Int("dk_hits", dkHits),
		zap.Int("fd_hits", fdHits))
	p := r.path(nx.OutRel, ".json")
	if err := output.WriteJSON(p, rows, r.pretty); err != nil {
		return NewSectionError(SectionXwalk, "", err)
	}
	r.wrote(SectionXwalk, p, len(rows))
	return nil
}

// matrixTable reads a NASCAR matrix sheet with typed values.
func (r *runner) matrixTable(section string, s config.SheetExport, sheet string) (*models.Table, error) {
	g, err := r.wb.Grid(sheet)
	if err != nil {
		return nil, NewSectionError(section, sheet, err)
	}
	opts := parser.DefaultTableOptions()
	opts.HeaderRow = s.HeaderRow
	opts.DataStartRow = s.DataStartRow
	opts.Typed = true
	opts.Dedup = parser.DedupIndexed
	return parser.ReadTable(g, opts), nil
}

func (r *runner) h2h(s config.SheetExport) error {
	sheet := orDefault(s.Sheet, DefaultH2HSheet)
	t, err := r.matrixTable(SectionH2H, s, sheet)
	if err != nil {
		return err
	}
	t, err = transform.H2HMatrix(t)
	if err != nil {
		return NewSectionError(SectionH2H, sheet, err)
	}
	p := r.path(orDefault(s.OutRel, DefaultH2HRel), ".json")
	if err := output.WriteJSON(p, nonNilRows(t.Rows), r.pretty); err != nil {
		return NewSectionError(SectionH2H, sheet, err)
	}
	r.wrote(SectionH2H, p, t.Len())
	return nil
}

func (r *runner) finish(s config.SheetExport) error {
	sheet := orDefault(s.Sheet, DefaultFinishSheet)
	t, err := r.matrixTable(SectionFinish, s, sheet)
	if err != nil {
		return err
	}
	t, err = transform.FinishDistribution(t)
	if err != nil {
		return NewSectionError(SectionFinish, sheet, err)
	}
	p := r.path(orDefault(s.OutRel, DefaultFinishRel), ".json")
	if err := output.WriteJSON(p, nonNilRows(t.Rows), r.pretty); err != nil {
		return NewSectionError(SectionFinish, sheet, err)
	}
	r.log.Info("finish distribution", zap.Int("positions", t.Width()-1))
	r.wrote(SectionFinish, p, t.Len())
	return nil
}

func (r *runner) salaryMerge(s config.SalaryMerge) error {
	base := r.path(s.Base(), "")
	kickoff, err := players.KickoffMap(r.wb, s.KickoffSheets.Or(config.DefaultKickoffSheets...))
	if err != nil {
		return NewSectionError(SectionSalary, "", err)
	}
	salaries, seen, err := players.SalaryMap(base, s.Sources.Or(config.DefaultSalarySources...))
	if err != nil {
		return NewSectionError(SectionSalary, "", err)
	}
	p := filepath.Join(base, DefaultProjectionsFile)
	if s.ProjectionsRel != "" {
		p = r.path(s.ProjectionsRel, ".json")
	}
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSectionError(SectionSalary, "", fmt.Errorf("%w: %s", ErrFileNotFound, p))
		}
		return NewSectionError(SectionSalary, "", err)
	}
	st, err := players.MergeSalariesFile(p, salaries, kickoff, r.pretty)
	if err != nil {
		return NewSectionError(SectionSalary, "", err)
	}
	st.Seen = seen
	r.log.Info("salaries merged",
		zap.Int("kickoff_entries", len(kickoff)),
		zap.Int("salary_rows", st.Seen),
		zap.Int("updated", st.Updated),
		zap.Int("dk_hits", st.DKHits),
		zap.Int("fd_hits", st.FDHits),
		zap.Int("time_hits_json", st.TimeHitsJSON),
		zap.Int("time_hits_sheet", st.TimeHitsSheet))
	r.wrote(SectionSalary, p, st.Updated)
	return nil
}

func (r *runner) projectionsMerge(pm config.ProjectionsMerge) error {
	if pm.BattersRel == "" || pm.PitchersRel == "" || pm.OutRel == "" {
		return NewSectionError(SectionProjections, "", ErrMissingOutput)
	}
	bat := r.path(pm.BattersRel, ".json")
	pit := r.path(pm.PitchersRel, ".json")
	if !exists(bat) || !exists(pit) {
		r.log.Info("projections merge skipped: inputs not found",
			zap.Bool("batters", exists(bat)),
			zap.Bool("pitchers", exists(pit)))
		return nil
	}
	p := r.path(pm.OutRel, ".json")
	b, pc, err := players.MergeProjections(bat, pit, p, r.pretty)
	if err != nil {
		return NewSectionError(SectionProjections, "", err)
	}
	r.log.Info("projections merged", zap.Int("batters", b), zap.Int("pitchers", pc))
	r.wrote(SectionProjections, p, b+pc)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func nonNilRows(rows []*models.Record) []*models.Record {
	if rows == nil {
		return []*models.Record{}
	}
	return rows
}
