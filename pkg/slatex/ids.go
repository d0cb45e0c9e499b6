package slatex

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ukaji3/slatex-go/pkg/slatex/config"
	"github.com/ukaji3/slatex-go/pkg/slatex/models"
	"github.com/ukaji3/slatex-go/pkg/slatex/parser"
	"github.com/ukaji3/slatex-go/pkg/slatex/showdown"
)

// ErrConflictingOptions is returned when both OnlySiteIDs and OnlyXwalk are set.
var ErrConflictingOptions = errors.New("only-site-ids and only-xwalk are mutually exclusive")

// IDs stages the workbook at xlsm, writes the site ids and builds the name
// crosswalk from them.
func IDs(xlsm string, cfg *config.File, opts IDsOptions) (*models.RunSummary, error) {
	if opts.OnlySiteIDs && opts.OnlyXwalk {
		return nil, ErrConflictingOptions
	}
	root, err := ProjectRoot(opts.Project)
	if err != nil {
		return nil, err
	}
	wb, err := Stage(xlsm)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	summary := RunIDs(wb.Workbook, cfg, root, opts)
	summary.BookName = wb.BookName()
	return summary, nil
}

// RunIDs is IDs against an open workbook.
func RunIDs(wb *parser.Workbook, cfg *config.File, root string, opts IDsOptions) *models.RunSummary {
	r := newRunner(wb, cfg, root, opts.Options)
	s := config.SiteIDs{}
	if r.cfg.SiteIDs != nil {
		s = *r.cfg.SiteIDs
	}

	var ids *models.SiteIDs
	r.section(SectionSiteIDs, func() error {
		var err error
		ids, err = r.siteIDs(s, !opts.OnlyXwalk)
		return err
	})
	if opts.OnlySiteIDs {
		return r.summary
	}
	nx := r.cfg.NameXwalk
	if nx == nil {
		r.log.Info("name_xwalk not configured")
		return r.summary
	}
	r.section(SectionXwalk, func() error {
		if ids == nil {
			return NewSectionError(SectionXwalk, "", fmt.Errorf("site ids unavailable"))
		}
		return r.xwalk(*nx, ids)
	})
	return r.summary
}

// Showdown builds the NFL showdown position files under root/public from
// previously exported JSON. A nil cfg uses the default locations.
func Showdown(cfg *config.File, opts Options) (*models.RunSummary, error) {
	root, err := ProjectRoot(opts.Project)
	if err != nil {
		return nil, err
	}
	return RunShowdown(cfg, root, opts), nil
}

// RunShowdown is Showdown with a resolved project root.
func RunShowdown(cfg *config.File, root string, opts Options) *models.RunSummary {
	r := newRunner(nil, cfg, root, opts)
	s := config.Showdown{}
	if r.cfg.Showdown != nil {
		s = *r.cfg.Showdown
	}
	sdDir := r.path(orDefault(s.ShowdownRel, showdown.DefaultShowdownRel), "")
	clDir := r.path(orDefault(s.ClassicRel, showdown.DefaultClassicRel), "")

	r.section(SectionShowdown, func() error {
		counts, err := showdown.Run(sdDir, clDir, r.pretty)
		if err != nil {
			return NewSectionError(SectionShowdown, "", err)
		}
		for _, pos := range showdown.Positions {
			r.wrote(SectionShowdown, showdown.OutputPath(sdDir, pos), counts[pos])
		}
		return nil
	})
	r.log.Debug("showdown dirs", zap.String("showdown", sdDir), zap.String("classic", clDir))
	return r.summary
}
