package knowledge

import (
	"context"
	"database/sql"
	"fmt"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

type jobPostingRow struct {
	bun.BaseModel `bun:"table:job_postings"`

	ID          string `bun:"id,pk"`
	Title       string `bun:"title,notnull"`
	Description string `bun:"description,notnull"`
}

type assessmentLinkRow struct {
	bun.BaseModel `bun:"table:assessment_links"`

	Role string `bun:"role,pk"`
	URL  string `bun:"url,notnull"`
}

type interviewTipRow struct {
	bun.BaseModel `bun:"table:interview_tips"`

	Position int    `bun:"position,notnull"`
	Keyword  string `bun:"keyword,pk"`
	Text     string `bun:"text,notnull"`
}

// knowledgeSettingRow holds scalar catalog settings as key/value pairs.
type knowledgeSettingRow struct {
	bun.BaseModel `bun:"table:knowledge_settings"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

const settingGenericLink = "generic_link"

func OpenPostgres(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// LoadPostgres reads the whole catalog once. Tips are ordered by position so
// the declared corpus order survives the round trip through the database.
// A missing generic_link setting falls back to DefaultGenericLink.
func LoadPostgres(ctx context.Context, db bun.IDB) (*Store, error) {
	var settings []knowledgeSettingRow
	if err := db.NewSelect().Model(&settings).Where(`"key" = ?`, settingGenericLink).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select knowledge_settings: %w", err)
	}

	var jobs []jobPostingRow
	if err := db.NewSelect().Model(&jobs).Order("id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select job_postings: %w", err)
	}

	var links []assessmentLinkRow
	if err := db.NewSelect().Model(&links).Order("role ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select assessment_links: %w", err)
	}

	var tips []interviewTipRow
	if err := db.NewSelect().Model(&tips).Order("position ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("select interview_tips: %w", err)
	}

	return New(catalogFromRows(settings, jobs, links, tips))
}

func catalogFromRows(settings []knowledgeSettingRow, jobs []jobPostingRow, links []assessmentLinkRow, tips []interviewTipRow) Catalog {
	c := Catalog{
		Jobs:  make([]contractx.JobPosting, 0, len(jobs)),
		Links: make([]RoleLink, 0, len(links)),
		Tips:  make([]contractx.TipEntry, 0, len(tips)),
	}
	for _, st := range settings {
		if st.Key == settingGenericLink {
			c.GenericLink = st.Value
		}
	}
	for _, j := range jobs {
		c.Jobs = append(c.Jobs, contractx.JobPosting{ID: j.ID, Title: j.Title, Description: j.Description})
	}
	for _, l := range links {
		c.Links = append(c.Links, RoleLink{Role: l.Role, URL: l.URL})
	}
	for _, t := range tips {
		c.Tips = append(c.Tips, contractx.TipEntry{Keyword: t.Keyword, Text: t.Text})
	}
	return c
}
