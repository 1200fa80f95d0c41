package knowledge

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/Recruitment-Dispatcher/agent/contract"
)

const (
	DefaultGenericLink = "https://assess.example.com/general"

	GenericJobTitle       = "Software Engineer"
	GenericJobDescription = "Software engineering role requiring technical expertise."
)

var _ contractx.KnowledgeStore = (*Store)(nil)

type RoleLink struct {
	Role string `yaml:"role"`
	URL  string `yaml:"url"`
}

// Catalog is the raw, ordered knowledge data as it is loaded from a source.
type Catalog struct {
	GenericLink string                 `yaml:"generic_link"`
	Links       []RoleLink             `yaml:"assessment_links"`
	Jobs        []contractx.JobPosting `yaml:"jobs"`
	Tips        []contractx.TipEntry   `yaml:"tips"`
}

// Store is the immutable in-memory knowledge store. It is never mutated after
// New returns, so it is shared across concurrent dispatches without locking.
type Store struct {
	genericLink string
	jobs        map[string]contractx.JobPosting
	links       map[string]string
	tips        []contractx.TipEntry
	tipIndex    map[string]string
}

func New(c Catalog) (*Store, error) {
	s := &Store{
		genericLink: strings.TrimSpace(c.GenericLink),
		jobs:        make(map[string]contractx.JobPosting, len(c.Jobs)),
		links:       make(map[string]string, len(c.Links)),
		tips:        make([]contractx.TipEntry, 0, len(c.Tips)),
		tipIndex:    make(map[string]string, len(c.Tips)),
	}
	if s.genericLink == "" {
		s.genericLink = DefaultGenericLink
	}

	for i, job := range c.Jobs {
		job.ID = strings.TrimSpace(job.ID)
		job.Title = strings.TrimSpace(job.Title)
		job.Description = strings.TrimSpace(job.Description)
		if job.ID == "" || job.Title == "" || job.Description == "" {
			return nil, fmt.Errorf("%w: job[%d] requires id, title and description", contractx.ErrValidation, i)
		}
		if _, dup := s.jobs[job.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate job id=%s", contractx.ErrValidation, job.ID)
		}
		s.jobs[job.ID] = job
	}

	for i, l := range c.Links {
		role := strings.TrimSpace(l.Role)
		url := strings.TrimSpace(l.URL)
		if role == "" || url == "" {
			return nil, fmt.Errorf("%w: assessment_links[%d] requires role and url", contractx.ErrValidation, i)
		}
		s.links[role] = url
	}

	for i, tip := range c.Tips {
		keyword := strings.ToLower(strings.TrimSpace(tip.Keyword))
		text := strings.TrimSpace(tip.Text)
		if keyword == "" || text == "" {
			return nil, fmt.Errorf("%w: tips[%d] requires keyword and text", contractx.ErrValidation, i)
		}
		if _, dup := s.tipIndex[keyword]; dup {
			return nil, fmt.Errorf("%w: duplicate tip keyword=%s", contractx.ErrValidation, keyword)
		}
		s.tips = append(s.tips, contractx.TipEntry{Keyword: keyword, Text: text})
		s.tipIndex[keyword] = text
	}

	return s, nil
}

func MustNew(c Catalog) *Store {
	s, err := New(c)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Store) LookupJob(id string) (contractx.JobPosting, bool) {
	job, ok := s.jobs[id]
	return job, ok
}

// LookupLink returns the link mapped to role. When the role is unmapped the
// generic link is returned with ok=false.
func (s *Store) LookupLink(role string) (string, bool) {
	if url, ok := s.links[role]; ok {
		return url, true
	}
	return s.genericLink, false
}

// MatchTip scans the corpus in declared order and returns the first entry
// whose keyword occurs in text, case-insensitively.
func (s *Store) MatchTip(text string) (contractx.TipEntry, bool) {
	lower := strings.ToLower(text)
	for _, tip := range s.tips {
		if strings.Contains(lower, tip.Keyword) {
			return tip, true
		}
	}
	return contractx.TipEntry{}, false
}

func (s *Store) Tip(keyword string) (string, bool) {
	text, ok := s.tipIndex[strings.ToLower(strings.TrimSpace(keyword))]
	return text, ok
}

func (s *Store) GenericLink() string {
	return s.genericLink
}

// Tips returns a copy of the corpus in declared order.
func (s *Store) Tips() []contractx.TipEntry {
	return append([]contractx.TipEntry(nil), s.tips...)
}

func (s *Store) JobCount() int {
	return len(s.jobs)
}

// GenericJob is the posting used when a job id is not in the catalog.
func GenericJob(id string) contractx.JobPosting {
	return contractx.JobPosting{
		ID:          id,
		Title:       GenericJobTitle,
		Description: GenericJobDescription,
	}
}
