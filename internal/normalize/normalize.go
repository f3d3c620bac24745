package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"jobscout/internal/posting"
)

// ErrMalformedSourceData marks a raw payload missing the fields a posting
// cannot exist without. Callers count these and move on.
var ErrMalformedSourceData = errors.New("malformed source data")

// ErrFiltered marks a posting whose title is out of scope.
var ErrFiltered = errors.New("title filtered")

// Normalizer maps raw per-platform payloads to canonical postings.
type Normalizer struct {
	Titles *TitleFilter
}

// New returns a Normalizer with the given title filter; nil means the
// default product-management filter.
func New(titles *TitleFilter) *Normalizer {
	if titles == nil {
		titles = DefaultTitleFilter()
	}
	return &Normalizer{Titles: titles}
}

// Normalize converts one raw job payload. It returns ErrFiltered for titles
// out of scope and ErrMalformedSourceData when required fields are absent.
func (n *Normalizer) Normalize(platform posting.Platform, board, company string, raw map[string]any, now time.Time) (*posting.Posting, error) {
	var (
		p   *posting.Posting
		err error
	)
	switch platform {
	case posting.PlatformGreenhouse:
		p, err = n.greenhouse(raw)
	case posting.PlatformLever:
		p, err = n.lever(raw)
	case posting.PlatformAshby:
		p, err = n.ashby(raw)
	case posting.PlatformWorkable:
		p, err = n.workable(board, raw)
	default:
		return nil, fmt.Errorf("unknown platform %q", platform)
	}
	if err != nil {
		return nil, err
	}

	if !n.Titles.Matches(p.Title) {
		return nil, ErrFiltered
	}

	p.Source = platform
	p.Board = board
	p.Company = company
	if p.Company == "" {
		p.Company = board
	}
	p.ID = posting.ID(platform, board, p.ID)

	p.DescriptionHTML = SanitizeHTML(p.DescriptionHTML)
	p.Description = PlainText(p.DescriptionHTML)
	p.DescHash = ContentHash(p.DescriptionHTML)
	if p.Salary == "" {
		p.Salary = ExtractSalary(p.Description)
	}
	p.LastSeenAt = now
	return p, nil
}

func decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSourceData, err)
	}
	return nil
}

type greenhouseJob struct {
	ID             string `mapstructure:"id"`
	Title          string `mapstructure:"title"`
	AbsoluteURL    string `mapstructure:"absolute_url"`
	Content        string `mapstructure:"content"`
	FirstPublished string `mapstructure:"first_published"`
	UpdatedAt      string `mapstructure:"updated_at"`
	Location       struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"location"`
}

func (n *Normalizer) greenhouse(raw map[string]any) (*posting.Posting, error) {
	var j greenhouseJob
	if err := decode(raw, &j); err != nil {
		return nil, err
	}
	if j.ID == "" || j.Title == "" {
		return nil, fmt.Errorf("%w: greenhouse job missing id or title", ErrMalformedSourceData)
	}
	return &posting.Posting{
		ID:              j.ID,
		Title:           j.Title,
		URL:             j.AbsoluteURL,
		Location:        j.Location.Name,
		DescriptionHTML: j.Content,
		PublishedAt:     parseTimestamp(j.FirstPublished, j.UpdatedAt),
	}, nil
}

type leverJob struct {
	ID         string `mapstructure:"id"`
	Text       string `mapstructure:"text"`
	HostedURL  string `mapstructure:"hostedUrl"`
	CreatedAt  int64  `mapstructure:"createdAt"`
	Desc       string `mapstructure:"description"`
	Categories struct {
		Location string `mapstructure:"location"`
	} `mapstructure:"categories"`
}

func (n *Normalizer) lever(raw map[string]any) (*posting.Posting, error) {
	var j leverJob
	if err := decode(raw, &j); err != nil {
		return nil, err
	}
	if j.ID == "" || j.Text == "" {
		return nil, fmt.Errorf("%w: lever posting missing id or text", ErrMalformedSourceData)
	}
	var published *time.Time
	if j.CreatedAt > 0 {
		t := time.UnixMilli(j.CreatedAt).UTC()
		published = &t
	}
	return &posting.Posting{
		ID:              j.ID,
		Title:           j.Text,
		URL:             j.HostedURL,
		Location:        j.Categories.Location,
		DescriptionHTML: j.Desc,
		PublishedAt:     published,
	}, nil
}

type ashbyJob struct {
	ID            string `mapstructure:"id"`
	Title         string `mapstructure:"title"`
	JobURL        string `mapstructure:"jobUrl"`
	Location      string `mapstructure:"location"`
	DescHTML      string `mapstructure:"descriptionHtml"`
	PublishedDate string `mapstructure:"publishedDate"`
	IsListed      bool   `mapstructure:"isListed"`
	Compensation  struct {
		ScrapeableSummary string `mapstructure:"compensationTierSummary"`
	} `mapstructure:"compensation"`
}

func (n *Normalizer) ashby(raw map[string]any) (*posting.Posting, error) {
	var j ashbyJob
	if err := decode(raw, &j); err != nil {
		return nil, err
	}
	if j.ID == "" || j.Title == "" {
		return nil, fmt.Errorf("%w: ashby job missing id or title", ErrMalformedSourceData)
	}
	return &posting.Posting{
		ID:              j.ID,
		Title:           j.Title,
		URL:             j.JobURL,
		Location:        j.Location,
		DescriptionHTML: j.DescHTML,
		Salary:          j.Compensation.ScrapeableSummary,
		PublishedAt:     parseTimestamp(j.PublishedDate),
	}, nil
}

type workableJob struct {
	Shortcode   string `mapstructure:"shortcode"`
	Title       string `mapstructure:"title"`
	URL         string `mapstructure:"url"`
	Description string `mapstructure:"description"`
	PublishedOn string `mapstructure:"published_on"`
	City        string `mapstructure:"city"`
	Country     string `mapstructure:"country"`
}

func (n *Normalizer) workable(board string, raw map[string]any) (*posting.Posting, error) {
	var j workableJob
	if err := decode(raw, &j); err != nil {
		return nil, err
	}
	if j.Shortcode == "" || j.Title == "" {
		return nil, fmt.Errorf("%w: workable job missing shortcode or title", ErrMalformedSourceData)
	}
	loc := j.City
	if j.Country != "" {
		if loc != "" {
			loc += ", "
		}
		loc += j.Country
	}
	url := j.URL
	if url == "" {
		url = fmt.Sprintf("https://apply.workable.com/%s/j/%s/", board, j.Shortcode)
	}
	return &posting.Posting{
		ID:              j.Shortcode,
		Title:           j.Title,
		URL:             url,
		Location:        loc,
		DescriptionHTML: j.Description,
		PublishedAt:     parseTimestamp(j.PublishedOn),
	}, nil
}

// timestampLayouts covers the formats the four platforms emit.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp tries each candidate value against the known layouts and
// returns the first hit in UTC. Unparseable input yields nil rather than an
// error; a missing timestamp only costs freshness.
func parseTimestamp(candidates ...string) *time.Time {
	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				utc := t.UTC()
				return &utc
			}
		}
	}
	return nil
}
