package mangaupdates

import (
	"regexp"
	"strings"
	"time"

	"muscraper/lib/timezone"
)

// Description returns the synopsis, preferring the hidden full-text
// block over the truncated teaser when the page carries both. Nil when
// the site shows N/A.
func (s *Series) Description() (*string, error) {
	if s.cache.description.set {
		return s.cache.description.value, nil
	}
	content, err := s.section(sectionDescription)
	if err != nil {
		return nil, err
	}
	target := content
	if more := content.Find("#div_desc_more"); more.Length() > 0 {
		target = more
	}
	text := strings.Join(strippedStrings(target), " ")
	if text == absentMarker {
		return s.cache.description.put(nil), nil
	}
	return s.cache.description.put(&text), nil
}

// SeriesType is the site's medium classification (Manga, Manhwa,
// Novel, ...).
func (s *Series) SeriesType() (string, error) {
	if s.cache.seriesType.set {
		return s.cache.seriesType.value, nil
	}
	text, err := s.sectionText(sectionType)
	if err != nil {
		return "", err
	}
	return s.cache.seriesType.put(text), nil
}

// Status is kept verbatim, the site freely mixes counts and prose
// ("143 Chapters (Ongoing)").
func (s *Series) Status() (string, error) {
	if s.cache.status.set {
		return s.cache.status.value, nil
	}
	text, err := s.sectionText(sectionStatus)
	if err != nil {
		return "", err
	}
	return s.cache.status.put(text), nil
}

func yesNo(text string) *bool {
	switch text {
	case "Yes":
		yes := true
		return &yes
	case "No":
		no := false
		return &no
	}
	return nil
}

func (s *Series) CompletelyScanlated() (*bool, error) {
	if s.cache.completelyScanlated.set {
		return s.cache.completelyScanlated.value, nil
	}
	text, err := s.sectionText(sectionScanlated)
	if err != nil {
		return nil, err
	}
	return s.cache.completelyScanlated.put(yesNo(text)), nil
}

// AnimeChapters returns the "Anime Start/End Chapter" lines, nil when
// the section is a single N/A.
func (s *Series) AnimeChapters() ([]string, error) {
	if s.cache.animeChapters.set {
		return s.cache.animeChapters.value, nil
	}
	content, err := s.section(sectionAnimeChapters)
	if err != nil {
		return nil, err
	}
	lines := strippedStrings(content)
	if len(lines) == 1 && lines[0] == absentMarker {
		return s.cache.animeChapters.put(nil), nil
	}
	return s.cache.animeChapters.put(lines), nil
}

var ordinalSuffixRegex = regexp.MustCompile(`(\d+)(?:st|nd|rd|th)`)

const lastUpdatedLayout = "January 2 2006, 3:04pm MST"

// LastUpdated parses timestamps like "January 9th 2021, 5:32am PST".
// The site renders them in US Pacific time, see lib/timezone.
func (s *Series) LastUpdated() (*time.Time, error) {
	if s.cache.lastUpdated.set {
		return s.cache.lastUpdated.value, nil
	}
	text, err := s.sectionText(sectionLastUpdated)
	if err != nil {
		return nil, err
	}
	if text == absentMarker {
		return s.cache.lastUpdated.put(nil), nil
	}
	normalized := ordinalSuffixRegex.ReplaceAllString(text, "$1")
	when, err := time.ParseInLocation(lastUpdatedLayout, normalized, timezone.Location)
	if err != nil {
		return nil, &PatternError{
			Field:   sectionLastUpdated,
			Pattern: lastUpdatedLayout,
			Input:   text,
		}
	}
	return s.cache.lastUpdated.put(&when), nil
}

func (s *Series) Image() (*string, error) {
	if s.cache.image.set {
		return s.cache.image.value, nil
	}
	content, err := s.section(sectionImage)
	if err != nil {
		return nil, err
	}
	img := content.Find("img").First()
	if img.Length() == 0 {
		return s.cache.image.put(nil), nil
	}
	src, ok := img.Attr("src")
	if !ok || src == "" {
		return s.cache.image.put(nil), nil
	}
	return s.cache.image.put(&src), nil
}

// Year stays text: besides plain years the site shows ranges like
// "2015-2019".
func (s *Series) Year() (*string, error) {
	if s.cache.year.set {
		return s.cache.year.value, nil
	}
	text, err := s.sectionText(sectionYear)
	if err != nil {
		return nil, err
	}
	if text == absentMarker || text == "" {
		return s.cache.year.put(nil), nil
	}
	return s.cache.year.put(&text), nil
}

func (s *Series) LicensedInEnglish() (*bool, error) {
	if s.cache.licensedInEnglish.set {
		return s.cache.licensedInEnglish.value, nil
	}
	text, err := s.sectionText(sectionLicensed)
	if err != nil {
		return nil, err
	}
	return s.cache.licensedInEnglish.put(yesNo(text)), nil
}
