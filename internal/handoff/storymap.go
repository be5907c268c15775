// Package handoff serves the documentation surface that communicates UX
// intent to stakeholders: it loads a markdown roadmap and parses it into a
// story map whose internal links drive the authoring wizard.
package handoff

import (
	"fmt"
	"regexp"
	"strings"
)

type LinkType string

const (
	LinkInternal LinkType = "internal"
	LinkClickUp  LinkType = "clickup"
	LinkExternal LinkType = "external"
)

// Link is a detail-line link. Internal links carry a deep-link target for
// the wizard in their URL (app://<target>).
type Link struct {
	Text string   `json:"text"`
	URL  string   `json:"url"`
	Type LinkType `json:"type"`
}

// Target extracts the wizard deep-link token of an internal link.
func (l Link) Target() string {
	if l.Type != LinkInternal {
		return ""
	}
	return strings.TrimPrefix(l.URL, "app://")
}

type Detail struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
	Link    *Link  `json:"link,omitempty"`
}

type Story struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Details []Detail `json:"details"`
}

type Release struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Activity struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// StoryMap is the parsed board: activity columns, release rows, and the
// stories per release/activity cell.
type StoryMap struct {
	Title      string                        `json:"title"`
	Activities []Activity                    `json:"activities"`
	Releases   []Release                     `json:"releases"`
	Stories    map[string]map[string][]Story `json:"stories"`
}

var (
	storyTitleRe = regexp.MustCompile(`^\*\*(.*?)\*\*`)
	linkRe       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	checkboxRe   = regexp.MustCompile(`^- \[[ x]\] `)
)

// ParseStoryMap turns a roadmap markdown document into a story map. The
// format: "##" map title, "###" activity columns, "####" activity subtitle,
// "#####" release rows, "**Title**" stories, and "- [ ]" / "- [x]" detail
// lines that may carry one markdown link.
func ParseStoryMap(markdown string) StoryMap {
	result := StoryMap{
		Title:      "User Story Map",
		Activities: []Activity{},
		Releases:   []Release{},
		Stories:    map[string]map[string][]Story{},
	}

	var (
		currentActivity *Activity
		currentRelease  *Release
		currentStory    *Story
	)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		switch {
		case strings.HasPrefix(trimmed, "##### "):
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "##### "))
			currentRelease = nil
			for idx := range result.Releases {
				if result.Releases[idx].Title == title {
					currentRelease = &result.Releases[idx]
					break
				}
			}
			if currentRelease == nil {
				result.Releases = append(result.Releases, Release{ID: title, Title: title})
				currentRelease = &result.Releases[len(result.Releases)-1]
			}
			currentStory = nil

		case strings.HasPrefix(trimmed, "#### "):
			if currentActivity != nil {
				currentActivity.Subtitle = strings.TrimSpace(strings.TrimPrefix(trimmed, "#### "))
			}

		case strings.HasPrefix(trimmed, "### "):
			title := strings.TrimSpace(strings.TrimPrefix(trimmed, "### "))
			result.Activities = append(result.Activities, Activity{ID: title, Title: title})
			currentActivity = &result.Activities[len(result.Activities)-1]
			currentRelease = nil
			currentStory = nil

		case strings.HasPrefix(trimmed, "## "):
			result.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "## "))

		case storyTitleRe.MatchString(trimmed):
			if currentActivity == nil || currentRelease == nil {
				continue
			}
			cell := result.Stories[currentRelease.ID]
			if cell == nil {
				cell = map[string][]Story{}
				result.Stories[currentRelease.ID] = cell
			}
			story := Story{
				ID:      fmt.Sprintf("%s-%s-%d", currentActivity.ID, currentRelease.ID, len(cell[currentActivity.ID])),
				Title:   storyTitleRe.FindStringSubmatch(trimmed)[1],
				Details: []Detail{},
			}
			cell[currentActivity.ID] = append(cell[currentActivity.ID], story)
			currentStory = &cell[currentActivity.ID][len(cell[currentActivity.ID])-1]

		case strings.HasPrefix(trimmed, "-"):
			if currentStory == nil {
				continue
			}
			currentStory.Details = append(currentStory.Details, parseDetail(trimmed))
		}
	}

	return result
}

func parseDetail(line string) Detail {
	detail := Detail{
		Checked: strings.Contains(line, "[x]"),
		Text:    strings.TrimSpace(checkboxRe.ReplaceAllString(line, "")),
	}

	match := linkRe.FindStringSubmatch(detail.Text)
	if match == nil {
		return detail
	}

	full, text, url := match[0], match[1], match[2]
	detail.Text = strings.Replace(detail.Text, full, text, 1)

	linkType := LinkExternal
	switch {
	case strings.HasPrefix(url, "app://"):
		linkType = LinkInternal
	case strings.Contains(strings.ToLower(text), "clickup"):
		linkType = LinkClickUp
	}

	detail.Link = &Link{Text: text, URL: url, Type: linkType}
	return detail
}
