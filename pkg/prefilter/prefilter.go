package prefilter

import (
	"sort"

	"github.com/cloudflare/ahocorasick"
)

// Stage is a text scanning pass that is only worth running when one of its
// keywords occurs in the content.
type Stage struct {
	Name     string
	Keywords []string // empty = always run
}

// Prefilter uses Aho-Corasick for efficient keyword matching. It is safe for
// concurrent use.
type Prefilter struct {
	matcher         *ahocorasick.Matcher
	keywords        []string            // keyword at each index
	keywordStages   map[string][]string // keyword -> stages needing it
	noKeywordStages []string            // stages without keywords (always run)
	order           map[string]int      // stage name -> declaration order
}

// New creates a prefilter from stages.
func New(stages []Stage) *Prefilter {
	pf := &Prefilter{
		keywordStages:   make(map[string][]string),
		noKeywordStages: make([]string, 0),
		order:           make(map[string]int, len(stages)),
	}

	keywordSet := make(map[string]bool)
	for i, stage := range stages {
		pf.order[stage.Name] = i
		if len(stage.Keywords) == 0 {
			pf.noKeywordStages = append(pf.noKeywordStages, stage.Name)
			continue
		}
		for _, keyword := range stage.Keywords {
			if !keywordSet[keyword] {
				keywordSet[keyword] = true
				pf.keywords = append(pf.keywords, keyword)
			}
			pf.keywordStages[keyword] = append(pf.keywordStages[keyword], stage.Name)
		}
	}

	if len(pf.keywords) > 0 {
		pf.matcher = ahocorasick.NewStringMatcher(pf.keywords)
	}

	return pf
}

// Filter returns the names of stages that might match content (keywords
// found OR no keywords defined), in declaration order.
func (pf *Prefilter) Filter(content []byte) []string {
	selected := make(map[string]bool, len(pf.order))
	for _, name := range pf.noKeywordStages {
		selected[name] = true
	}

	if pf.matcher != nil {
		for _, hit := range pf.matcher.MatchThreadSafe(content) {
			for _, name := range pf.keywordStages[pf.keywords[hit]] {
				selected[name] = true
			}
		}
	}

	result := make([]string, len(selected))
	i := 0
	for name := range selected {
		result[i] = name
		i++
	}
	sort.Slice(result, func(i, j int) bool {
		return pf.order[result[i]] < pf.order[result[j]]
	})
	return result
}

// Needs reports whether the named stage should run on content. Unknown
// stages always run.
func (pf *Prefilter) Needs(content []byte, name string) bool {
	if _, known := pf.order[name]; !known {
		return true
	}
	for _, n := range pf.Filter(content) {
		if n == name {
			return true
		}
	}
	return false
}
